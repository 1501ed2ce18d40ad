package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"Beltline/internal/auth"
	"Beltline/internal/calc/conveyor"
	"Beltline/internal/calc/premium/autodesign"
	"Beltline/internal/calc/premium/batch"
	"Beltline/internal/calc/premium/importer"
	"Beltline/internal/calc/premium/recommend"
	"Beltline/internal/config"
	"Beltline/internal/httpjson"
	"Beltline/internal/logger"
	"Beltline/internal/material"
	"Beltline/internal/profile"
	"Beltline/internal/repo"
)

var wg sync.WaitGroup

// withCORS answers preflight requests itself and stamps the allowed origin
// on everything else.
func withCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		if origin != "*" {
			h.Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			h.Set("Access-Control-Allow-Methods", "GET, POST")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type deps struct {
	cfg     *config.Config
	log     *zap.SugaredLogger
	catalog *material.Catalog
	// nil when accounts are disabled
	db *sql.DB
}

// handle registers a route on a subrouter. Method filtering is done by the
// handler so a wrong method gets 405 rather than 404.
func handle(r *mux.Router, path string, h http.HandlerFunc, methods ...string) {
	r.HandleFunc(path, httpjson.Allow(h, methods...))
}

func HandleList(mux *mux.Router, d deps, limiter *auth.IPRateLimiter) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	conveyorH := &conveyor.Handler{Catalog: d.catalog, Log: d.log}
	handle(api, "/materials", conveyorH.Materials, http.MethodGet)

	tools := api.PathPrefix("/tools/conveyor").Subrouter()

	if d.db != nil {
		userRepo := repo.NewPostgresUserDB(d.db)
		authEnv := &auth.Authenv{JWTkey: []byte(d.cfg.Auth.TokenKey), Repo: userRepo, Log: d.log}
		profileH := &profile.ProfileHandler{Repo: userRepo, Log: d.log}

		handle(api, "/login", authEnv.AuthHandler, http.MethodPost)
		handle(api, "/register", authEnv.RegisterHandler, http.MethodPost)
		handle(api, "/logout", authEnv.LogoutHandler, http.MethodPost)

		secureApi := api.PathPrefix("/user").Subrouter()
		secureApi.Use(authEnv.AuthMiddleware)
		handle(secureApi, "/profile", profileH.GetProfile, http.MethodGet)
		handle(secureApi, "/profile/{id:[0-9]+}", profileH.GetProfile, http.MethodGet)

		tools.Use(authEnv.AuthMiddleware)
	}

	sizeH := &autodesign.Handler{Catalog: d.catalog, Log: d.log}
	batchH := &batch.Handler{Catalog: d.catalog, Log: d.log}
	importH := &importer.Handler{Catalog: d.catalog, Log: d.log}
	bomH := &recommend.Handler{Catalog: d.catalog, Log: d.log}

	handle(tools, "/calc", conveyorH.Calc, http.MethodPost)
	handle(tools, "/trajectory", conveyorH.Trajectory, http.MethodPost)
	handle(tools, "/size", sizeH.Width, http.MethodPost)
	handle(tools, "/batch", batchH.Conveyors, http.MethodPost)
	handle(tools, "/import", importH.Conveyors, http.MethodPost)
	handle(tools, "/import/template", importH.Template, http.MethodGet)
	handle(tools, "/bom", bomH.Conveyor, http.MethodPost)
}

func loadCatalog(cfg *config.Config) (*material.Catalog, error) {
	if cfg.Materials.File == "" {
		return material.Default(), nil
	}
	return material.Load(cfg.Materials.File)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(os.Getenv("BELTLINE_CONFIG"))
	if err != nil {
		panic(err)
	}
	log := logger.Must(cfg.Log.JSON)
	defer log.Sync()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		log.Fatalw("load material catalog", "file", cfg.Materials.File, "error", err)
	}

	d := deps{cfg: cfg, log: log, catalog: catalog}
	if cfg.Auth.Enabled() {
		db, err := repo.Open(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatalw("database unavailable", "error", err)
		}
		defer db.Close()
		if err := repo.Migrate(ctx, db); err != nil {
			log.Fatalw("migrate", "error", err)
		}
		d.db = db
	} else {
		log.Warnw("auth.token_key not set, calculators are public")
	}

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.Auth.Rate), cfg.Auth.Burst)
	go limiter.Sweep(ctx, auth.IdleVisitor)

	mux := mux.NewRouter()
	HandleList(mux, d, limiter)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: withCORS(cfg.Server.CORSOrigin, mux),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infow("starting server", "addr", cfg.Server.Addr, "tls", cfg.Server.TLS(), "materials", len(catalog.Names()))
		var err error
		if cfg.Server.TLS() {
			err = server.ListenAndServeTLS(cfg.Server.TLSCert, cfg.Server.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Errorw("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Infow("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown", "error", err)
	}
	wg.Wait()
	log.Infow("server stopped")
}
