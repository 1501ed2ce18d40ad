// Package auth issues and checks session tokens for the API and limits
// request rates per client address.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	errs "Beltline/internal/errors"
	"Beltline/internal/httpjson"
	"Beltline/internal/repo"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	userLoginKey contextKey = "userLogin"

	CookieName     = "session_token"
	DefaultTTL     = 30 * 24 * time.Hour
	MinPasswordLen = 6
	issuer         = "beltline"
	bearerPrefix   = "Bearer "
)

type Claims struct {
	UserID int    `json:"user_id"`
	Login  string `json:"login"`
	jwt.RegisteredClaims
}

type Authenv struct {
	JWTkey []byte
	Repo   repo.Repository
	Log    *zap.SugaredLogger
	// TTL defaults to DefaultTTL.
	TTL time.Duration
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type Session struct {
	UserID    int       `json:"user_id"`
	Login     string    `json:"login"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (env *Authenv) ttl() time.Duration {
	if env.TTL > 0 {
		return env.TTL
	}
	return DefaultTTL
}

// Issue signs a session token for a user.
func (env *Authenv) Issue(userID int, login string, now time.Time) (Session, error) {
	exp := now.Add(env.ttl())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Login:  login,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(env.JWTkey)
	if err != nil {
		return Session{}, errs.Wrap(err, "sign token")
	}
	return Session{UserID: userID, Login: login, Token: signed, ExpiresAt: exp}, nil
}

// Parse validates a token and returns its claims. Any failure is
// ErrUnauthorized.
func (env *Authenv) Parse(tokenString string) (Claims, error) {
	var c Claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return env.JWTkey, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Claims{}, errs.Wrapf(errs.ErrUnauthorized, "token: %v", err)
	}
	if c.UserID <= 0 || c.Login == "" {
		return Claims{}, errs.Wrap(errs.ErrUnauthorized, "token has no user")
	}
	return c, nil
}

func tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix))
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// AuthMiddleware accepts a bearer token or the session cookie and puts the
// user into the request context.
func (env *Authenv) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := tokenFrom(r)
		if raw == "" {
			httpjson.Error(w, env.Log, errs.Wrap(errs.ErrUnauthorized, "no session"))
			return
		}
		c, err := env.Parse(raw)
		if err != nil {
			httpjson.Error(w, env.Log, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), c.UserID, c.Login)))
	})
}

func WithUser(ctx context.Context, id int, login string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id)
	return context.WithValue(ctx, userLoginKey, login)
}

// UserID returns the authenticated user set by AuthMiddleware.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok && id > 0
}

func UserLogin(ctx context.Context) string {
	login, _ := ctx.Value(userLoginKey).(string)
	return login
}

func (env *Authenv) setCookie(w http.ResponseWriter, s Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.Token,
		Expires:  s.ExpiresAt,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (env *Authenv) startSession(w http.ResponseWriter, status int, userID int, login string) {
	s, err := env.Issue(userID, login, time.Now())
	if err != nil {
		httpjson.Error(w, env.Log, err)
		return
	}
	env.setCookie(w, s)
	httpjson.Write(w, status, s)
}

func (env *Authenv) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, env.Log, err)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)
	if req.Login == "" || req.Email == "" || req.Password == "" {
		httpjson.Error(w, env.Log, errs.Wrap(errs.ErrInvalidInput, "login, email and password required"))
		return
	}
	if len(req.Password) < MinPasswordLen {
		httpjson.Error(w, env.Log, errs.Wrapf(errs.ErrInvalidInput, "password shorter than %d characters", MinPasswordLen))
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		httpjson.Error(w, env.Log, errs.Wrap(err, "hash password"))
		return
	}
	id, err := env.Repo.CreateUser(r.Context(), req.Login, req.Email, hashed)
	if err != nil {
		httpjson.Error(w, env.Log, err)
		return
	}
	env.Log.Infow("user registered", "user_id", id, "login", req.Login)
	env.startSession(w, http.StatusCreated, id, req.Login)
}

func (env *Authenv) AuthHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, env.Log, err)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		httpjson.Error(w, env.Log, errs.Wrap(errs.ErrInvalidInput, "login and password required"))
		return
	}

	badLogin := errs.Wrap(errs.ErrUnauthorized, "invalid login or password")
	u, err := env.Repo.UserByLogin(r.Context(), req.Login)
	if errs.Is(err, errs.ErrNotFound) {
		httpjson.Error(w, env.Log, badLogin)
		return
	}
	if err != nil {
		httpjson.Error(w, env.Log, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		httpjson.Error(w, env.Log, badLogin)
		return
	}
	env.startSession(w, http.StatusOK, u.ID, u.Login)
}

// LogoutHandler clears the session cookie. Bearer tokens stay valid until
// they expire.
func (env *Authenv) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
