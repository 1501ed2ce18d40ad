// Package httpjson holds the request/response plumbing shared by the
// calculation handlers.
package httpjson

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strings"

	"go.uber.org/zap"

	errs "Beltline/internal/errors"
)

// MaxBody bounds JSON request bodies.
const MaxBody = 1 << 20

type errorBody struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

// Decode reads a JSON body into v. Unknown fields are rejected.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errs.Wrap(errs.ErrInvalidInput, "empty request body")
		}
		return errs.Wrapf(errs.ErrInvalidInput, "invalid request payload: %v", err)
	}
	return nil
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error answers with the status mapped from err. Server-side failures are
// logged and their detail withheld.
func Error(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	status := errs.HTTPStatus(err)
	body := errorBody{Error: err.Error(), Hint: errs.FlattenHint(err)}
	if status >= http.StatusInternalServerError {
		if log != nil {
			log.Errorw("request failed", "error", err)
		}
		body = errorBody{Error: http.StatusText(status)}
	}
	Write(w, status, body)
}

// Allow wraps h so that any other method is answered 405 with an Allow
// header. Routes inside nested mux subrouters use it in place of
// Route.Methods, whose mismatch is reported there as 404.
func Allow(h http.HandlerFunc, methods ...string) http.HandlerFunc {
	allowed := strings.Join(methods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		if !slices.Contains(methods, r.Method) {
			w.Header().Set("Allow", allowed)
			Write(w, http.StatusMethodNotAllowed, errorBody{
				Error: r.Method + " not allowed",
				Hint:  "use " + allowed,
			})
			return
		}
		h(w, r)
	}
}
