package profile

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"Beltline/internal/auth"
	errs "Beltline/internal/errors"
	"Beltline/internal/httpjson"
	"Beltline/internal/repo"
)

type ProfileHandler struct {
	Repo repo.Repository
	Log  *zap.SugaredLogger
}

type Profile struct {
	repo.User
	Self bool `json:"self"`
}

// GetProfile answers with the signed-in account, or with the account named
// by the {id} path variable. Email is only shown on one's own profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	self, ok := auth.UserID(r.Context())
	if !ok {
		httpjson.Error(w, h.Log, errs.Wrap(errs.ErrUnauthorized, "no session"))
		return
	}

	id := self
	if raw, ok := mux.Vars(r)["id"]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httpjson.Error(w, h.Log, errs.Wrapf(errs.ErrInvalidInput, "user id %q", raw))
			return
		}
		id = n
	}

	u, err := h.Repo.UserByID(r.Context(), id)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	p := Profile{User: u, Self: id == self}
	if !p.Self {
		p.Email = ""
	}
	httpjson.Write(w, http.StatusOK, p)
}
