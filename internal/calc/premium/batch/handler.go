package batch

import (
	"net/http"

	"go.uber.org/zap"

	"Beltline/internal/httpjson"
	"Beltline/internal/material"
)

type Handler struct {
	Catalog *material.Catalog
	Log     *zap.SugaredLogger
}

type Request struct {
	Items []Item `json:"items"`
}

func (h *Handler) Conveyors(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	res, err := Evaluate(h.Catalog, req.Items)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Log.Infow("batch evaluated", "job_id", res.JobID, "ok", res.OK, "failed", res.Failed)
	httpjson.Write(w, http.StatusOK, res)
}
