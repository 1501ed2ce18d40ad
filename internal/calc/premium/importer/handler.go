package importer

import (
	"net/http"

	"go.uber.org/zap"

	errs "Beltline/internal/errors"
	"Beltline/internal/httpjson"
	"Beltline/internal/material"
)

// MaxUpload bounds the multipart body.
const MaxUpload = 10 << 20

type Handler struct {
	Catalog *material.Catalog
	Log     *zap.SugaredLogger
}

func (h *Handler) Conveyors(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, h.Log, errs.Wrapf(errs.ErrInvalidInput, "form field \"file\": %v", err))
		return
	}
	defer file.Close()

	res, err := Import(h.Catalog, file)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Log.Infow("workbook imported",
		"job_id", res.Batch.JobID,
		"rows", len(res.Rows),
		"skipped", len(res.Skipped),
		"failed", res.Batch.Failed)
	httpjson.Write(w, http.StatusOK, res)
}

// Template serves the blank import workbook.
func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	f, err := Template()
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="conveyors.xlsx"`)
	if err := f.Write(w); err != nil {
		h.Log.Errorw("write template", "error", err)
	}
}
