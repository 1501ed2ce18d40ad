package recommend

import (
	"net/http"

	"go.uber.org/zap"

	"Beltline/internal/calc/conveyor"
	"Beltline/internal/httpjson"
	"Beltline/internal/material"
)

type Handler struct {
	Catalog *material.Catalog
	Log     *zap.SugaredLogger
}

type Request struct {
	conveyor.Request
	PulleyDiameterMM float64 `json:"pulley_diameter_mm,omitempty"`
}

func (h *Handler) Conveyor(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	mat, err := h.Catalog.Lookup(req.Material)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	res, err := conveyor.Evaluate(mat, req.Spec)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	bom, err := BillOfMaterials(res, req.PulleyDiameterMM)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, bom)
}
