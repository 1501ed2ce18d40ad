package autodesign

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

type SizeRequest struct {
	Material string      `json:"material"`
	Preset   SpeedPreset `json:"speed_preset,omitempty"`
	SizeInput
}

func (h *Handler) Width(w http.ResponseWriter, r *http.Request) {
	var req SizeRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	mat, err := h.Catalog.Lookup(req.Material)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if req.Preset != "" {
		v, err := PresetSpeed(req.Preset)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		req.Spec.SpeedMPS = v
	}
	res, err := SizeWidth(mat, req.SizeInput)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	h.Log.Infow("width search", "material", mat.Name, "found", res.Found, "width_mm", res.WidthMM)
	httpjson.Write(w, http.StatusOK, res)
}
