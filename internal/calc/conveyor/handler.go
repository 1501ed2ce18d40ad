package conveyor

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"Beltline/internal/calc/trajectory"
	"Beltline/internal/httpjson"
	"Beltline/internal/material"
)

type Handler struct {
	Catalog *material.Catalog
	Log     *zap.SugaredLogger
}

type Request struct {
	Material string `json:"material"`
	Spec
}

type Response struct {
	RunID  uuid.UUID    `json:"run_id"`
	Result DesignResult `json:"result"`
	Status Status       `json:"status"`
}

type TrajectoryRequest struct {
	Request
	PulleyDiameterMM float64 `json:"pulley_diameter_mm"`
}

type TrajectoryResponse struct {
	RunID      uuid.UUID           `json:"run_id"`
	Trajectory trajectory.Result   `json:"trajectory"`
	Envelope   trajectory.Envelope `json:"envelope"`
	Points     []trajectory.Point  `json:"points"`
}

func (h *Handler) evaluate(req Request) (DesignResult, error) {
	mat, err := h.Catalog.Lookup(req.Material)
	if err != nil {
		return DesignResult{}, err
	}
	return Evaluate(mat, req.Spec)
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	res, err := h.evaluate(req)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	st := Assess(res)
	id := uuid.New()
	h.Log.Infow("conveyor evaluated",
		"run_id", id,
		"material", res.Material.Name,
		"width_mm", req.BeltWidthMM,
		"load_percent", res.LoadPercent().String(),
		"status", st.Level)
	httpjson.Write(w, http.StatusOK, Response{RunID: id, Result: res, Status: st})
}

func (h *Handler) Trajectory(w http.ResponseWriter, r *http.Request) {
	var req TrajectoryRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	res, err := h.evaluate(req.Request)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	tr, err := Trajectory(res, req.PulleyDiameterMM)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, TrajectoryResponse{
		RunID:      uuid.New(),
		Trajectory: tr,
		Envelope:   tr.Envelope(),
		Points:     tr.Path(),
	})
}

// Materials lists the catalog.
func (h *Handler) Materials(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.Catalog.All())
}
