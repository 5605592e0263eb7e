package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"parkd/internal/parking/graph"
	"parkd/internal/parking/service"
	"parkd/internal/parking/validator"
	httputil "parkd/pkg/http"
	"parkd/pkg/logger"
	"parkd/pkg/model"
)

// ParkingHandler exposes the coordinator over HTTP. The graph carried
// in a request body overrides the configured default grid, allowing
// topology changes without a restart.
type ParkingHandler struct {
	service      service.ParkingService
	validator    *validator.RequestValidator
	defaultGraph *graph.Graph
	log          *logger.Logger
}

func NewParkingHandler(
	svc service.ParkingService,
	requestValidator *validator.RequestValidator,
	defaultGraph *graph.Graph,
	log *logger.Logger,
) *ParkingHandler {
	return &ParkingHandler{
		service:      svc,
		validator:    requestValidator,
		defaultGraph: defaultGraph,
		log:          log,
	}
}

func (h *ParkingHandler) Entry(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	g, err := h.resolveGraph(req.Graph)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Admit(r.Context(), req.Plate, g)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	switch result.Status {
	case service.StatusAdmitted:
		httputil.WriteCreated(w, result)
	case service.StatusAlreadyParked, service.StatusConflict:
		httputil.WriteJSON(w, http.StatusConflict, httputil.SuccessResponse{Data: result})
	default:
		httputil.WriteSuccess(w, result)
	}
}

func (h *ParkingHandler) Exit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	g, err := h.resolveGraph(req.Graph)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Release(r.Context(), req.Plate, g)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if result.Status == service.StatusNotFound {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.SuccessResponse{Data: result})
		return
	}
	httputil.WriteSuccess(w, result)
}

func (h *ParkingHandler) Status(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	status, err := h.service.Status(r.Context(), ps.ByName("plate"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, status)
}

func (h *ParkingHandler) State(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteSuccess(w, h.service.Snapshot())
}

func (h *ParkingHandler) resolveGraph(edges []model.GraphEdge) (*graph.Graph, error) {
	if len(edges) == 0 {
		return h.defaultGraph, nil
	}
	if err := h.validator.ValidateGraph(edges); err != nil {
		return nil, err
	}
	return validator.BuildGraph(edges), nil
}

func (h *ParkingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/parking/entry", h.Entry)
	router.POST("/api/v1/parking/exit", h.Exit)
	router.GET("/api/v1/parking/status/:plate", h.Status)
	router.GET("/api/v1/parking/state", h.State)
	router.GET("/api/v1/parking/events", h.Events)
}
