package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"housing-loan-sim/domain"
	"housing-loan-sim/repository"
	"housing-loan-sim/service"
)

type SimulationHandler struct {
	service *service.SimulationService
	logger  *zap.Logger
}

func NewSimulationHandler(service *service.SimulationService, logger *zap.Logger) *SimulationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulationHandler{service: service, logger: logger}
}

func (h *SimulationHandler) Subsidy(w http.ResponseWriter, r *http.Request) {
	var req domain.SubsidyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	WriteJSON(w, http.StatusOK, h.service.Subsidy(req))
}

func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Simulate(input)
	if err != nil {
		h.writeServiceError(w, "simulate", err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (h *SimulationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.SaveSimulationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sim, err := h.service.Run(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, "create", err)
		return
	}

	WriteJSON(w, http.StatusCreated, sim)
}

func (h *SimulationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	sims, err := h.service.List(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		h.writeServiceError(w, "list", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"simulations": sims})
}

func (h *SimulationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	sim, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, "get", err)
		return
	}

	WriteJSON(w, http.StatusOK, sim)
}

func (h *SimulationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, "delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SimulationHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case service.IsValidationError(err):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrSimulationNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("simulation request failed", zap.String("op", op), zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
