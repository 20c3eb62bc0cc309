package calcuttahandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	calcuttaservice "github.com/fairway-club/scorekeeper/app/modules/calcutta/application"
	"github.com/fairway-club/scorekeeper/app/shared/httputils"
	"github.com/fairway-club/scorekeeper/app/shared/observability/attr"
)

// Handlers serves the calcutta auction routes.
type Handlers struct {
	service calcuttaservice.Service
	logger  *slog.Logger
}

// NewHandlers creates the calcutta HTTP handlers.
func NewHandlers(service calcuttaservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// Routes mounts the calcutta routes under a tournament.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{tournamentID}/calcutta", h.GetBoard)
	r.Get("/{tournamentID}/calcutta/results", h.GetResults)
	r.Post("/{tournamentID}/calcutta/config", h.SaveConfig)
	r.Post("/{tournamentID}/calcutta/purchase", h.SavePurchase)
	r.Delete("/{tournamentID}/calcutta/purchase/{teamNumber}", h.DeletePurchase)
	return r
}

func (h *Handlers) GetBoard(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.service.GetBoard(r.Context(), tournamentID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to fetch calcutta board", attr.Error(err))
		http.Error(w, "Failed to fetch calcutta board", http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) GetResults(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.service.GetResults(r.Context(), tournamentID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to settle calcutta", attr.Error(err))
		http.Error(w, "Failed to settle calcutta", http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, result.Success)
}

// SaveConfigDto is the input for configuring a tournament's calcutta.
type SaveConfigDto struct {
	Enabled bool                         `json:"enabled"`
	Payouts []calcuttaservice.PayoutRule `json:"payout_structure"`
}

func (h *Handlers) SaveConfig(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var input SaveConfigDto
	if err := httputils.DecodeJSON(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.service.SaveConfig(r.Context(), calcuttaservice.Config{
		TournamentID: tournamentID,
		Enabled:      input.Enabled,
		Payouts:      input.Payouts,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to save calcutta config", attr.Error(err))
		http.Error(w, "Failed to save calcutta config", http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) SavePurchase(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var input calcuttaservice.Purchase
	if err := httputils.DecodeJSON(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.service.SavePurchase(r.Context(), tournamentID, input)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to save calcutta purchase", attr.Error(err))
		http.Error(w, "Failed to save purchase", http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	teamNumber, err := strconv.Atoi(chi.URLParam(r, "teamNumber"))
	if err != nil {
		http.Error(w, "invalid team number", http.StatusBadRequest)
		return
	}
	result, err := h.service.DeletePurchase(r.Context(), tournamentID, teamNumber)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to delete calcutta purchase", attr.Error(err))
		http.Error(w, "Failed to delete purchase", http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusNotFound, result.Failure)
		return
	}
	w.WriteHeader(http.StatusOK)
}
