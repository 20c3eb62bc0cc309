package sidebethandlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	sidebetservice "github.com/fairway-club/scorekeeper/app/modules/sidebet/application"
	"github.com/fairway-club/scorekeeper/app/shared/httputils"
	"github.com/fairway-club/scorekeeper/app/shared/observability/attr"
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// Handlers serves the side-bet routes.
type Handlers struct {
	service sidebetservice.Service
	logger  *slog.Logger
}

// NewHandlers creates the side-bet HTTP handlers.
func NewHandlers(service sidebetservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// Routes mounts the side-bet routes under a tournament.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{tournamentID}/bets", h.GetBetStatuses)
	r.Post("/{tournamentID}/bets", h.CreateBet)
	r.Post("/{tournamentID}/bets/{betID}/press", h.CreatePress)
	r.Patch("/{tournamentID}/bets/{betID}", h.UpdateBet)
	r.Delete("/{tournamentID}/bets/{betID}", h.DeleteBet)
	return r
}

func (h *Handlers) GetBetStatuses(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.service.GetBetStatuses(r.Context(), tournamentID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to compute bet statuses", attr.Error(err))
		http.Error(w, "Failed to compute bet statuses", http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, result.Success)
}

// CreateBetDto is the input for opening a new side bet.
type CreateBetDto struct {
	GameType   sharedtypes.GameType               `json:"game_type"`
	UseHighLow bool                               `json:"use_high_low"`
	Party1     sharedtypes.Party                  `json:"party1"`
	Party2     sharedtypes.Party                  `json:"party2"`
	Amounts    map[sharedtypes.BetSegment]float64 `json:"amounts"`
	StartHole  sharedtypes.HoleNumber             `json:"start_hole"`
}

func (h *Handlers) CreateBet(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var input CreateBetDto
	if err := httputils.DecodeJSON(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.service.CreateBet(r.Context(), tournamentID, sharedtypes.SideBet{
		GameType:   input.GameType,
		UseHighLow: input.UseHighLow,
		Party1:     input.Party1,
		Party2:     input.Party2,
		Amounts:    input.Amounts,
		StartHole:  input.StartHole,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create bet", attr.Error(err))
		http.Error(w, "Failed to create bet", http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	httputils.WriteJSON(w, http.StatusCreated, result.Success)
}

// CreatePressDto is the input for pressing an existing bet.
type CreatePressDto struct {
	Segment   sharedtypes.BetSegment `json:"segment"`
	StartHole sharedtypes.HoleNumber `json:"start_hole"`
	Amount    float64                `json:"amount"`
}

func (h *Handlers) CreatePress(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	betID, err := httputils.IDParam(r, "betID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var input CreatePressDto
	if err := httputils.DecodeJSON(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.service.CreatePress(r.Context(), tournamentID, sharedtypes.BetID(betID), input.Segment, input.StartHole, input.Amount)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create press", attr.Error(err))
		http.Error(w, "Failed to create press", http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	httputils.WriteJSON(w, http.StatusCreated, result.Success)
}

// UpdateBetDto carries the mutable bet fields. Absent fields stay untouched.
type UpdateBetDto struct {
	Amounts    *map[sharedtypes.BetSegment]float64 `json:"amounts"`
	UseHighLow *bool                               `json:"use_high_low"`
}

func (h *Handlers) UpdateBet(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	betID, err := httputils.IDParam(r, "betID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var input UpdateBetDto
	if err := httputils.DecodeJSON(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.service.UpdateBet(r.Context(), tournamentID, sharedtypes.BetID(betID), sidebetservice.SideBetPatch{
		Amounts:    input.Amounts,
		UseHighLow: input.UseHighLow,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to update bet", attr.Error(err))
		http.Error(w, "Failed to update bet", http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) DeleteBet(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	betID, err := httputils.IDParam(r, "betID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.service.DeleteBet(r.Context(), tournamentID, sharedtypes.BetID(betID))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to delete bet", attr.Error(err))
		http.Error(w, "Failed to delete bet", http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusNotFound, result.Failure)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, map[string]int{"deleted": *result.Success})
}
