package multidayhandlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	multidayservice "github.com/fairway-club/scorekeeper/app/modules/multiday/application"
	multidaydb "github.com/fairway-club/scorekeeper/app/modules/multiday/infrastructure/repositories"
	"github.com/fairway-club/scorekeeper/app/shared/httputils"
	"github.com/fairway-club/scorekeeper/app/shared/observability/attr"
)

// EventStore is the write side of the event routes.
type EventStore interface {
	CreateEvent(ctx context.Context, event *multidaydb.Event, roster []multidaydb.EventPlayer) error
	GetEventBySlug(ctx context.Context, slug string) (int64, error)
}

// Handlers serves the multi-day event routes.
type Handlers struct {
	service multidayservice.Service
	events  EventStore
	logger  *slog.Logger
}

// NewHandlers creates the multi-day HTTP handlers.
func NewHandlers(service multidayservice.Service, events EventStore, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, events: events, logger: logger}
}

// Routes mounts the event routes.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateEvent)
	r.Get("/{eventID}/standings", h.GetStandings)
	r.Get("/slug/{slug}/standings", h.GetStandingsBySlug)
	return r
}

// CreateEventDto is the input for creating a multi-day event with its roster.
type CreateEventDto struct {
	Name        string                       `json:"name"`
	Slug        string                       `json:"slug"`
	NumDays     int                          `json:"num_days"`
	NumRounds   int                          `json:"num_rounds"`
	PointSystem []multidayservice.PointRule  `json:"point_system"`
	Payouts     []multidayservice.PayoutRule `json:"payout_structure"`
	Pot         float64                      `json:"pot"`
	Roster      []EventPlayerDto             `json:"roster"`
}

// EventPlayerDto is one roster entry of a new event.
type EventPlayerDto struct {
	Name string `json:"name"`
	Team *int   `json:"team"`
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var input CreateEventDto
	if err := httputils.DecodeJSON(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	event := &multidaydb.Event{
		UUID:        uuid.New(),
		Name:        input.Name,
		Slug:        input.Slug,
		NumDays:     input.NumDays,
		NumRounds:   input.NumRounds,
		Status:      "setup",
		PointSystem: input.PointSystem,
		Payouts:     input.Payouts,
		Pot:         input.Pot,
	}
	roster := make([]multidaydb.EventPlayer, 0, len(input.Roster))
	for _, p := range input.Roster {
		roster = append(roster, multidaydb.EventPlayer{Name: p.Name, Team: p.Team})
	}

	if err := h.events.CreateEvent(r.Context(), event, roster); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create event", attr.Error(err))
		http.Error(w, "Failed to create event", http.StatusInternalServerError)
		return
	}
	httputils.WriteJSON(w, http.StatusCreated, event)
}

func (h *Handlers) GetStandings(w http.ResponseWriter, r *http.Request) {
	eventID, err := httputils.IDParam(r, "eventID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.respondStandings(w, r, eventID)
}

func (h *Handlers) GetStandingsBySlug(w http.ResponseWriter, r *http.Request) {
	eventID, err := h.events.GetEventBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, multidaydb.ErrNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to resolve event slug", attr.Error(err))
		http.Error(w, "Failed to resolve event", http.StatusInternalServerError)
		return
	}
	h.respondStandings(w, r, eventID)
}

func (h *Handlers) respondStandings(w http.ResponseWriter, r *http.Request, eventID int64) {
	result, err := h.service.GetStandings(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, multidaydb.ErrNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to compute event standings", attr.Error(err))
		http.Error(w, "Failed to compute event standings", http.StatusInternalServerError)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, result.Success)
}
