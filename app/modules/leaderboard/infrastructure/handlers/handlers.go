package leaderboardhandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	leaderboardservice "github.com/fairway-club/scorekeeper/app/modules/leaderboard/application"
	leaderboarddb "github.com/fairway-club/scorekeeper/app/modules/leaderboard/infrastructure/repositories"
	"github.com/fairway-club/scorekeeper/app/shared/httputils"
	"github.com/fairway-club/scorekeeper/app/shared/observability/attr"
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// Handlers serves the tournament and leaderboard routes.
type Handlers struct {
	service     leaderboardservice.Service
	tournaments leaderboarddb.TournamentDB
	logger      *slog.Logger
}

// NewHandlers creates the leaderboard HTTP handlers.
func NewHandlers(service leaderboardservice.Service, tournaments leaderboarddb.TournamentDB, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, tournaments: tournaments, logger: logger}
}

// Routes mounts the tournament routes.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateTournament)
	r.Get("/{tournamentID}", h.GetTournament)
	r.Patch("/{tournamentID}", h.UpdateTournament)
	r.Post("/{tournamentID}/scores", h.UpsertScores)
	r.Get("/{tournamentID}/leaderboard", h.GetLeaderboard)
	r.Get("/{tournamentID}/highlow", h.GetHighLow)
	r.Get("/{tournamentID}/scorecard.xlsx", h.ExportScorecard)
	r.Get("/{tournamentID}/standings.png", h.RenderStandingsChart)
	return r
}

// CreateTournamentDto is the input for creating a tournament with its roster
// and course in one call.
type CreateTournamentDto struct {
	Name          string                   `json:"name"`
	CourseName    string                   `json:"course_name"`
	PlayedOn      time.Time                `json:"played_on"`
	GameType      sharedtypes.GameType     `json:"game_type"`
	SlopeRating   int                      `json:"slope_rating"`
	HandicapMode  sharedtypes.HandicapMode `json:"handicap_mode"`
	BetAmount     float64                  `json:"bet_amount"`
	GreenieAmount float64                  `json:"greenie_amount"`
	SkinsAmount   float64                  `json:"skins_amount"`
	GreenieHoles  []int64                  `json:"greenie_holes"`
	NassauFormat  sharedtypes.NassauFormat `json:"nassau_format"`
	Players       []PlayerDto              `json:"players"`
	Holes         []HoleDto                `json:"holes"`
}

// PlayerDto is one roster entry of a new tournament.
type PlayerDto struct {
	Name          string  `json:"name"`
	HandicapIndex float64 `json:"handicap_index"`
	Team          *int    `json:"team"`
	TeeColor      string  `json:"tee_color"`
	EventPlayerID *int64  `json:"event_player_id"`
}

// HoleDto is one hole of a new tournament's course.
type HoleDto struct {
	Number         int            `json:"number"`
	Par            int            `json:"par"`
	HandicapRating int            `json:"handicap_rating"`
	Yardages       map[string]int `json:"yardages"`
}

func (h *Handlers) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var input CreateTournamentDto
	if err := httputils.DecodeJSON(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if input.Name == "" || input.GameType == "" {
		http.Error(w, "name and game_type are required", http.StatusBadRequest)
		return
	}

	tournament := &leaderboarddb.Tournament{
		UUID:          uuid.New(),
		Name:          input.Name,
		CourseName:    input.CourseName,
		PlayedOn:      input.PlayedOn,
		Status:        sharedtypes.RoundStatusSetup,
		GameType:      input.GameType,
		SlopeRating:   input.SlopeRating,
		HandicapMode:  input.HandicapMode,
		BetAmount:     input.BetAmount,
		GreenieAmount: input.GreenieAmount,
		SkinsAmount:   input.SkinsAmount,
		GreenieHoles:  input.GreenieHoles,
		NassauFormat:  input.NassauFormat,
	}
	players := make([]leaderboarddb.Player, 0, len(input.Players))
	for _, p := range input.Players {
		players = append(players, leaderboarddb.Player{
			Name:          p.Name,
			HandicapIndex: p.HandicapIndex,
			Team:          p.Team,
			TeeColor:      p.TeeColor,
			EventPlayerID: p.EventPlayerID,
		})
	}
	holes := make([]leaderboarddb.Hole, 0, len(input.Holes))
	for _, hole := range input.Holes {
		holes = append(holes, leaderboarddb.Hole{
			Number:         hole.Number,
			Par:            hole.Par,
			HandicapRating: hole.HandicapRating,
			Yardages:       hole.Yardages,
		})
	}

	if err := h.tournaments.CreateTournament(r.Context(), tournament, players, holes); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create tournament", attr.Error(err))
		http.Error(w, "Failed to create tournament", http.StatusInternalServerError)
		return
	}
	httputils.WriteJSON(w, http.StatusCreated, tournament)
}

func (h *Handlers) GetTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tournament, err := h.tournaments.GetTournament(r.Context(), tournamentID)
	if err != nil {
		if errors.Is(err, leaderboarddb.ErrNotFound) {
			http.Error(w, "Tournament not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to fetch tournament", attr.Error(err))
		http.Error(w, "Failed to fetch tournament", http.StatusInternalServerError)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, tournament)
}

// UpdateTournamentDto carries the mutable tournament fields. Absent fields
// stay untouched.
type UpdateTournamentDto struct {
	Name          *string                   `json:"name"`
	CourseName    *string                   `json:"course_name"`
	Status        *sharedtypes.RoundStatus  `json:"status"`
	GameType      *sharedtypes.GameType     `json:"game_type"`
	SlopeRating   *int                      `json:"slope_rating"`
	HandicapMode  *sharedtypes.HandicapMode `json:"handicap_mode"`
	BetAmount     *float64                  `json:"bet_amount"`
	GreenieAmount *float64                  `json:"greenie_amount"`
	SkinsAmount   *float64                  `json:"skins_amount"`
	GreenieHoles  *[]int64                  `json:"greenie_holes"`
	NassauFormat  *sharedtypes.NassauFormat `json:"nassau_format"`
}

func (h *Handlers) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var input UpdateTournamentDto
	if err := httputils.DecodeJSON(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch := leaderboarddb.TournamentPatch{
		Name:          input.Name,
		CourseName:    input.CourseName,
		Status:        input.Status,
		GameType:      input.GameType,
		SlopeRating:   input.SlopeRating,
		HandicapMode:  input.HandicapMode,
		BetAmount:     input.BetAmount,
		GreenieAmount: input.GreenieAmount,
		SkinsAmount:   input.SkinsAmount,
		GreenieHoles:  input.GreenieHoles,
		NassauFormat:  input.NassauFormat,
	}
	if err := h.tournaments.UpdateTournament(r.Context(), tournamentID, patch); err != nil {
		if errors.Is(err, leaderboarddb.ErrNoRowsAffected) {
			http.Error(w, "Tournament not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to update tournament", attr.Error(err))
		http.Error(w, "Failed to update tournament", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ScoreEntryDto is one score line of an upsert batch.
type ScoreEntryDto struct {
	PlayerID        int64    `json:"player_id"`
	HoleNumber      int      `json:"hole_number"`
	Strokes         *int     `json:"strokes"`
	Greenie         bool     `json:"greenie"`
	GreenieDistance *float64 `json:"greenie_distance"`
}

func (h *Handlers) UpsertScores(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var input []ScoreEntryDto
	if err := httputils.DecodeJSON(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entries := make([]leaderboarddb.ScoreUpsert, 0, len(input))
	for _, e := range input {
		if e.PlayerID == 0 || e.HoleNumber < 1 || e.HoleNumber > 18 {
			http.Error(w, fmt.Sprintf("invalid score entry for player %d hole %d", e.PlayerID, e.HoleNumber), http.StatusBadRequest)
			return
		}
		entries = append(entries, leaderboarddb.ScoreUpsert{
			PlayerID:        e.PlayerID,
			HoleNumber:      e.HoleNumber,
			Strokes:         e.Strokes,
			Greenie:         e.Greenie,
			GreenieDistance: e.GreenieDistance,
		})
	}
	if err := h.tournaments.UpsertScores(r.Context(), tournamentID, entries); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to upsert scores", attr.Error(err))
		http.Error(w, "Failed to save scores", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.service.GetLeaderboard(r.Context(), tournamentID)
	if err != nil {
		h.respondError(w, r, "Failed to compute leaderboard", err)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) GetHighLow(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.service.GetHighLow(r.Context(), tournamentID)
	if err != nil {
		h.respondError(w, r, "Failed to compute high-low standings", err)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	httputils.WriteJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) ExportScorecard(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.service.ExportScorecard(r.Context(), tournamentID)
	if err != nil {
		h.respondError(w, r, "Failed to export scorecard", err)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="scorecard.xlsx"`)
	httputils.WriteBlob(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", *result.Success)
}

func (h *Handlers) RenderStandingsChart(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := httputils.IDParam(r, "tournamentID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.service.RenderStandingsChart(r.Context(), tournamentID)
	if err != nil {
		h.respondError(w, r, "Failed to render standings chart", err)
		return
	}
	if result.IsFailure() {
		httputils.WriteJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	httputils.WriteBlob(w, "image/png", *result.Success)
}

func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if errors.Is(err, leaderboarddb.ErrNotFound) {
		http.Error(w, "Tournament not found", http.StatusNotFound)
		return
	}
	h.logger.ErrorContext(r.Context(), msg, attr.Error(err))
	http.Error(w, msg, http.StatusInternalServerError)
}
