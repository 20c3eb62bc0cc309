package leaderboarddb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// Tournament is one round of competition on one course.
type Tournament struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`

	ID            int64                    `bun:"id,pk,autoincrement"`
	UUID          uuid.UUID                `bun:"uuid,type:uuid,notnull,unique"`
	EventID       *int64                   `bun:"event_id"`
	Name          string                   `bun:"name,notnull"`
	CourseName    string                   `bun:"course_name"`
	PlayedOn      time.Time                `bun:"played_on"`
	Status        sharedtypes.RoundStatus  `bun:"status,notnull,default:'setup'"`
	GameType      sharedtypes.GameType     `bun:"game_type,notnull"`
	SlopeRating   int                      `bun:"slope_rating,notnull,default:113"`
	HandicapMode  sharedtypes.HandicapMode `bun:"handicap_mode,notnull,default:'gross'"`
	BetAmount     float64                  `bun:"bet_amount"`
	GreenieAmount float64                  `bun:"greenie_amount"`
	SkinsAmount   float64                  `bun:"skins_amount"`
	GreenieHoles  []int64                  `bun:"greenie_holes,array"`
	NassauFormat  sharedtypes.NassauFormat `bun:"nassau_format"`
	CreatedAt     time.Time                `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time                `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Player is a participant in one tournament.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID            int64   `bun:"id,pk,autoincrement"`
	TournamentID  int64   `bun:"tournament_id,notnull"`
	EventPlayerID *int64  `bun:"event_player_id"`
	Name          string  `bun:"name,notnull"`
	HandicapIndex float64 `bun:"handicap_index"`
	Team          *int    `bun:"team"`
	TeeColor      string  `bun:"tee_color"`
}

// Hole is one hole of the course a tournament is played on.
type Hole struct {
	bun.BaseModel `bun:"table:holes,alias:h"`

	ID             int64          `bun:"id,pk,autoincrement"`
	TournamentID   int64          `bun:"tournament_id,notnull"`
	Number         int            `bun:"hole_number,notnull"`
	Par            int            `bun:"par,notnull"`
	HandicapRating int            `bun:"handicap_rating"`
	Yardages       map[string]int `bun:"yardages,type:jsonb"`
}

// Score is the recorded result for one (player, hole) pair. Rows are
// upserted on the (tournament, player, hole) key as the round progresses.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	ID              int64     `bun:"id,pk,autoincrement"`
	TournamentID    int64     `bun:"tournament_id,notnull"`
	PlayerID        int64     `bun:"player_id,notnull"`
	HoleNumber      int       `bun:"hole_number,notnull"`
	Strokes         *int      `bun:"strokes"`
	Greenie         bool      `bun:"greenie,notnull,default:false"`
	GreenieDistance *float64  `bun:"greenie_distance"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
