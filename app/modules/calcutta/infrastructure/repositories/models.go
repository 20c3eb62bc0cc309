package calcuttadb

import (
	"time"

	"github.com/uptrace/bun"

	calcuttaservice "github.com/fairway-club/scorekeeper/app/modules/calcutta/application"
)

// CalcuttaConfig is a tournament's auction setup. One row per tournament.
type CalcuttaConfig struct {
	bun.BaseModel `bun:"table:calcutta_configs,alias:cc"`

	ID           int64                        `bun:"id,pk,autoincrement"`
	TournamentID int64                        `bun:"tournament_id,notnull,unique"`
	Enabled      bool                         `bun:"enabled,notnull,default:false"`
	Payouts      []calcuttaservice.PayoutRule `bun:"payout_structure,type:jsonb"`
	UpdatedAt    time.Time                    `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// CalcuttaPurchase is one buyer's winning bid on a team, keyed by the
// (tournament, team) pair.
type CalcuttaPurchase struct {
	bun.BaseModel `bun:"table:calcutta_purchases,alias:cp"`

	ID           int64   `bun:"id,pk,autoincrement"`
	TournamentID int64   `bun:"tournament_id,notnull"`
	TeamNumber   int     `bun:"team_number,notnull"`
	BuyerName    string  `bun:"buyer_name,notnull"`
	Amount       float64 `bun:"amount,notnull"`
}
