package calcuttaservice

import (
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// PayoutType selects how a payout rule is valued.
type PayoutType string

const (
	PayoutPercent PayoutType = "percent"
	PayoutFixed   PayoutType = "fixed"
)

// PayoutRule maps a finishing place to its share of the auction pot.
type PayoutRule struct {
	Place int        `json:"place"`
	Type  PayoutType `json:"type"`
	Value float64    `json:"value"`
}

// Config is the calcutta setup for one tournament.
type Config struct {
	TournamentID int64        `json:"tournament_id"`
	Enabled      bool         `json:"enabled"`
	Payouts      []PayoutRule `json:"payout_structure"`
}

// DefaultPayouts is the structure used before a tournament configures its
// own: half the pot to the winner, then 30 and 20 percent.
func DefaultPayouts() []PayoutRule {
	return []PayoutRule{
		{Place: 1, Type: PayoutPercent, Value: 50},
		{Place: 2, Type: PayoutPercent, Value: 30},
		{Place: 3, Type: PayoutPercent, Value: 20},
	}
}

// Purchase is one buyer's winning auction bid on a team.
type Purchase struct {
	TeamNumber int     `json:"team_number"`
	BuyerName  string  `json:"buyer_name"`
	Amount     float64 `json:"amount"`
}

// TeamStanding is one team's gross position in the round.
type TeamStanding struct {
	TeamNumber  int                  `json:"team_number"`
	TeamName    string               `json:"team_name"`
	Players     []sharedtypes.Player `json:"players"`
	Score       int                  `json:"score"`
	HolesPlayed int                  `json:"holes_played"`
}

// Payout is one line of the settled auction: what the team's buyer paid,
// what the finish returned, and the difference.
type Payout struct {
	Place          int     `json:"place"`
	TeamNumber     int     `json:"team_number"`
	TeamName       string  `json:"team_name"`
	Score          int     `json:"score"`
	HolesPlayed    int     `json:"holes_played"`
	BuyerName      string  `json:"buyer_name"`
	PurchaseAmount float64 `json:"purchase_amount"`
	Payout         float64 `json:"payout"`
	Profit         float64 `json:"profit"`
}

// Results is the full settled view of a tournament's calcutta.
type Results struct {
	Enabled   bool           `json:"enabled"`
	TotalPot  float64        `json:"total_pot"`
	Standings []TeamStanding `json:"standings"`
	Payouts   []Payout       `json:"payouts"`
	Structure []PayoutRule   `json:"payout_structure"`
}

// Board is the auction view before settlement: who bought which team and
// what the pot holds so far.
type Board struct {
	Config    Config                       `json:"config"`
	Purchases []Purchase                   `json:"purchases"`
	Teams     map[int][]sharedtypes.Player `json:"teams"`
	TotalPot  float64                      `json:"total_pot"`
}
