package leaderboardservice

import (
	"fmt"
	"sort"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// computeSettlements turns the finished standings into a short list of who
// pays whom. The main bet is a stroke-play wager on lowest net total; other
// game types settle through their own mechanics, so only greenies pay there.
// When the lead is shared, nobody pays the main bet.
func computeSettlements(rows []PlayerResult, cfg sharedtypes.RoundConfig) []Settlement {
	if cfg.BetAmount == 0 && cfg.GreenieAmount == 0 {
		return nil
	}

	var settlements []Settlement

	if cfg.GameType == sharedtypes.GameTypeStrokePlay && cfg.BetAmount > 0 && len(rows) >= 2 {
		byNet := make([]PlayerResult, len(rows))
		copy(byNet, rows)
		sort.SliceStable(byNet, func(i, j int) bool { return byNet[i].NetTotal < byNet[j].NetTotal })

		if byNet[0].NetTotal != byNet[1].NetTotal {
			winner := byNet[0]
			for _, loser := range byNet[1:] {
				settlements = append(settlements, Settlement{
					From:   loser.Player.Name,
					To:     winner.Player.Name,
					Amount: cfg.BetAmount,
					Reason: "Main bet",
				})
			}
		}
	}

	if cfg.GreenieAmount > 0 {
		for _, winner := range rows {
			if winner.GreeniesWon == 0 {
				continue
			}
			for _, other := range rows {
				if other.Player.ID == winner.Player.ID {
					continue
				}
				settlements = append(settlements, Settlement{
					From:   other.Player.Name,
					To:     winner.Player.Name,
					Amount: cfg.GreenieAmount * float64(winner.GreeniesWon),
					Reason: fmt.Sprintf("Greenies (%d)", winner.GreeniesWon),
				})
			}
		}
	}

	return consolidate(settlements)
}

// consolidate merges payments between the same pair into one direction.
// Opposite payments cancel; a pair that nets to zero disappears entirely.
func consolidate(settlements []Settlement) []Settlement {
	type pair struct{ from, to string }
	merged := make(map[pair]Settlement)
	order := make([]pair, 0, len(settlements))

	for _, s := range settlements {
		key := pair{s.From, s.To}
		reverse := pair{s.To, s.From}

		if existing, ok := merged[reverse]; ok {
			existing.Amount -= s.Amount
			if existing.Amount < 0 {
				delete(merged, reverse)
				s.Amount = -existing.Amount
				merged[key] = s
				order = append(order, key)
			} else {
				merged[reverse] = existing
			}
			continue
		}
		if existing, ok := merged[key]; ok {
			existing.Amount += s.Amount
			merged[key] = existing
			continue
		}
		merged[key] = s
		order = append(order, key)
	}

	out := make([]Settlement, 0, len(merged))
	for _, key := range order {
		if s, ok := merged[key]; ok && s.Amount > 0 {
			out = append(out, s)
		}
	}
	return out
}
