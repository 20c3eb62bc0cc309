package calcuttaservice

import (
	"sort"
	"strings"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

const holesPerRound = 18

// TeamsByNumber groups a round's roster by team. Players without a team are
// not part of the auction.
func TeamsByNumber(players []sharedtypes.Player) map[int][]sharedtypes.Player {
	teams := make(map[int][]sharedtypes.Player)
	for _, p := range players {
		if p.Team == nil {
			continue
		}
		teams[*p.Team] = append(teams[*p.Team], p)
	}
	return teams
}

// TotalPot sums every winning bid.
func TotalPot(purchases []Purchase) float64 {
	var pot float64
	for _, p := range purchases {
		pot += p.Amount
	}
	return pot
}

// ComputeStandings ranks the teams on gross strokes. The per-hole team score
// follows the round's format: one ball for scramble and best ball, best plus
// worst for high-low, and the plain sum otherwise. A hole counts as played
// once any member has a score. Ties rank the team with more holes played
// first.
func ComputeStandings(snap sharedtypes.RoundSnapshot) []TeamStanding {
	gross := make(map[sharedtypes.PlayerID]map[sharedtypes.HoleNumber]int)
	for _, s := range snap.Scores {
		if s.Strokes == nil {
			continue
		}
		if gross[s.PlayerID] == nil {
			gross[s.PlayerID] = make(map[sharedtypes.HoleNumber]int, holesPerRound)
		}
		gross[s.PlayerID][s.Hole] = *s.Strokes
	}

	teams := TeamsByNumber(snap.Players)
	teamNumbers := make([]int, 0, len(teams))
	for n := range teams {
		teamNumbers = append(teamNumbers, n)
	}
	sort.Ints(teamNumbers)

	standings := make([]TeamStanding, 0, len(teams))
	for _, teamNumber := range teamNumbers {
		members := teams[teamNumber]
		total, played := 0, 0
		for n := sharedtypes.HoleNumber(1); n <= holesPerRound; n++ {
			var holeScores []int
			for _, m := range members {
				if g, ok := gross[m.ID][n]; ok {
					holeScores = append(holeScores, g)
				}
			}
			if len(holeScores) == 0 {
				continue
			}
			played++
			total += teamHoleScore(snap.Config.GameType, holeScores)
		}

		names := make([]string, len(members))
		for i, m := range members {
			names[i] = m.Name
		}
		standings = append(standings, TeamStanding{
			TeamNumber:  teamNumber,
			TeamName:    strings.Join(names, " & "),
			Players:     members,
			Score:       total,
			HolesPlayed: played,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Score == standings[j].Score {
			return standings[i].HolesPlayed > standings[j].HolesPlayed
		}
		return standings[i].Score < standings[j].Score
	})
	return standings
}

func teamHoleScore(gameType sharedtypes.GameType, holeScores []int) int {
	low, high := holeScores[0], holeScores[0]
	sum := 0
	for _, s := range holeScores {
		if s < low {
			low = s
		}
		if s > high {
			high = s
		}
		sum += s
	}
	switch gameType {
	case sharedtypes.GameTypeScramble, sharedtypes.GameTypeBestBall:
		return low
	case sharedtypes.GameTypeHighLow:
		return low + high
	default:
		return sum
	}
}

// ComputeResults settles the auction against the current standings. Every
// team gets a payout line; places beyond the payout table and unsold teams
// still appear, with zero payout and buyer "Unsold" respectively.
func ComputeResults(cfg Config, purchases []Purchase, snap sharedtypes.RoundSnapshot) Results {
	if !cfg.Enabled {
		return Results{Enabled: false, Standings: []TeamStanding{}, Payouts: []Payout{}}
	}

	standings := ComputeStandings(snap)
	pot := TotalPot(purchases)

	byTeam := make(map[int]Purchase, len(purchases))
	for _, p := range purchases {
		byTeam[p.TeamNumber] = p
	}
	rules := make(map[int]PayoutRule, len(cfg.Payouts))
	for _, r := range cfg.Payouts {
		rules[r.Place] = r
	}

	payouts := make([]Payout, 0, len(standings))
	for i, team := range standings {
		place := i + 1

		var amount float64
		if rule, ok := rules[place]; ok {
			if rule.Type == PayoutPercent {
				amount = pot * rule.Value / 100
			} else {
				amount = rule.Value
			}
		}

		buyer, paid := "Unsold", 0.0
		if purchase, sold := byTeam[team.TeamNumber]; sold {
			buyer, paid = purchase.BuyerName, purchase.Amount
		}

		payouts = append(payouts, Payout{
			Place:          place,
			TeamNumber:     team.TeamNumber,
			TeamName:       team.TeamName,
			Score:          team.Score,
			HolesPlayed:    team.HolesPlayed,
			BuyerName:      buyer,
			PurchaseAmount: paid,
			Payout:         amount,
			Profit:         amount - paid,
		})
	}

	return Results{
		Enabled:   true,
		TotalPot:  pot,
		Standings: standings,
		Payouts:   payouts,
		Structure: cfg.Payouts,
	}
}
