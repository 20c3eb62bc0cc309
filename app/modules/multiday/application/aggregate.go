package multidayservice

import (
	"sort"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

const holesPerRound = 18

// ComputeStandings rolls per-round finishes into the overall event
// leaderboard. Rounds still in setup or scheduled are skipped. Points come
// from the event's place table, with unmapped places worth nothing; ranking
// is points first, then wins, then fewest total strokes.
func ComputeStandings(event Event, roster []EventPlayer, rounds []EventRound) []Standing {
	points := make(map[int]float64, len(event.PointSystem))
	for _, rule := range event.PointSystem {
		points[rule.Place] = rule.Points
	}

	standings := make([]Standing, len(roster))
	byPlayer := make(map[int64]*Standing, len(roster))
	for i, p := range roster {
		standings[i] = Standing{PlayerID: p.ID, PlayerName: p.Name, Team: p.Team}
		byPlayer[p.ID] = &standings[i]
	}

	for _, round := range rounds {
		if round.Status == sharedtypes.RoundStatusSetup || round.Status == sharedtypes.RoundStatusScheduled {
			continue
		}
		for _, result := range roundResults(round) {
			eventPlayerID, linked := round.PlayerLinks[result.playerID]
			if !linked {
				continue
			}
			standing, onRoster := byPlayer[eventPlayerID]
			if !onRoster {
				continue
			}

			earned := points[result.position]
			standing.TotalPoints += earned
			standing.TotalStrokes += result.grossTotal
			if result.position == 1 {
				standing.Wins++
			}
			standing.RoundResults = append(standing.RoundResults, RoundResult{
				TournamentID: round.TournamentID,
				RoundName:    round.Name,
				DayNumber:    round.DayNumber,
				RoundNumber:  round.RoundNumber,
				Position:     result.position,
				Points:       earned,
				GrossTotal:   result.grossTotal,
				ToPar:        result.toPar,
			})
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.TotalStrokes < b.TotalStrokes
	})
	for i := range standings {
		standings[i].Position = i + 1
	}
	return standings
}

// roundFinish is one competitor's finish within a single round, keyed by a
// round-local player id. Team games anchor the team on its first player.
type roundFinish struct {
	playerID   sharedtypes.PlayerID
	position   int
	grossTotal int
	toPar      int
}

// roundResults ranks one round by gross strokes. Team rounds score the best
// ball per hole; individual rounds sum each player's own card. Competitors
// with no recorded holes are left out rather than ranked on an empty card.
func roundResults(round EventRound) []roundFinish {
	snap := round.Snapshot

	parByHole := make(map[sharedtypes.HoleNumber]int, len(snap.Holes))
	for _, h := range snap.Holes {
		parByHole[h.Number] = h.Par
	}
	par := func(n sharedtypes.HoleNumber) int {
		if p, ok := parByHole[n]; ok && p > 0 {
			return p
		}
		return 4
	}

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

	var finishes []roundFinish
	if round.IsTeamGame {
		byTeam := make(map[int][]sharedtypes.Player)
		teamIDs := make([]int, 0, 4)
		for _, p := range snap.Players {
			if p.Team == nil {
				continue
			}
			if _, seen := byTeam[*p.Team]; !seen {
				teamIDs = append(teamIDs, *p.Team)
			}
			byTeam[*p.Team] = append(byTeam[*p.Team], p)
		}
		sort.Ints(teamIDs)

		for _, teamID := range teamIDs {
			members := byTeam[teamID]
			total, playedPar, played := 0, 0, 0
			for n := sharedtypes.HoleNumber(1); n <= holesPerRound; n++ {
				best, found := 0, false
				for _, m := range members {
					if g, ok := gross[m.ID][n]; ok && (!found || g < best) {
						best, found = g, true
					}
				}
				if found {
					total += best
					playedPar += par(n)
					played++
				}
			}
			if played == 0 {
				continue
			}
			finishes = append(finishes, roundFinish{
				playerID:   members[0].ID,
				grossTotal: total,
				toPar:      total - playedPar,
			})
		}
	} else {
		for _, p := range snap.Players {
			if len(gross[p.ID]) == 0 {
				continue
			}
			total, playedPar := 0, 0
			for n, g := range gross[p.ID] {
				total += g
				playedPar += par(n)
			}
			finishes = append(finishes, roundFinish{
				playerID:   p.ID,
				grossTotal: total,
				toPar:      total - playedPar,
			})
		}
	}

	sort.SliceStable(finishes, func(i, j int) bool { return finishes[i].grossTotal < finishes[j].grossTotal })
	for i := range finishes {
		finishes[i].position = i + 1
	}
	return finishes
}

// ComputePayouts turns the final standings into per-place purse amounts.
// Percent rules take their share of the pot; fixed rules pay as written.
// Places beyond the payout table win nothing.
func ComputePayouts(event Event, pot float64, standings []Standing) map[int64]float64 {
	payouts := make(map[int64]float64)
	rules := make(map[int]PayoutRule, len(event.Payouts))
	for _, rule := range event.Payouts {
		rules[rule.Place] = rule
	}
	for _, s := range standings {
		rule, ok := rules[s.Position]
		if !ok {
			continue
		}
		amount := rule.Fixed
		if rule.Percent > 0 {
			amount = pot * rule.Percent / 100
		}
		if amount > 0 {
			payouts[s.PlayerID] = amount
		}
	}
	return payouts
}
