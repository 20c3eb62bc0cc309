package leaderboardservice

import (
	"fmt"
	"sort"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// rankMatchPlay scores a head-to-head match hole by hole on net scores.
// Holes where either player has no score are skipped. The leader sorts first.
func rankMatchPlay(rows []PlayerResult) ([]PlayerResult, error) {
	if len(rows) != 2 {
		return nil, errMatchPlayPlayers(len(rows))
	}

	p1, p2 := &rows[0], &rows[1]
	for i := 0; i < holesPerRound; i++ {
		n1, n2 := p1.HoleScores[i].Net, p2.HoleScores[i].Net
		if n1 == nil || n2 == nil {
			continue
		}
		if *n1 < *n2 {
			p1.HolesWon++
		} else if *n2 < *n1 {
			p2.HolesWon++
		}
	}

	p1.MatchStatus = matchStatus(p1.HolesWon, p2.HolesWon)
	p2.MatchStatus = matchStatus(p2.HolesWon, p1.HolesWon)

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].HolesWon > rows[j].HolesWon })
	return rows, nil
}

func matchStatus(won, lost int) string {
	switch {
	case won > lost:
		return fmt.Sprintf("%d UP", won-lost)
	case won < lost:
		return fmt.Sprintf("%d DN", lost-won)
	default:
		return "AS"
	}
}

// rankTeams aggregates player rows into team standings. Best ball takes the
// lowest recorded ball per hole; scramble records one ball for the whole team,
// so the first recorded score stands for everyone. Teams rank by net total.
func rankTeams(rows []PlayerResult, gameType sharedtypes.GameType) []TeamResult {
	byTeam := make(map[int][]PlayerResult)
	teamIDs := make([]int, 0, 4)
	for _, row := range rows {
		teamID := 0
		if row.Player.Team != nil {
			teamID = *row.Player.Team
		}
		if _, seen := byTeam[teamID]; !seen {
			teamIDs = append(teamIDs, teamID)
		}
		byTeam[teamID] = append(byTeam[teamID], row)
	}
	sort.Ints(teamIDs)

	results := make([]TeamResult, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		members := byTeam[teamID]
		tr := TeamResult{Team: teamID, Players: members}

		for i := 0; i < holesPerRound; i++ {
			if gameType == sharedtypes.GameTypeBestBall {
				bestGross, bestNet, found := 0, 0, false
				for _, m := range members {
					cell := m.HoleScores[i]
					if cell.Gross == nil {
						continue
					}
					if !found || *cell.Gross < bestGross {
						bestGross = *cell.Gross
					}
					if !found || *cell.Net < bestNet {
						bestNet = *cell.Net
					}
					found = true
				}
				if found {
					tr.GrossTotal += bestGross
					tr.NetTotal += bestNet
				}
				continue
			}
			for _, m := range members {
				cell := m.HoleScores[i]
				if cell.Gross != nil {
					tr.GrossTotal += *cell.Gross
					tr.NetTotal += *cell.Net
					break
				}
			}
		}
		results = append(results, tr)
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].NetTotal < results[j].NetTotal })
	return results
}

// rankSkins awards each hole's skin to the sole lowest net score among the
// players who have one. Ties push the hole's value onto the next skin won.
// Rows are annotated with their skins and re-sorted by winnings; the leftover
// carryover count is returned for display on a round still in progress.
func rankSkins(rows []PlayerResult, skinValue float64) ([]SkinAward, int) {
	var awards []SkinAward
	carryover := 0

	for i := 0; i < holesPerRound; i++ {
		bestIdx, bestNet, tied := -1, 0, false
		for j := range rows {
			net := rows[j].HoleScores[i].Net
			if net == nil {
				continue
			}
			switch {
			case bestIdx < 0 || *net < bestNet:
				bestIdx, bestNet, tied = j, *net, false
			case *net == bestNet:
				tied = true
			}
		}
		if bestIdx < 0 {
			continue
		}
		if tied {
			carryover++
			continue
		}
		awards = append(awards, SkinAward{
			Hole:       i + 1,
			PlayerID:   rows[bestIdx].Player.ID,
			PlayerName: rows[bestIdx].Player.Name,
			Value:      skinValue * float64(1+carryover),
			Carryovers: carryover,
		})
		carryover = 0
	}

	for j := range rows {
		rows[j].SkinsWon = nil
		rows[j].SkinsTotal = 0
		for _, a := range awards {
			if a.PlayerID == rows[j].Player.ID {
				rows[j].SkinsWon = append(rows[j].SkinsWon, a)
				rows[j].SkinsTotal += a.Value
			}
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SkinsTotal > rows[j].SkinsTotal })

	return awards, carryover
}
