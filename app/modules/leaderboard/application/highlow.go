package leaderboardservice

import (
	"sort"
	"strings"

	"github.com/fairway-club/scorekeeper/app/modules/handicap"
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// segmentRange is the inclusive hole span of one Nassau segment.
type segmentRange struct {
	start, end int
}

// nassauSegments maps a format onto its hole spans. The overall segment is
// tracked separately and always covers the full round.
func nassauSegments(format sharedtypes.NassauFormat) map[sharedtypes.BetSegment]segmentRange {
	if format == sharedtypes.NassauNines {
		return map[sharedtypes.BetSegment]segmentRange{
			sharedtypes.SegmentFront: {1, 9},
			sharedtypes.SegmentBack:  {10, 18},
		}
	}
	return map[sharedtypes.BetSegment]segmentRange{
		sharedtypes.SegmentFront:  {1, 6},
		sharedtypes.SegmentMiddle: {7, 12},
		sharedtypes.SegmentBack:   {13, 18},
	}
}

// highLowFromTeams splits the round's players by their team assignment and
// scores the match between the two sides. Players without a team are left out.
func highLowFromTeams(snap sharedtypes.RoundSnapshot, cfg sharedtypes.RoundConfig) (*HighLowStandings, error) {
	byTeam := make(map[int][]sharedtypes.Player)
	teamIDs := make([]int, 0, 2)
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

	var team1, team2 []sharedtypes.Player
	if len(teamIDs) > 0 {
		team1 = byTeam[teamIDs[0]]
	}
	if len(teamIDs) > 1 {
		team2 = byTeam[teamIDs[1]]
	}
	return ComputeHighLow(snap, cfg, team1, team2)
}

// ComputeHighLow scores a two-team high-low match. Each completed hole awards
// a low point (lower team-best net) and a high point (lower team-worst net),
// accumulated per Nassau segment and overall. Holes where either team has no
// net score yet are marked incomplete and award nothing.
func ComputeHighLow(snap sharedtypes.RoundSnapshot, cfg sharedtypes.RoundConfig, team1, team2 []sharedtypes.Player) (*HighLowStandings, error) {
	if len(team1) == 0 {
		return nil, errEmptyHighLowTeam("team1")
	}
	if len(team2) == 0 {
		return nil, errEmptyHighLowTeam("team2")
	}

	if cfg.SlopeRating <= 0 {
		cfg.SlopeRating = handicap.NeutralSlope
	}
	if cfg.HandicapMode == "" {
		cfg.HandicapMode = sharedtypes.HandicapModeGross
	}
	format := cfg.NassauFormat
	if format == "" {
		format = sharedtypes.NassauSixes
	}

	allPlayers := make([]sharedtypes.Player, 0, len(team1)+len(team2))
	allPlayers = append(allPlayers, team1...)
	allPlayers = append(allPlayers, team2...)
	display, _ := handicap.DisplayHandicaps(allPlayers, cfg.HandicapMode, cfg.SlopeRating)

	strokeMaps := make(map[sharedtypes.PlayerID]map[sharedtypes.HoleNumber]int, len(allPlayers))
	for _, p := range allPlayers {
		strokeMaps[p.ID] = handicap.AllocateStrokes(display[p.ID], snap.Holes)
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

	teamNets := func(team []sharedtypes.Player, hole sharedtypes.HoleNumber) []int {
		nets := make([]int, 0, len(team))
		for _, p := range team {
			g, ok := gross[p.ID][hole]
			if !ok {
				continue
			}
			nets = append(nets, handicap.NetScore(g, strokeMaps[p.ID][hole]))
		}
		return nets
	}

	segments := nassauSegments(format)
	standings := &HighLowStandings{
		Team1:    HighLowTeam{Name: teamName(team1), Players: playerIDs(team1)},
		Team2:    HighLowTeam{Name: teamName(team2), Players: playerIDs(team2)},
		Segments: make(map[sharedtypes.BetSegment]SegmentPoints, len(segments)),
	}
	for seg, r := range segments {
		standings.Segments[seg] = SegmentPoints{StartHole: r.start, EndHole: r.end}
	}
	standings.Overall = SegmentPoints{StartHole: 1, EndHole: holesPerRound}

	for n := sharedtypes.HoleNumber(1); n <= holesPerRound; n++ {
		nets1 := teamNets(team1, n)
		nets2 := teamNets(team2, n)
		if len(nets1) == 0 || len(nets2) == 0 {
			standings.HoleResults = append(standings.HoleResults, HighLowHole{Hole: int(n), Incomplete: true})
			continue
		}

		low1, high1 := minMax(nets1)
		low2, high2 := minMax(nets2)

		hole := HighLowHole{
			Hole:     int(n),
			Team1Low: low1, Team1High: high1,
			Team2Low: low2, Team2High: high2,
		}

		hole.LowPointWinner = pointWinner(low1, low2)
		hole.HighPointWinner = pointWinner(high1, high2)
		for _, winner := range []string{hole.LowPointWinner, hole.HighPointWinner} {
			switch winner {
			case "team1":
				hole.Team1Points++
			case "team2":
				hole.Team2Points++
			}
		}
		standings.HoleResults = append(standings.HoleResults, hole)

		addHole(&standings.Overall, hole)
		for seg, r := range segments {
			if int(n) >= r.start && int(n) <= r.end {
				sp := standings.Segments[seg]
				addHole(&sp, hole)
				standings.Segments[seg] = sp
				break
			}
		}
	}

	finishSegment(&standings.Overall)
	for seg := range standings.Segments {
		sp := standings.Segments[seg]
		finishSegment(&sp)
		standings.Segments[seg] = sp
	}
	return standings, nil
}

func teamName(team []sharedtypes.Player) string {
	names := make([]string, len(team))
	for i, p := range team {
		names[i] = p.Name
	}
	return strings.Join(names, " & ")
}

func playerIDs(team []sharedtypes.Player) []sharedtypes.PlayerID {
	ids := make([]sharedtypes.PlayerID, len(team))
	for i, p := range team {
		ids[i] = p.ID
	}
	return ids
}

func minMax(vals []int) (min, max int) {
	min, max = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// pointWinner awards the point to the side with the lower score. For the high
// point this means the better of the two worst balls.
func pointWinner(score1, score2 int) string {
	switch {
	case score1 < score2:
		return "team1"
	case score2 < score1:
		return "team2"
	default:
		return "tie"
	}
}

func addHole(sp *SegmentPoints, hole HighLowHole) {
	sp.Team1Points += hole.Team1Points
	sp.Team2Points += hole.Team2Points
	sp.HolesPlayed++
}

func finishSegment(sp *SegmentPoints) {
	switch {
	case sp.Team1Points > sp.Team2Points:
		sp.Winner = "team1"
		sp.Margin = sp.Team1Points - sp.Team2Points
	case sp.Team2Points > sp.Team1Points:
		sp.Winner = "team2"
		sp.Margin = sp.Team2Points - sp.Team1Points
	default:
		sp.Winner = "tie"
		sp.Margin = 0
	}
}
