package leaderboardservice

import (
	"sort"

	"github.com/fairway-club/scorekeeper/app/modules/handicap"
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

const holesPerRound = 18

// Compute builds the full leaderboard for one round snapshot. It is pure:
// the snapshot is never mutated and identical snapshots produce identical
// leaderboards, so it is safe to call concurrently and repeatedly against a
// round still in progress. Holes without a recorded score are excluded from
// totals rather than treated as errors.
func Compute(snap sharedtypes.RoundSnapshot) (Leaderboard, error) {
	cfg := snap.Config
	if cfg.GameType == "" {
		return Leaderboard{}, errMissingGameType()
	}
	if cfg.SlopeRating <= 0 {
		cfg.SlopeRating = handicap.NeutralSlope
	}
	if cfg.HandicapMode == "" {
		cfg.HandicapMode = sharedtypes.HandicapModeGross
	}

	holeByNumber := make(map[sharedtypes.HoleNumber]sharedtypes.Hole, len(snap.Holes))
	totalPar, front9Par, back9Par := 0, 0, 0
	for _, h := range snap.Holes {
		holeByNumber[h.Number] = h
		totalPar += h.Par
		if h.Number <= 9 {
			front9Par += h.Par
		} else {
			back9Par += h.Par
		}
	}

	display, lowest := handicap.DisplayHandicaps(snap.Players, cfg.HandicapMode, cfg.SlopeRating)

	greenieHoles := make(map[sharedtypes.HoleNumber]bool, len(cfg.GreenieHoles))
	for _, n := range cfg.GreenieHoles {
		greenieHoles[n] = true
	}

	rows := make([]PlayerResult, 0, len(snap.Players))
	for _, p := range snap.Players {
		rows = append(rows, playerRow(p, snap, cfg, display[p.ID], holeByNumber, greenieHoles))
	}

	lb := Leaderboard{
		GameType:       cfg.GameType,
		HandicapMode:   cfg.HandicapMode,
		LowestHandicap: lowest,
		TotalPar:       totalPar,
		Front9Par:      front9Par,
		Back9Par:       back9Par,
		GreenieHoles:   cfg.GreenieHoles,
	}

	switch cfg.GameType {
	case sharedtypes.GameTypeStrokePlay:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].GrossTotal < rows[j].GrossTotal })
		lb.Players = rows
	case sharedtypes.GameTypeMatchPlay:
		ranked, err := rankMatchPlay(rows)
		if err != nil {
			return Leaderboard{}, err
		}
		lb.Players = ranked
	case sharedtypes.GameTypeScramble, sharedtypes.GameTypeBestBall:
		lb.Teams = rankTeams(rows, cfg.GameType)
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].NetTotal < rows[j].NetTotal })
		lb.Players = rows
	case sharedtypes.GameTypeSkins:
		skins, carryover := rankSkins(rows, cfg.SkinsAmount)
		lb.Skins = skins
		lb.SkinsCarryover = carryover
		lb.Players = rows
	case sharedtypes.GameTypeHighLow:
		hl, err := highLowFromTeams(snap, cfg)
		if err != nil {
			return Leaderboard{}, err
		}
		lb.HighLow = hl
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].NetTotal < rows[j].NetTotal })
		lb.Players = rows
	default:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].NetTotal < rows[j].NetTotal })
		lb.Players = rows
	}

	lb.Settlements = computeSettlements(lb.Players, cfg)
	return lb, nil
}

// playerRow builds one player's scorecard and totals. Net figures come from
// the fair-allocation stroke map (the scorecard dots), which already
// reflects the round's handicap mode.
func playerRow(
	p sharedtypes.Player,
	snap sharedtypes.RoundSnapshot,
	cfg sharedtypes.RoundConfig,
	displayHandicap int,
	holeByNumber map[sharedtypes.HoleNumber]sharedtypes.Hole,
	greenieHoles map[sharedtypes.HoleNumber]bool,
) PlayerResult {
	strokeMap := handicap.AllocateStrokes(displayHandicap, snap.Holes)

	scoreByHole := make(map[sharedtypes.HoleNumber]sharedtypes.Score, holesPerRound)
	for _, s := range snap.Scores {
		if s.PlayerID == p.ID {
			scoreByHole[s.Hole] = s
		}
	}

	row := PlayerResult{
		Player: PlayerView{
			ID:              p.ID,
			Name:            p.Name,
			HandicapIndex:   p.HandicapIndex,
			CourseHandicap:  handicap.CourseHandicap(p.HandicapIndex, cfg.SlopeRating),
			DisplayHandicap: displayHandicap,
			Team:            p.Team,
			TeeColor:        p.TeeColor,
		},
		HoleScores: make([]HoleScore, 0, holesPerRound),
	}

	playedPar := 0
	for n := sharedtypes.HoleNumber(1); n <= holesPerRound; n++ {
		par := 4
		if h, ok := holeByNumber[n]; ok && h.Par > 0 {
			par = h.Par
		}
		dots := strokeMap[n]
		cell := HoleScore{Hole: int(n), Par: par, Strokes: dots}

		score, ok := scoreByHole[n]
		if ok && score.Strokes != nil {
			gross := *score.Strokes
			net := handicap.NetScore(gross, dots)
			cell.Gross = &gross
			cell.Net = &net
			cell.Greenie = score.Greenie
			cell.GreenieDistance = score.GreenieDistance

			row.GrossTotal += gross
			row.NetTotal += net
			row.HolesPlayed++
			playedPar += par
			if n <= 9 {
				row.Front9Gross += gross
				row.Front9Net += net
			} else {
				row.Back9Gross += gross
				row.Back9Net += net
			}

			switch diff := gross - par; {
			case diff <= -1:
				row.Stats.Birdies++
			case diff == 0:
				row.Stats.Pars++
			case diff == 1:
				row.Stats.Bogeys++
			case diff == 2:
				row.Stats.Doubles++
			default:
				row.Stats.Others++
			}

			if score.Greenie && greenieHoles[n] {
				row.GreeniesWon++
			}
		}
		row.HoleScores = append(row.HoleScores, cell)
	}

	row.ToPar = row.GrossTotal - playedPar
	row.ToParNet = row.NetTotal - playedPar
	return row
}
