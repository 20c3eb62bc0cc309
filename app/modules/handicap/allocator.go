// Package handicap derives playing handicaps and per-hole stroke allocations.
//
// Two stroke formulas coexist on purpose and serve different consumers:
//
//   - AllocateStrokes distributes a course handicap one stroke per pass over
//     the hardest non-par-3 holes first. The leaderboard uses this map for
//     scorecard dots and net totals.
//   - StrokesOnHole is the simple floor/remainder formula with the par-3
//     exclusion. The side-bet match engine compares net scores built from it.
//
// They diverge for handicaps that are not a multiple of 18; consumers must
// not mix them within one comparison.
package handicap

import (
	"math"
	"sort"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// NeutralSlope is the slope rating of a course of standard difficulty.
const NeutralSlope = 113

// maxPasses bounds allocation at five strokes per hole (course handicap 90
// on an 18-hole course).
const maxPasses = 5

// missingRating sorts holes without a difficulty rank last.
const missingRating = 99

// CourseHandicap converts a handicap index to whole course-handicap strokes
// for the given slope rating, rounding half up. Results never go negative.
func CourseHandicap(handicapIndex float64, slopeRating int) int {
	if handicapIndex <= 0 {
		return 0
	}
	if slopeRating <= 0 {
		slopeRating = NeutralSlope
	}
	ch := int(math.Round(handicapIndex * float64(slopeRating) / NeutralSlope))
	if ch < 0 {
		return 0
	}
	return ch
}

// DisplayHandicaps derives the playing handicap for every player in a round
// under the given mode:
//
//   - none:  everyone plays scratch
//   - gross: full course handicap
//   - net:   relative to the lowest course handicap, floored at zero
//
// The returned lowest value is only meaningful in net mode.
func DisplayHandicaps(players []sharedtypes.Player, mode sharedtypes.HandicapMode, slopeRating int) (display map[sharedtypes.PlayerID]int, lowest int) {
	display = make(map[sharedtypes.PlayerID]int, len(players))

	course := make(map[sharedtypes.PlayerID]int, len(players))
	for _, p := range players {
		course[p.ID] = CourseHandicap(p.HandicapIndex, slopeRating)
	}

	switch mode {
	case sharedtypes.HandicapModeNone:
		for _, p := range players {
			display[p.ID] = 0
		}
	case sharedtypes.HandicapModeNet:
		first := true
		for _, ch := range course {
			if first || ch < lowest {
				lowest = ch
				first = false
			}
		}
		for _, p := range players {
			d := course[p.ID] - lowest
			if d < 0 {
				d = 0
			}
			display[p.ID] = d
		}
	default: // gross
		for _, p := range players {
			display[p.ID] = course[p.ID]
		}
	}
	return display, lowest
}

// AllocateStrokes builds the fair-allocation stroke map for one player.
// Holes are ordered non-par-3s before par-3s, each group hardest first, and
// strokes are handed out one per hole in that order, repeating full passes
// until the handicap is exhausted or the five-pass cap is reached. A partial
// final pass covers the front of the allocation order.
func AllocateStrokes(courseHandicap int, holes []sharedtypes.Hole) map[sharedtypes.HoleNumber]int {
	strokes := make(map[sharedtypes.HoleNumber]int, len(holes))
	for _, h := range holes {
		strokes[h.Number] = 0
	}
	if courseHandicap <= 0 || len(holes) == 0 {
		return strokes
	}

	order := allocationOrder(holes)

	remaining := courseHandicap
	for pass := 0; pass < maxPasses && remaining > 0; pass++ {
		for _, h := range order {
			if remaining <= 0 {
				break
			}
			strokes[h.Number]++
			remaining--
		}
	}
	return strokes
}

// allocationOrder sorts holes for stroke distribution: every non-par-3
// before any par-3, hardest (lowest rating) first within each group, hole
// number as a stable tiebreak.
func allocationOrder(holes []sharedtypes.Hole) []sharedtypes.Hole {
	nonPar3 := make([]sharedtypes.Hole, 0, len(holes))
	par3 := make([]sharedtypes.Hole, 0, 4)
	for _, h := range holes {
		if h.Par == 3 {
			par3 = append(par3, h)
		} else {
			nonPar3 = append(nonPar3, h)
		}
	}
	byDifficulty := func(group []sharedtypes.Hole) {
		sort.SliceStable(group, func(i, j int) bool {
			return effectiveRating(group[i]) < effectiveRating(group[j])
		})
	}
	byDifficulty(nonPar3)
	byDifficulty(par3)
	return append(nonPar3, par3...)
}

func effectiveRating(h sharedtypes.Hole) int {
	if h.HandicapRating <= 0 {
		return missingRating
	}
	return h.HandicapRating
}

// StrokesOnHole is the simple floor/remainder stroke formula used by the
// side-bet match engine. Par-3 holes never receive strokes under this
// formula.
func StrokesOnHole(courseHandicap int, holeHandicapRating, holePar int) int {
	if courseHandicap <= 0 || holePar == 3 {
		return 0
	}
	full := courseHandicap / 18
	if holeHandicapRating > 0 && holeHandicapRating <= courseHandicap%18 {
		return full + 1
	}
	return full
}

// NetScore converts a gross score to net given the strokes received on that
// hole. The inverse holds exactly: gross == net + strokes.
func NetScore(gross, strokesOnHole int) int {
	return gross - strokesOnHole
}
