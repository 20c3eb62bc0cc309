package sidebetservice

import (
	"fmt"

	"github.com/fairway-club/scorekeeper/app/modules/handicap"
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

const holesPerRound = 18

// netsByHole is one player's net score per hole, sparse where unplayed.
type netsByHole map[sharedtypes.HoleNumber]int

// roundNets precomputes every player's per-hole net scores for the side-bet
// engine. Nets here use the simple floor/remainder stroke formula, under
// which par 3 holes never receive strokes; the leaderboard's fair-allocation
// dots are a different formula and must not be mixed into bet comparisons.
func roundNets(snap sharedtypes.RoundSnapshot) map[sharedtypes.PlayerID]netsByHole {
	cfg := snap.Config
	slope := cfg.SlopeRating
	if slope <= 0 {
		slope = handicap.NeutralSlope
	}
	mode := cfg.HandicapMode
	if mode == "" {
		mode = sharedtypes.HandicapModeGross
	}
	display, _ := handicap.DisplayHandicaps(snap.Players, mode, slope)

	holeByNumber := make(map[sharedtypes.HoleNumber]sharedtypes.Hole, len(snap.Holes))
	for _, h := range snap.Holes {
		holeByNumber[h.Number] = h
	}

	nets := make(map[sharedtypes.PlayerID]netsByHole, len(snap.Players))
	for _, p := range snap.Players {
		nets[p.ID] = make(netsByHole, holesPerRound)
	}
	for _, s := range snap.Scores {
		if s.Strokes == nil {
			continue
		}
		playerNets, ok := nets[s.PlayerID]
		if !ok {
			continue
		}
		rating, par := 0, 4
		if h, found := holeByNumber[s.Hole]; found {
			rating, par = h.HandicapRating, h.Par
		}
		strokes := handicap.StrokesOnHole(display[s.PlayerID], rating, par)
		playerNets[s.Hole] = handicap.NetScore(*s.Strokes, strokes)
	}
	return nets
}

// partyHoleScore aggregates one party's net score on a hole. The hole only
// counts once every member has a recorded score; highLow parties score
// low ball plus high ball, everyone else scores best ball. The same rule
// applies to one-member parties, where all three collapse to the lone net.
func partyHoleScore(party sharedtypes.Party, hole sharedtypes.HoleNumber, nets map[sharedtypes.PlayerID]netsByHole, highLow bool) (int, bool) {
	if len(party.PlayerIDs) == 0 {
		return 0, false
	}
	low, high := 0, 0
	for i, id := range party.PlayerIDs {
		net, ok := nets[id][hole]
		if !ok {
			return 0, false
		}
		if i == 0 || net < low {
			low = net
		}
		if i == 0 || net > high {
			high = net
		}
	}
	if highLow {
		return low + high, true
	}
	return low, true
}

// computeSegment walks the holes of one segment and tallies the match state.
// A hole with either side incomplete is skipped and stays in holesRemaining.
func computeSegment(
	bet sharedtypes.SideBet,
	segment sharedtypes.BetSegment,
	startHole, endHole int,
	nets map[sharedtypes.PlayerID]netsByHole,
) SegmentStatus {
	highLow := bet.UseHighLow || bet.GameType == sharedtypes.GameTypeHighLow

	status := SegmentStatus{
		Segment:   segment,
		StartHole: startHole,
		EndHole:   endHole,
		Amount:    bet.Amounts[segment],
	}

	for hole := startHole; hole <= endHole; hole++ {
		n := sharedtypes.HoleNumber(hole)
		s1, ok1 := partyHoleScore(bet.Party1, n, nets, highLow)
		s2, ok2 := partyHoleScore(bet.Party2, n, nets, highLow)
		if !ok1 || !ok2 {
			continue
		}
		status.HolesPlayed++
		switch {
		case s1 < s2:
			status.Party1Wins++
		case s2 < s1:
			status.Party2Wins++
		default:
			status.Ties++
		}
	}

	status.Diff = status.Party1Wins - status.Party2Wins
	// Remaining counts undecided holes: a tied hole settles nothing, so it
	// stays in the count even though it has been played.
	status.HolesRemaining = (endHole - startHole + 1) - status.Party1Wins - status.Party2Wins

	switch {
	case status.Diff > 0:
		status.Leader = "party1"
	case status.Diff < 0:
		status.Leader = "party2"
	default:
		status.Leader = "tied"
	}

	absDiff := status.Diff
	if absDiff < 0 {
		absDiff = -absDiff
	}
	status.ClosedOut = absDiff > status.HolesRemaining && status.HolesRemaining > 0
	status.Dormie = absDiff == status.HolesRemaining && status.HolesRemaining > 0

	switch {
	case status.ClosedOut:
		status.Display = fmt.Sprintf("%d&%d", absDiff, status.HolesRemaining)
	case status.Diff == 0:
		status.Display = "AS"
	default:
		status.Display = fmt.Sprintf("%d UP", absDiff)
	}
	return status
}

// segmentBounds returns the hole spans for a full Nassau-style bet under the
// given format, overall last.
func segmentBounds(format sharedtypes.NassauFormat) []SegmentStatus {
	if format == sharedtypes.NassauNines {
		return []SegmentStatus{
			{Segment: sharedtypes.SegmentFront, StartHole: 1, EndHole: 9},
			{Segment: sharedtypes.SegmentBack, StartHole: 10, EndHole: 18},
			{Segment: sharedtypes.SegmentOverall, StartHole: 1, EndHole: 18},
		}
	}
	return []SegmentStatus{
		{Segment: sharedtypes.SegmentFront, StartHole: 1, EndHole: 6},
		{Segment: sharedtypes.SegmentMiddle, StartHole: 7, EndHole: 12},
		{Segment: sharedtypes.SegmentBack, StartHole: 13, EndHole: 18},
		{Segment: sharedtypes.SegmentOverall, StartHole: 1, EndHole: 18},
	}
}

// pressBounds resolves the hole span a press covers: from its anchor hole to
// the end of the segment it presses.
func pressBounds(press sharedtypes.SideBet, format sharedtypes.NassauFormat) (int, int) {
	start, end := 1, holesPerRound
	for _, seg := range segmentBounds(format) {
		if seg.Segment == press.Segment {
			start, end = seg.StartHole, seg.EndHole
			break
		}
	}
	if int(press.StartHole) > start {
		start = int(press.StartHole)
	}
	return start, end
}

// computeSkins pools every party member as an individual competitor. Each
// hole where all of them have scored goes to the sole lowest net for
// 1 + carryover units; ties push the unit forward, and holes missing any
// required score are skipped without touching the carryover.
func computeSkins(bet sharedtypes.SideBet, nets map[sharedtypes.PlayerID]netsByHole) *SkinsStatus {
	pool := append([]sharedtypes.PlayerID{}, bet.Party1.PlayerIDs...)
	pool = append(pool, bet.Party2.PlayerIDs...)

	status := &SkinsStatus{Units: make(map[sharedtypes.PlayerID]int, len(pool))}

	for hole := 1; hole <= holesPerRound; hole++ {
		n := sharedtypes.HoleNumber(hole)
		best, bestID, tied, complete := 0, sharedtypes.PlayerID(0), false, true
		for i, id := range pool {
			net, ok := nets[id][n]
			if !ok {
				complete = false
				break
			}
			switch {
			case i == 0 || net < best:
				best, bestID, tied = net, id, false
			case net == best:
				tied = true
			}
		}
		if !complete {
			continue
		}
		if tied {
			status.Carryover++
			continue
		}
		units := 1 + status.Carryover
		status.Wins = append(status.Wins, SkinsHoleWin{Hole: hole, PlayerID: bestID, Units: units})
		status.Units[bestID] += units
		status.Carryover = 0
	}
	return status
}

// ComputeBetStatus evaluates one bet against the current snapshot. Skins
// variants get a pooled skins status; a press gets the single segment it
// covers; a full bet gets every Nassau segment plus overall. Press children
// are attached by the bet tree, never here.
func ComputeBetStatus(bet sharedtypes.SideBet, snap sharedtypes.RoundSnapshot) BetStatus {
	return computeBetStatus(bet, snap.Config, roundNets(snap))
}

func computeBetStatus(
	bet sharedtypes.SideBet,
	cfg sharedtypes.RoundConfig,
	nets map[sharedtypes.PlayerID]netsByHole,
) BetStatus {
	format := cfg.NassauFormat
	if format == "" {
		format = sharedtypes.NassauSixes
	}

	status := BetStatus{Bet: bet}

	switch {
	case bet.GameType == sharedtypes.GameTypeSkins:
		status.Skins = computeSkins(bet, nets)
	case bet.IsPress():
		start, end := pressBounds(bet, format)
		status.Segments = []SegmentStatus{computeSegment(bet, bet.Segment, start, end, nets)}
	default:
		for _, bounds := range segmentBounds(format) {
			status.Segments = append(status.Segments,
				computeSegment(bet, bounds.Segment, bounds.StartHole, bounds.EndHole, nets))
		}
	}
	return status
}
