package calcuttaservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

func auctionSnapshot(gameType sharedtypes.GameType) sharedtypes.RoundSnapshot {
	team1, team2 := 1, 2
	snap := sharedtypes.RoundSnapshot{
		Config: sharedtypes.RoundConfig{GameType: gameType},
		Players: []sharedtypes.Player{
			{ID: 1, Name: "Ana", Team: &team1},
			{ID: 2, Name: "Ben", Team: &team1},
			{ID: 3, Name: "Cal", Team: &team2},
			{ID: 4, Name: "Dee", Team: &team2},
		},
	}
	for i := range 18 {
		hole := sharedtypes.HoleNumber(i + 1)
		for id, strokes := range map[sharedtypes.PlayerID]int{1: 4, 2: 6, 3: 5, 4: 5} {
			s := strokes
			snap.Scores = append(snap.Scores, sharedtypes.Score{PlayerID: id, Hole: hole, Strokes: &s})
		}
	}
	return snap
}

func TestComputeStandings_BestBallTakesLowBall(t *testing.T) {
	standings := ComputeStandings(auctionSnapshot(sharedtypes.GameTypeBestBall))

	require.Len(t, standings, 2)
	assert.Equal(t, 1, standings[0].TeamNumber)
	assert.Equal(t, "Ana & Ben", standings[0].TeamName)
	assert.Equal(t, 72, standings[0].Score)
	assert.Equal(t, 90, standings[1].Score)
	assert.Equal(t, 18, standings[0].HolesPlayed)
}

func TestComputeStandings_HighLowAddsWorstBall(t *testing.T) {
	standings := ComputeStandings(auctionSnapshot(sharedtypes.GameTypeHighLow))

	require.Len(t, standings, 2)
	// Both teams post 10 per hole (4+6 and 5+5), so the tie stands and the
	// lower team number stays first.
	assert.Equal(t, 180, standings[0].Score)
	assert.Equal(t, 180, standings[1].Score)
	assert.Equal(t, 1, standings[0].TeamNumber)
}

func TestComputeStandings_StrokePlaySumsAllBalls(t *testing.T) {
	standings := ComputeStandings(auctionSnapshot(sharedtypes.GameTypeStrokePlay))

	require.Len(t, standings, 2)
	assert.Equal(t, 180, standings[0].Score)
	assert.Equal(t, 180, standings[1].Score)
}

func TestComputeStandings_MoreHolesPlayedBreaksTies(t *testing.T) {
	team1, team2 := 1, 2
	snap := sharedtypes.RoundSnapshot{
		Config: sharedtypes.RoundConfig{GameType: sharedtypes.GameTypeBestBall},
		Players: []sharedtypes.Player{
			{ID: 1, Name: "Ana", Team: &team1},
			{ID: 3, Name: "Cal", Team: &team2},
		},
	}
	score := func(id sharedtypes.PlayerID, hole sharedtypes.HoleNumber, strokes int) sharedtypes.Score {
		return sharedtypes.Score{PlayerID: id, Hole: hole, Strokes: &strokes}
	}
	// Both teams stand at 8, but Cal has played one more hole.
	snap.Scores = []sharedtypes.Score{
		score(1, 1, 4), score(1, 2, 4),
		score(3, 1, 3), score(3, 2, 3), score(3, 3, 2),
	}

	standings := ComputeStandings(snap)

	require.Len(t, standings, 2)
	assert.Equal(t, 2, standings[0].TeamNumber)
	assert.Equal(t, 3, standings[0].HolesPlayed)
}

func TestComputeStandings_IgnoresUnteamedPlayers(t *testing.T) {
	snap := auctionSnapshot(sharedtypes.GameTypeBestBall)
	snap.Players = append(snap.Players, sharedtypes.Player{ID: 9, Name: "Eve"})

	standings := ComputeStandings(snap)
	assert.Len(t, standings, 2)
}

func TestComputeResults_PercentAndProfit(t *testing.T) {
	cfg := Config{
		TournamentID: 5,
		Enabled:      true,
		Payouts: []PayoutRule{
			{Place: 1, Type: PayoutPercent, Value: 50},
			{Place: 2, Type: PayoutFixed, Value: 40},
		},
	}
	purchases := []Purchase{
		{TeamNumber: 1, BuyerName: "Gus", Amount: 120},
		{TeamNumber: 2, BuyerName: "Hal", Amount: 80},
	}

	res := ComputeResults(cfg, purchases, auctionSnapshot(sharedtypes.GameTypeBestBall))

	require.True(t, res.Enabled)
	assert.InDelta(t, 200.0, res.TotalPot, 0.001)
	require.Len(t, res.Payouts, 2)

	first := res.Payouts[0]
	assert.Equal(t, 1, first.Place)
	assert.Equal(t, "Gus", first.BuyerName)
	assert.InDelta(t, 100.0, first.Payout, 0.001)
	assert.InDelta(t, -20.0, first.Profit, 0.001)

	second := res.Payouts[1]
	assert.InDelta(t, 40.0, second.Payout, 0.001)
	assert.InDelta(t, -40.0, second.Profit, 0.001)
}

func TestComputeResults_UnsoldTeamAndUnmappedPlace(t *testing.T) {
	cfg := Config{
		TournamentID: 5,
		Enabled:      true,
		Payouts:      []PayoutRule{{Place: 1, Type: PayoutPercent, Value: 100}},
	}
	purchases := []Purchase{{TeamNumber: 1, BuyerName: "Gus", Amount: 50}}

	res := ComputeResults(cfg, purchases, auctionSnapshot(sharedtypes.GameTypeBestBall))

	require.Len(t, res.Payouts, 2)
	assert.Equal(t, "Unsold", res.Payouts[1].BuyerName)
	assert.InDelta(t, 0.0, res.Payouts[1].PurchaseAmount, 0.001)
	assert.InDelta(t, 0.0, res.Payouts[1].Payout, 0.001)
}

func TestComputeResults_DisabledIsEmpty(t *testing.T) {
	res := ComputeResults(Config{Enabled: false}, nil, sharedtypes.RoundSnapshot{})

	assert.False(t, res.Enabled)
	assert.Empty(t, res.Standings)
	assert.Empty(t, res.Payouts)
}
