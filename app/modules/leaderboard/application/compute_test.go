package leaderboardservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scoringerr "github.com/fairway-club/scorekeeper/app/shared/errors"
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// testHoles builds the fixture course used throughout the scoring tests: par
// pattern 4,4,3,5,4,4,3,4,5,4,4,3,5,4,4,3,4,5 with the par 3s rated 15,16,17,18
// and the remaining ratings a permutation of 1..14.
func testHoles() []sharedtypes.Hole {
	pars := []int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 4, 3, 5, 4, 4, 3, 4, 5}
	par3Ratings := []int{15, 16, 17, 18}
	holes := make([]sharedtypes.Hole, 18)
	nextNonPar3 := 1
	nextPar3 := 0
	for i, par := range pars {
		var rating int
		if par == 3 {
			rating = par3Ratings[nextPar3]
			nextPar3++
		} else {
			rating = nextNonPar3
			nextNonPar3++
		}
		holes[i] = sharedtypes.Hole{Number: sharedtypes.HoleNumber(i + 1), Par: par, HandicapRating: rating}
	}
	return holes
}

// roundScores records one player's gross scores hole by hole; a zero means
// the hole has not been played and produces no score row.
func roundScores(id sharedtypes.PlayerID, perHole []int) []sharedtypes.Score {
	scores := make([]sharedtypes.Score, 0, len(perHole))
	for i, gross := range perHole {
		if gross == 0 {
			continue
		}
		g := gross
		scores = append(scores, sharedtypes.Score{
			PlayerID: id,
			Hole:     sharedtypes.HoleNumber(i + 1),
			Strokes:  &g,
		})
	}
	return scores
}

func flatRound(gross int) []int {
	perHole := make([]int, 18)
	for i := range perHole {
		perHole[i] = gross
	}
	return perHole
}

func scratchPlayer(id sharedtypes.PlayerID, name string) sharedtypes.Player {
	return sharedtypes.Player{ID: id, Name: name}
}

func TestCompute_MissingGameType(t *testing.T) {
	_, err := Compute(sharedtypes.RoundSnapshot{Holes: testHoles()})
	require.Error(t, err)
	var cfgErr *scoringerr.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "game_type", cfgErr.Field)
}

func TestCompute_StrokePlayRanksByGross(t *testing.T) {
	snap := sharedtypes.RoundSnapshot{
		Config:  sharedtypes.RoundConfig{GameType: sharedtypes.GameTypeStrokePlay},
		Holes:   testHoles(),
		Players: []sharedtypes.Player{scratchPlayer(1, "Ana"), scratchPlayer(2, "Ben"), scratchPlayer(3, "Cal")},
		Scores:  nil,
	}
	snap.Scores = append(snap.Scores, roundScores(1, flatRound(5))...)
	snap.Scores = append(snap.Scores, roundScores(2, flatRound(4))...)
	snap.Scores = append(snap.Scores, roundScores(3, flatRound(6))...)

	lb, err := Compute(snap)
	require.NoError(t, err)
	require.Len(t, lb.Players, 3)
	assert.Equal(t, "Ben", lb.Players[0].Player.Name)
	assert.Equal(t, "Ana", lb.Players[1].Player.Name)
	assert.Equal(t, "Cal", lb.Players[2].Player.Name)
	assert.Equal(t, 72, lb.Players[0].GrossTotal)
	assert.Equal(t, 18, lb.Players[0].HolesPlayed)
}

func TestCompute_ToParCountsOnlyPlayedHoles(t *testing.T) {
	perHole := make([]int, 18)
	perHole[0] = 5 // par 4, +1
	perHole[1] = 4 // par 4, even
	perHole[2] = 2 // par 3, -1

	snap := sharedtypes.RoundSnapshot{
		Config:  sharedtypes.RoundConfig{GameType: sharedtypes.GameTypeStrokePlay},
		Holes:   testHoles(),
		Players: []sharedtypes.Player{scratchPlayer(1, "Ana")},
		Scores:  roundScores(1, perHole),
	}

	lb, err := Compute(snap)
	require.NoError(t, err)
	row := lb.Players[0]
	assert.Equal(t, 3, row.HolesPlayed)
	assert.Equal(t, 11, row.GrossTotal)
	assert.Equal(t, 0, row.ToPar)
	assert.Equal(t, 1, row.Stats.Birdies)
	assert.Equal(t, 1, row.Stats.Pars)
	assert.Equal(t, 1, row.Stats.Bogeys)

	first := row.HoleScores[0]
	require.NotNil(t, first.Gross)
	assert.Equal(t, 5, *first.Gross)
	assert.Nil(t, row.HoleScores[3].Gross)
}

func TestCompute_MatchPlayAllSquare(t *testing.T) {
	snap := sharedtypes.RoundSnapshot{
		Config:  sharedtypes.RoundConfig{GameType: sharedtypes.GameTypeMatchPlay},
		Holes:   testHoles(),
		Players: []sharedtypes.Player{scratchPlayer(1, "Ana"), scratchPlayer(2, "Ben")},
	}
	snap.Scores = append(snap.Scores, roundScores(1, flatRound(4))...)
	snap.Scores = append(snap.Scores, roundScores(2, flatRound(4))...)

	lb, err := Compute(snap)
	require.NoError(t, err)
	require.Len(t, lb.Players, 2)
	for _, row := range lb.Players {
		assert.Equal(t, "AS", row.MatchStatus)
		assert.Zero(t, row.HolesWon)
	}
}

func TestCompute_MatchPlayLeaderSortsFirst(t *testing.T) {
	anaRound := flatRound(4)
	benRound := flatRound(4)
	// Ben takes holes 1 and 2, Ana takes hole 3.
	benRound[0] = 3
	benRound[1] = 3
	anaRound[2] = 2

	snap := sharedtypes.RoundSnapshot{
		Config:  sharedtypes.RoundConfig{GameType: sharedtypes.GameTypeMatchPlay},
		Holes:   testHoles(),
		Players: []sharedtypes.Player{scratchPlayer(1, "Ana"), scratchPlayer(2, "Ben")},
	}
	snap.Scores = append(snap.Scores, roundScores(1, anaRound)...)
	snap.Scores = append(snap.Scores, roundScores(2, benRound)...)

	lb, err := Compute(snap)
	require.NoError(t, err)
	assert.Equal(t, "Ben", lb.Players[0].Player.Name)
	assert.Equal(t, "1 UP", lb.Players[0].MatchStatus)
	assert.Equal(t, 2, lb.Players[0].HolesWon)
	assert.Equal(t, "1 DN", lb.Players[1].MatchStatus)
	assert.Equal(t, 1, lb.Players[1].HolesWon)
}

func TestCompute_MatchPlayRequiresTwoPlayers(t *testing.T) {
	snap := sharedtypes.RoundSnapshot{
		Config:  sharedtypes.RoundConfig{GameType: sharedtypes.GameTypeMatchPlay},
		Holes:   testHoles(),
		Players: []sharedtypes.Player{scratchPlayer(1, "Ana"), scratchPlayer(2, "Ben"), scratchPlayer(3, "Cal")},
	}
	_, err := Compute(snap)
	var preErr *scoringerr.PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.Equal(t, "match_play", preErr.Op)
}

func TestCompute_SkinsCarryover(t *testing.T) {
	ana := make([]int, 18)
	ben := make([]int, 18)
	cal := make([]int, 18)
	// Hole 1 ties at 4 and carries; hole 2 goes to Ben outright.
	ana[0], ben[0], cal[0] = 4, 4, 5
	ana[1], ben[1], cal[1] = 5, 3, 5

	snap := sharedtypes.RoundSnapshot{
		Config: sharedtypes.RoundConfig{
			GameType:    sharedtypes.GameTypeSkins,
			SkinsAmount: 5,
		},
		Holes:   testHoles(),
		Players: []sharedtypes.Player{scratchPlayer(1, "Ana"), scratchPlayer(2, "Ben"), scratchPlayer(3, "Cal")},
	}
	snap.Scores = append(snap.Scores, roundScores(1, ana)...)
	snap.Scores = append(snap.Scores, roundScores(2, ben)...)
	snap.Scores = append(snap.Scores, roundScores(3, cal)...)

	lb, err := Compute(snap)
	require.NoError(t, err)
	require.Len(t, lb.Skins, 1)
	skin := lb.Skins[0]
	assert.Equal(t, 2, skin.Hole)
	assert.Equal(t, "Ben", skin.PlayerName)
	assert.Equal(t, 10.0, skin.Value)
	assert.Equal(t, 1, skin.Carryovers)
	assert.Zero(t, lb.SkinsCarryover)

	assert.Equal(t, "Ben", lb.Players[0].Player.Name)
	assert.Equal(t, 10.0, lb.Players[0].SkinsTotal)
}

func TestCompute_SkinsUnresolvedCarryoverSurvives(t *testing.T) {
	ana := make([]int, 18)
	ben := make([]int, 18)
	ana[0], ben[0] = 4, 4
	ana[1], ben[1] = 5, 5

	snap := sharedtypes.RoundSnapshot{
		Config:  sharedtypes.RoundConfig{GameType: sharedtypes.GameTypeSkins, SkinsAmount: 5},
		Holes:   testHoles(),
		Players: []sharedtypes.Player{scratchPlayer(1, "Ana"), scratchPlayer(2, "Ben")},
	}
	snap.Scores = append(snap.Scores, roundScores(1, ana)...)
	snap.Scores = append(snap.Scores, roundScores(2, ben)...)

	lb, err := Compute(snap)
	require.NoError(t, err)
	assert.Empty(t, lb.Skins)
	assert.Equal(t, 2, lb.SkinsCarryover)
}

func TestCompute_BestBallTakesLowestBall(t *testing.T) {
	team1, team2 := 1, 2
	players := []sharedtypes.Player{
		{ID: 1, Name: "Ana", Team: &team1},
		{ID: 2, Name: "Ben", Team: &team1},
		{ID: 3, Name: "Cal", Team: &team2},
		{ID: 4, Name: "Dee", Team: &team2},
	}
	snap := sharedtypes.RoundSnapshot{
		Config:  sharedtypes.RoundConfig{GameType: sharedtypes.GameTypeBestBall},
		Holes:   testHoles(),
		Players: players,
	}
	snap.Scores = append(snap.Scores, roundScores(1, flatRound(4))...)
	snap.Scores = append(snap.Scores, roundScores(2, flatRound(6))...)
	snap.Scores = append(snap.Scores, roundScores(3, flatRound(5))...)
	snap.Scores = append(snap.Scores, roundScores(4, flatRound(5))...)

	lb, err := Compute(snap)
	require.NoError(t, err)
	require.Len(t, lb.Teams, 2)
	assert.Equal(t, 1, lb.Teams[0].Team)
	assert.Equal(t, 72, lb.Teams[0].GrossTotal)
	assert.Equal(t, 2, lb.Teams[1].Team)
	assert.Equal(t, 90, lb.Teams[1].GrossTotal)
}

func TestCompute_ScrambleUsesSingleRecordedBall(t *testing.T) {
	team1, team2 := 1, 2
	players := []sharedtypes.Player{
		{ID: 1, Name: "Ana", Team: &team1},
		{ID: 2, Name: "Ben", Team: &team1},
		{ID: 3, Name: "Cal", Team: &team2},
		{ID: 4, Name: "Dee", Team: &team2},
	}
	snap := sharedtypes.RoundSnapshot{
		Config:  sharedtypes.RoundConfig{GameType: sharedtypes.GameTypeScramble},
		Holes:   testHoles(),
		Players: players,
	}
	// One ball per team: recorded against the first member only.
	snap.Scores = append(snap.Scores, roundScores(1, flatRound(4))...)
	snap.Scores = append(snap.Scores, roundScores(3, flatRound(5))...)

	lb, err := Compute(snap)
	require.NoError(t, err)
	require.Len(t, lb.Teams, 2)
	assert.Equal(t, 72, lb.Teams[0].GrossTotal)
	assert.Equal(t, 90, lb.Teams[1].GrossTotal)
}

func TestCompute_GreeniesOnlyOnConfiguredHoles(t *testing.T) {
	perHole := flatRound(4)
	snap := sharedtypes.RoundSnapshot{
		Config: sharedtypes.RoundConfig{
			GameType:     sharedtypes.GameTypeStrokePlay,
			GreenieHoles: []sharedtypes.HoleNumber{3, 7},
		},
		Holes:   testHoles(),
		Players: []sharedtypes.Player{scratchPlayer(1, "Ana")},
		Scores:  roundScores(1, perHole),
	}
	for i := range snap.Scores {
		// Greenie claims on holes 3 (configured) and 12 (not configured).
		if snap.Scores[i].Hole == 3 || snap.Scores[i].Hole == 12 {
			snap.Scores[i].Greenie = true
		}
	}

	lb, err := Compute(snap)
	require.NoError(t, err)
	assert.Equal(t, 1, lb.Players[0].GreeniesWon)
}

func TestCompute_NetModePlaysOffLowestHandicap(t *testing.T) {
	players := []sharedtypes.Player{
		{ID: 1, Name: "Ana", HandicapIndex: 4},
		{ID: 2, Name: "Ben", HandicapIndex: 12},
	}
	snap := sharedtypes.RoundSnapshot{
		Config: sharedtypes.RoundConfig{
			GameType:     sharedtypes.GameTypeStrokePlay,
			HandicapMode: sharedtypes.HandicapModeNet,
		},
		Holes:   testHoles(),
		Players: players,
	}
	snap.Scores = append(snap.Scores, roundScores(1, flatRound(4))...)
	snap.Scores = append(snap.Scores, roundScores(2, flatRound(4))...)

	lb, err := Compute(snap)
	require.NoError(t, err)
	assert.Equal(t, 4, lb.LowestHandicap)

	byID := map[sharedtypes.PlayerID]PlayerResult{}
	for _, row := range lb.Players {
		byID[row.Player.ID] = row
	}
	assert.Equal(t, 0, byID[1].Player.DisplayHandicap)
	assert.Equal(t, 8, byID[2].Player.DisplayHandicap)
	assert.Equal(t, 72, byID[1].NetTotal)
	assert.Equal(t, 64, byID[2].NetTotal)
}

func TestCompute_IsDeterministic(t *testing.T) {
	snap := sharedtypes.RoundSnapshot{
		Config:  sharedtypes.RoundConfig{GameType: sharedtypes.GameTypeStrokePlay, BetAmount: 5},
		Holes:   testHoles(),
		Players: []sharedtypes.Player{scratchPlayer(1, "Ana"), scratchPlayer(2, "Ben")},
	}
	snap.Scores = append(snap.Scores, roundScores(1, flatRound(4))...)
	snap.Scores = append(snap.Scores, roundScores(2, flatRound(5))...)

	first, err := Compute(snap)
	require.NoError(t, err)
	second, err := Compute(snap)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
