// Package testutils builds randomized round fixtures for tests and local
// seeding.
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	faker := gofakeit.New(uint64(s))

	return &TestDataGenerator{
		faker: faker,
		seed:  s,
	}
}

// Seed reports the seed the generator runs on, for reproducing a failure.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// GenerateCourse creates an 18-hole course with a standard par mix and a
// shuffled handicap rating order.
func (g *TestDataGenerator) GenerateCourse() []sharedtypes.Hole {
	pars := []int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 4, 3, 5, 4, 4, 3, 4, 5}
	ratings := make([]int, 18)
	for i := range ratings {
		ratings[i] = i + 1
	}
	g.faker.ShuffleInts(ratings)

	holes := make([]sharedtypes.Hole, 18)
	for i := range holes {
		holes[i] = sharedtypes.Hole{
			Number:         sharedtypes.HoleNumber(i + 1),
			Par:            pars[i],
			HandicapRating: ratings[i],
			Yardages: map[string]int{
				"blue":  g.faker.Number(150, 560),
				"white": g.faker.Number(130, 520),
				"red":   g.faker.Number(100, 470),
			},
		}
	}
	return holes
}

// GeneratePlayers creates a roster. When teams is true, players pair up into
// two-man teams in order.
func (g *TestDataGenerator) GeneratePlayers(count int, teams bool) []sharedtypes.Player {
	players := make([]sharedtypes.Player, count)
	for i := range players {
		players[i] = sharedtypes.Player{
			ID:            sharedtypes.PlayerID(i + 1),
			Name:          g.faker.Name(),
			HandicapIndex: g.faker.Float64Range(0, 30),
			TeeColor:      g.faker.RandomString([]string{"blue", "white", "red"}),
		}
		if teams {
			team := i/2 + 1
			players[i].Team = &team
		}
	}
	return players
}

// GenerateScores fills in a card for every player through the given hole.
// Strokes land near par with the occasional blowup.
func (g *TestDataGenerator) GenerateScores(players []sharedtypes.Player, holes []sharedtypes.Hole, throughHole int) []sharedtypes.Score {
	var scores []sharedtypes.Score
	for _, p := range players {
		for _, h := range holes {
			if int(h.Number) > throughHole {
				break
			}
			strokes := h.Par + g.faker.Number(-1, 3)
			if strokes < 1 {
				strokes = 1
			}
			scores = append(scores, sharedtypes.Score{
				PlayerID: p.ID,
				Hole:     h.Number,
				Strokes:  &strokes,
			})
		}
	}
	return scores
}

// GenerateSnapshot assembles a complete scorable round.
func (g *TestDataGenerator) GenerateSnapshot(gameType sharedtypes.GameType, playerCount, throughHole int) sharedtypes.RoundSnapshot {
	players := g.GeneratePlayers(playerCount, gameType.IsTeamGame())
	holes := g.GenerateCourse()
	return sharedtypes.RoundSnapshot{
		Config: sharedtypes.RoundConfig{
			GameType:      gameType,
			SlopeRating:   g.faker.Number(95, 145),
			HandicapMode:  sharedtypes.HandicapModeGross,
			BetAmount:     float64(g.faker.Number(0, 20)),
			GreenieAmount: float64(g.faker.Number(0, 5)),
			SkinsAmount:   float64(g.faker.Number(0, 10)),
		},
		Players: players,
		Holes:   holes,
		Scores:  g.GenerateScores(players, holes, throughHole),
	}
}
