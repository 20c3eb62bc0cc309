package leaderboardservice

import (
	"fmt"

	scoringerr "github.com/fairway-club/scorekeeper/app/shared/errors"
)

// errMissingGameType is returned when a round config carries no game type.
// Unlike numeric defaults (slope 113, par 4), the game type is never guessed.
func errMissingGameType() error {
	return &scoringerr.ConfigError{Field: "game_type", Reason: "must be set"}
}

func errMatchPlayPlayers(n int) error {
	return &scoringerr.PreconditionError{
		Op:     "match_play",
		Reason: fmt.Sprintf("requires exactly 2 players, got %d", n),
	}
}

func errEmptyHighLowTeam(team string) error {
	return &scoringerr.PreconditionError{
		Op:     "high_low",
		Reason: team + " has no players",
	}
}
