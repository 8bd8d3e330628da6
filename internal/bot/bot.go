package bot

import (
	"context"

	"ultimattt/internal/game"
)

// Difficulty levels accepted from clients.
const (
	DifficultyEasy = "easy"
	DifficultyHard = "hard"
	DifficultyGod  = "god"
)

// Picker chooses the next move for mark on the given state. Implementations
// must not mutate the state they are handed.
type Picker interface {
	PickMove(ctx context.Context, state *game.State, mark game.Mark) (game.Move, bool)
}

// PickerFor returns the move picker for a difficulty level. Only the hardest
// level searches; the others pick uniformly at random among legal moves.
func PickerFor(difficulty string, searchDepth, maxNodes int) Picker {
	if difficulty == DifficultyGod {
		return NewMinimax(searchDepth, maxNodes)
	}
	return &Random{}
}

// DisplayName returns the synthesized opponent name shown in room lists and
// spectator snapshots for a bot of the given difficulty.
func DisplayName(difficulty string) string {
	switch difficulty {
	case DifficultyGod:
		return "Wife (AI)"
	case DifficultyHard:
		return "Girlfriend (AI)"
	default:
		return "Coworker (AI)"
	}
}
