package bot

import (
	"context"
	"math/rand/v2"

	"ultimattt/internal/game"
)

// Random picks uniformly among the legal moves. It backs the easy and hard
// difficulty levels.
type Random struct{}

func (r *Random) PickMove(_ context.Context, state *game.State, _ game.Mark) (game.Move, bool) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, false
	}
	return moves[rand.IntN(len(moves))], true
}
