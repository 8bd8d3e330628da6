package bot

import (
	"context"
	"math"

	"ultimattt/internal/game"
)

const (
	// DefaultDepth is the ply bound of the hardest difficulty.
	DefaultDepth = 4
	// DefaultMaxNodes caps the search tree; past it every node scores with
	// the heuristic instead of recursing.
	DefaultMaxNodes = 500_000

	winScore     = 100_000
	winThreshold = 10_000

	decidedBoardWeight = 200
	centerBoardBonus   = 150

	// deadlineCheckMask throttles context checks to every 256 nodes.
	deadlineCheckMask = 0xff
)

// Minimax is the hardest-difficulty picker: bounded-depth adversarial search
// with alpha-beta pruning over cloned states.
type Minimax struct {
	Depth    int
	MaxNodes int

	// Angry mirrors the player's persisted last-outcome flag. The hub sets
	// it before a search; scoring does not consume it yet.
	Angry bool
}

// NewMinimax returns a search picker, falling back to the default budgets
// for non-positive arguments.
func NewMinimax(depth, maxNodes int) *Minimax {
	if depth <= 0 {
		depth = DefaultDepth
	}
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	return &Minimax{Depth: depth, MaxNodes: maxNodes}
}

// PickMove runs the search for mark and returns the best move found. Ties
// resolve to the first best-scoring move in enumeration order, so the result
// is deterministic for a fixed state. The second return is false only when
// no legal move exists.
func (m *Minimax) PickMove(ctx context.Context, state *game.State, mark game.Mark) (game.Move, bool) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, false
	}

	s := &search{
		ctx:      ctx,
		bot:      mark,
		opp:      game.Opponent(mark),
		maxNodes: m.MaxNodes,
	}

	best := moves[0]
	bestScore := math.MinInt32
	alpha, beta := math.MinInt32, math.MaxInt32

	for _, mv := range moves {
		next := state.Clone()
		if err := next.Apply(mv.Board, mv.Cell, mark); err != nil {
			continue
		}
		score := s.minimax(next, m.Depth-1, alpha, beta)
		if score > bestScore {
			bestScore = score
			best = mv
		}
		if score > alpha {
			alpha = score
		}
	}
	return best, true
}

// search carries the per-call budgets so a Minimax value can be shared.
type search struct {
	ctx      context.Context
	bot      game.Mark
	opp      game.Mark
	maxNodes int
	nodes    int
	expired  bool
}

func (s *search) minimax(st *game.State, depth, alpha, beta int) int {
	s.nodes++
	score := evaluate(st, s.bot, s.opp)

	if score > winThreshold || score < -winThreshold {
		return score
	}
	if depth == 0 {
		return score
	}
	if s.nodes >= s.maxNodes {
		return score
	}
	if s.nodes&deadlineCheckMask == 0 && s.ctx.Err() != nil {
		s.expired = true
	}
	if s.expired {
		return score
	}

	moves := st.LegalMoves()
	if len(moves) == 0 {
		return score
	}

	if st.Turn == s.bot {
		best := math.MinInt32
		for _, mv := range moves {
			next := st.Clone()
			if err := next.Apply(mv.Board, mv.Cell, st.Turn); err != nil {
				continue
			}
			v := s.minimax(next, depth-1, alpha, beta)
			if v > best {
				best = v
			}
			if v > alpha {
				alpha = v
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.MaxInt32
	for _, mv := range moves {
		next := st.Clone()
		if err := next.Apply(mv.Board, mv.Cell, st.Turn); err != nil {
			continue
		}
		v := s.minimax(next, depth-1, alpha, beta)
		if v < best {
			best = v
		}
		if v < beta {
			beta = v
		}
		if beta <= alpha {
			break
		}
	}
	return best
}

// evaluate scores a state from the bot's perspective. Big-board wins and
// losses collapse to sentinels; otherwise each decided sub-board contributes
// a fixed weight, each undecided one its line potential, and the center
// sub-board an extra bonus when decided.
func evaluate(st *game.State, botMark, oppMark game.Mark) int {
	botWon := game.Outcome(botMark)
	oppWon := game.Outcome(oppMark)

	switch st.Outcome() {
	case botWon:
		return winScore
	case oppWon:
		return -winScore
	case game.Drawn:
		return 0
	}

	score := 0
	for i, status := range st.Statuses {
		switch status {
		case botWon:
			score += decidedBoardWeight
		case oppWon:
			score -= decidedBoardWeight
		case game.Undecided:
			score += st.Boards[i].LinePotential(botMark, oppMark)
		}
	}

	switch st.Statuses[game.CenterIndex] {
	case botWon:
		score += centerBoardBonus
	case oppWon:
		score -= centerBoardBonus
	}
	return score
}
