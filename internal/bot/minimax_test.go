package bot

import (
	"context"
	"testing"

	"ultimattt/internal/game"
)

func TestPickMoveTakesImmediateWin(t *testing.T) {
	s := game.NewState()
	// O completes sub-board 4 and with it the middle column of sub-boards.
	s.Statuses[1] = game.WonByO
	s.Statuses[7] = game.WonByO
	s.Boards[4] = game.Cells{game.PlayerO, game.PlayerO, game.None, game.PlayerX, game.PlayerX, game.None, game.None, game.None, game.None}
	s.Turn = game.PlayerO
	s.Target = 4

	m := NewMinimax(DefaultDepth, DefaultMaxNodes)
	mv, ok := m.PickMove(context.Background(), s, game.PlayerO)
	if !ok {
		t.Fatal("expected a move")
	}
	if mv.Board != 4 || mv.Cell != 2 {
		t.Errorf("expected the winning move (4,2), got (%d,%d)", mv.Board, mv.Cell)
	}
}

func TestPickMoveBlocksImmediateLoss(t *testing.T) {
	s := game.NewState()
	// Only sub-board 4 is still open and X completes the 0-4-8 diagonal by
	// winning it at cell 2. Every O reply other than the block hands X that
	// cell on the very next ply.
	s.Statuses = game.Statuses{
		game.WonByX, game.WonByO, game.Drawn,
		game.Drawn, game.Undecided, game.WonByO,
		game.WonByO, game.Drawn, game.WonByX,
	}
	s.Boards[4] = game.Cells{game.PlayerX, game.PlayerX, game.None, game.PlayerO, game.None, game.None, game.None, game.PlayerO, game.None}
	s.Turn = game.PlayerO
	s.Target = 4

	m := NewMinimax(DefaultDepth, DefaultMaxNodes)
	mv, ok := m.PickMove(context.Background(), s, game.PlayerO)
	if !ok {
		t.Fatal("expected a move")
	}
	if mv.Board != 4 || mv.Cell != 2 {
		t.Errorf("expected the block at (4,2), got (%d,%d)", mv.Board, mv.Cell)
	}
}

func TestPickMoveDeterministic(t *testing.T) {
	s := game.NewState()
	s.Boards[0][0] = game.PlayerX
	s.Turn = game.PlayerO
	s.Target = 0

	m := NewMinimax(2, DefaultMaxNodes)
	first, ok := m.PickMove(context.Background(), s.Clone(), game.PlayerO)
	if !ok {
		t.Fatal("expected a move")
	}
	for i := 0; i < 5; i++ {
		mv, ok := m.PickMove(context.Background(), s.Clone(), game.PlayerO)
		if !ok {
			t.Fatal("expected a move")
		}
		if mv != first {
			t.Fatalf("run %d picked %v, first run picked %v", i, mv, first)
		}
	}
}

func TestPickMoveRespectsLegality(t *testing.T) {
	s := game.NewState()
	s.Statuses[3] = game.WonByX
	s.Turn = game.PlayerO
	s.Target = 3 // decided target, so every undecided board is open

	m := NewMinimax(2, DefaultMaxNodes)
	mv, ok := m.PickMove(context.Background(), s, game.PlayerO)
	if !ok {
		t.Fatal("expected a move")
	}
	if mv.Board == 3 {
		t.Error("picked a move in a decided sub-board")
	}
	if err := s.Clone().Apply(mv.Board, mv.Cell, game.PlayerO); err != nil {
		t.Errorf("picked an illegal move: %v", err)
	}
}

func TestPickMoveNoLegalMoves(t *testing.T) {
	s := game.NewState()
	s.Statuses[0] = game.WonByX
	s.Statuses[4] = game.WonByX
	s.Statuses[8] = game.WonByX

	m := NewMinimax(DefaultDepth, DefaultMaxNodes)
	if _, ok := m.PickMove(context.Background(), s, game.PlayerO); ok {
		t.Error("expected no move in a terminal state")
	}
}

// An already-expired context must still yield a legal move: the search falls
// back to heuristic scores rather than aborting.
func TestPickMoveExpiredContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := game.NewState()
	m := NewMinimax(DefaultDepth, DefaultMaxNodes)
	mv, ok := m.PickMove(ctx, s, game.PlayerX)
	if !ok {
		t.Fatal("expected a move even with an expired context")
	}
	if err := s.Clone().Apply(mv.Board, mv.Cell, game.PlayerX); err != nil {
		t.Errorf("picked an illegal move: %v", err)
	}
}

func TestEvaluateSentinels(t *testing.T) {
	tests := []struct {
		name     string
		statuses game.Statuses
		want     int
	}{
		{
			name:     "bot won",
			statuses: game.Statuses{game.WonByO, game.WonByO, game.WonByO},
			want:     winScore,
		},
		{
			name:     "opponent won",
			statuses: game.Statuses{game.WonByX, game.WonByX, game.WonByX},
			want:     -winScore,
		},
		{
			name: "big board drawn",
			statuses: game.Statuses{
				game.WonByX, game.WonByO, game.WonByX,
				game.WonByX, game.WonByO, game.WonByO,
				game.WonByO, game.WonByX, game.Drawn,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := game.NewState()
			s.Statuses = tt.statuses
			if got := evaluate(s, game.PlayerO, game.PlayerX); got != tt.want {
				t.Errorf("evaluate() got = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEvaluateWeights(t *testing.T) {
	s := game.NewState()
	s.Statuses[0] = game.WonByO
	if got := evaluate(s, game.PlayerO, game.PlayerX); got != decidedBoardWeight {
		t.Errorf("one decided corner sub-board should score %d, got %d", decidedBoardWeight, got)
	}

	s = game.NewState()
	s.Statuses[game.CenterIndex] = game.WonByX
	want := -(decidedBoardWeight + centerBoardBonus)
	if got := evaluate(s, game.PlayerO, game.PlayerX); got != want {
		t.Errorf("opponent holding the center sub-board should score %d, got %d", want, got)
	}
}

// Swapping the two roles negates the score exactly, for decided sub-boards
// and raw line potential alike.
func TestEvaluateAntisymmetric(t *testing.T) {
	s := game.NewState()
	s.Statuses[2] = game.WonByO
	s.Statuses[4] = game.WonByX
	s.Boards[0] = game.Cells{game.PlayerO, game.PlayerO, game.None, game.None, game.None, game.None, game.None, game.None, game.None}
	s.Boards[8][4] = game.PlayerX

	asO := evaluate(s, game.PlayerO, game.PlayerX)
	asX := evaluate(s, game.PlayerX, game.PlayerO)
	if asO != -asX {
		t.Errorf("expected mirrored scores, got %d and %d", asO, asX)
	}
}

func TestNewMinimaxDefaults(t *testing.T) {
	m := NewMinimax(0, -1)
	if m.Depth != DefaultDepth {
		t.Errorf("expected default depth %d, got %d", DefaultDepth, m.Depth)
	}
	if m.MaxNodes != DefaultMaxNodes {
		t.Errorf("expected default node budget %d, got %d", DefaultMaxNodes, m.MaxNodes)
	}
}
