package game

import "errors"

// TargetAny is the mandatory-target sentinel meaning the mover may choose
// any undecided sub-board. It is only ever stored before the first move;
// after that the stored target is always the last played cell index and the
// decided-board fallback happens at enumeration time.
const TargetAny = -1

var (
	ErrGameFinished = errors.New("game is already decided")
	ErrNotYourTurn  = errors.New("not this player's turn")
	ErrWrongBoard   = errors.New("sub-board is not playable")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrOutOfRange   = errors.New("index out of range")
)

// Move is one placement: a sub-board index and a cell index, both 0-8.
type Move struct {
	Board int `json:"board"`
	Cell  int `json:"cell"`
}

// State is the full mutable state of one game. It is owned by exactly one
// goroutine (the hub loop); search works on copies via Clone.
type State struct {
	Boards   [9]Cells
	Statuses Statuses
	Turn     Mark
	Target   int
}

// NewState returns the initial state: empty boards, X to move, any target.
func NewState() *State {
	return &State{
		Turn:   PlayerX,
		Target: TargetAny,
	}
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// eligibleBoards returns the sub-boards the current mover may play in: the
// mandatory target alone while it is undecided, otherwise every undecided
// sub-board.
func (s *State) eligibleBoards() []int {
	if s.Target != TargetAny && s.Statuses[s.Target] == Undecided {
		return []int{s.Target}
	}
	boards := make([]int, 0, 9)
	for i, o := range s.Statuses {
		if o == Undecided {
			boards = append(boards, i)
		}
	}
	return boards
}

// LegalMoves enumerates every placement the current mover may make. It
// returns an empty slice only in a terminal state.
func (s *State) LegalMoves() []Move {
	if s.Outcome() != Undecided {
		return nil
	}
	var moves []Move
	for _, b := range s.eligibleBoards() {
		for c, m := range s.Boards[b] {
			if m == None {
				moves = append(moves, Move{Board: b, Cell: c})
			}
		}
	}
	return moves
}

// Outcome derives the big-board result from the 9 sub-board outcomes using
// the same triple table as a single sub-board.
func (s *State) Outcome() Outcome {
	if s.Statuses.HasWon(PlayerX) {
		return WonByX
	}
	if s.Statuses.HasWon(PlayerO) {
		return WonByO
	}
	if s.Statuses.IsFull() {
		return Drawn
	}
	return Undecided
}

// Apply validates and applies one move for mark. On any validation failure
// the state is left untouched and the caller is expected to drop the move
// silently (no broadcast). On success it writes the cell, stores the played
// cell index as the next mandatory target, derives the sub-board outcome
// (win first, draw second; immutable once set) and flips the turn.
func (s *State) Apply(boardIdx, cellIdx int, mark Mark) error {
	if boardIdx < 0 || boardIdx > 8 || cellIdx < 0 || cellIdx > 8 {
		return ErrOutOfRange
	}
	if s.Outcome() != Undecided {
		return ErrGameFinished
	}
	if mark != s.Turn {
		return ErrNotYourTurn
	}
	if s.Statuses[boardIdx] != Undecided {
		return ErrWrongBoard
	}
	if s.Target != TargetAny && s.Statuses[s.Target] == Undecided && boardIdx != s.Target {
		return ErrWrongBoard
	}
	if s.Boards[boardIdx][cellIdx] != None {
		return ErrCellOccupied
	}

	s.Boards[boardIdx][cellIdx] = mark
	s.Target = cellIdx

	if s.Boards[boardIdx].HasWon(mark) {
		s.Statuses[boardIdx] = Outcome(mark)
	} else if s.Boards[boardIdx].IsFull() {
		s.Statuses[boardIdx] = Drawn
	}

	s.Turn = Opponent(mark)
	return nil
}
