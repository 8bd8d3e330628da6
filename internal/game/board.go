package game

// Mark represents the content of a single cell (X, O) or an empty cell.
type Mark string

// Outcome represents the derived result of a sub-board or of the big board.
type Outcome string

const (
	None    Mark = ""
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	Undecided Outcome = ""
	WonByX    Outcome = "X"
	WonByO    Outcome = "O"
	Drawn     Outcome = "draw"

	// CenterIndex is the middle slot of any 3x3 grid, cell or sub-board alike.
	CenterIndex = 4
)

// winningTriples are the 8 lines of a 3x3 grid: rows, columns, diagonals.
// The same table scores sub-boards over cells and the big board over outcomes.
var winningTriples = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Cells is one 3x3 grid laid out row-major.
type Cells [9]Mark

// Statuses holds the derived outcome of each of the 9 sub-boards.
type Statuses [9]Outcome

// HasWon reports whether mark owns a full triple in the sub-board.
func (c Cells) HasWon(mark Mark) bool {
	for _, t := range winningTriples {
		if c[t[0]] == mark && c[t[1]] == mark && c[t[2]] == mark {
			return true
		}
	}
	return false
}

// IsFull reports whether every cell is occupied. Callers must check HasWon
// first: a full board with a winning triple is a win, not a draw.
func (c Cells) IsFull() bool {
	for _, m := range c {
		if m == None {
			return false
		}
	}
	return true
}

// HasWon reports whether mark owns a full triple of decided sub-boards.
// Drawn sub-boards never count toward either mark.
func (s Statuses) HasWon(mark Mark) bool {
	want := Outcome(mark)
	for _, t := range winningTriples {
		if s[t[0]] == want && s[t[1]] == want && s[t[2]] == want {
			return true
		}
	}
	return false
}

// IsFull reports whether every sub-board has been decided, draws included.
func (s Statuses) IsFull() bool {
	for _, o := range s {
		if o == Undecided {
			return false
		}
	}
	return true
}

// LinePotential scores an undecided sub-board for mark against opp: 10
// points per triple held two-to-none, 1 per triple held one-to-none
// (negated when opp holds it), plus 2 for the center cell.
func (c Cells) LinePotential(mark, opp Mark) int {
	score := 0
	for _, t := range winningTriples {
		var mine, theirs int
		for _, i := range t {
			switch c[i] {
			case mark:
				mine++
			case opp:
				theirs++
			}
		}
		switch {
		case mine == 2 && theirs == 0:
			score += 10
		case theirs == 2 && mine == 0:
			score -= 10
		case mine == 1 && theirs == 0:
			score++
		case theirs == 1 && mine == 0:
			score--
		}
	}
	if c[CenterIndex] == mark {
		score += 2
	} else if c[CenterIndex] == opp {
		score -= 2
	}
	return score
}

// Opponent returns the other player's mark.
func Opponent(mark Mark) Mark {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
