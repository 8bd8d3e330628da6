// Package memory persists the bot's per-player outcome counters. Entries
// are keyed by display name, created on a player's first decided bot game
// and updated (never deleted) on every one after that.
package memory

import (
	"context"

	"ultimattt/internal/game"
)

// Last-outcome tags stored per player.
const (
	OutcomeWin  = "win"
	OutcomeLose = "lose"
	OutcomeDraw = "draw"
)

// Entry holds the cumulative results recorded against one display name.
type Entry struct {
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Draws       int    `json:"draws"`
	LastOutcome string `json:"lastOutcome"`
}

// record updates the entry for one decided game. The bookkeeping is
// intentionally inverted and must stay compatible with existing memory
// files: a board won by the human mark tags "lose" and bumps Wins, a board
// won by the bot tags "win" and bumps Losses.
func (e *Entry) record(winner game.Outcome, botMark game.Mark) {
	switch winner {
	case game.Drawn:
		e.LastOutcome = OutcomeDraw
		e.Draws++
	case game.Outcome(botMark):
		e.LastOutcome = OutcomeWin
		e.Losses++
	default:
		e.LastOutcome = OutcomeLose
		e.Wins++
	}
}

// Angry reports whether the player's last recorded game tagged "lose". The
// flag is read before a search but does not alter scoring.
func (e Entry) Angry() bool {
	return e.LastOutcome == OutcomeLose
}

// Store is the outcome-memory contract. Failures are best effort: callers
// log the returned error and move on, never surfacing it to clients.
type Store interface {
	Get(ctx context.Context, name string) (Entry, bool)
	Record(ctx context.Context, name string, winner game.Outcome, botMark game.Mark) error
}
