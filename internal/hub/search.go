package hub

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ultimattt/internal/bot"
	"ultimattt/internal/client"
	"ultimattt/internal/game"
	"ultimattt/internal/room"
	"ultimattt/pkg/proto"
)

// searchJob carries a cloned state to a worker so the hub loop never blocks
// on the bot's thinking and other rooms keep moving.
type searchJob struct {
	roomID  string
	version int
	state   *game.State
	mark    game.Mark
	picker  bot.Picker
	timeout time.Duration
}

type searchResult struct {
	roomID  string
	version int
	move    game.Move
	mark    game.Mark
	ok      bool
}

// handleRequestBotMove dispatches a search for the bot's reply. The server
// searches its own room state; any board snapshot a client sends along is
// ignored, the room is authoritative.
func (h *Hub) handleRequestBotMove(ctx context.Context, c *client.Client, _ *proto.ClientMessage) {
	ctx, span := tracer.Start(ctx, "hub.handleRequestBotMove", trace.WithAttributes(
		attribute.String("client.id", c.ID),
	))
	defer span.End()

	rid, ok := h.memberOf[c.ID]
	if !ok {
		return
	}
	r, ok := h.rooms[rid]
	if !ok {
		return
	}
	if r.Kind != room.KindBot {
		slog.WarnContext(ctx, "bot move requested in a non-bot room", "room.id", rid, "client.id", c.ID)
		return
	}
	if r.Game.Turn != game.PlayerO || r.Game.Outcome() != game.Undecided || r.Searching {
		return
	}

	picker := bot.PickerFor(r.Difficulty, h.opts.SearchDepth, h.opts.SearchNodes)
	if mm, isSearch := picker.(*bot.Minimax); isSearch {
		entry, found := h.memory.Get(ctx, r.HumanName())
		mm.Angry = found && entry.Angry()
		span.SetAttributes(attribute.Bool("bot.angry", mm.Angry))
	}

	job := searchJob{
		roomID:  rid,
		version: r.Version,
		state:   r.Game.Clone(),
		mark:    game.PlayerO,
		picker:  picker,
		timeout: h.opts.SearchTimeout,
	}

	select {
	case h.searchJobs <- job:
		r.Searching = true
	default:
		slog.WarnContext(ctx, "search queue full, dropping bot move request", "room.id", rid)
	}
}

// searchWorker runs queued searches to completion. Each job gets its own
// wall-clock budget; an expired context makes the search fall back to
// heuristic scores instead of aborting.
func (h *Hub) searchWorker() {
	for job := range h.searchJobs {
		ctx, cancel := context.WithTimeout(context.Background(), job.timeout)
		move, ok := job.picker.PickMove(ctx, job.state, job.mark)
		cancel()
		res := searchResult{
			roomID:  job.roomID,
			version: job.version,
			move:    move,
			mark:    job.mark,
			ok:      ok,
		}
		select {
		case h.searchResults <- res:
		case <-h.done:
			return
		}
	}
}

// applySearchResult lands a finished search back on the hub loop. Results
// for rooms that vanished or moved on are discarded.
func (h *Hub) applySearchResult(res searchResult) {
	r, ok := h.rooms[res.roomID]
	if !ok {
		return
	}
	r.Searching = false
	if r.Version != res.version {
		slog.Warn("discarding stale search result", "room.id", res.roomID)
		return
	}
	if !res.ok {
		slog.Warn("search returned no move", "room.id", res.roomID)
		return
	}
	h.applyMove(context.Background(), r, res.move, res.mark)
}
