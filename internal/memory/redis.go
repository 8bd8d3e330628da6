package memory

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"

	"ultimattt/internal/game"
)

var tracer = otel.Tracer("memory")

// Redis hash field names.
const (
	fieldWins        = "wins"
	fieldLosses      = "losses"
	fieldDraws       = "draws"
	fieldLastOutcome = "last_outcome"
)

// RedisStore keeps the memory map in Redis hashes so multiple server
// instances share the bot's memory. Selected when a Redis address is
// configured; the file store remains the default.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Redis-backed outcome memory.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func memoryKey(name string) string {
	return fmt.Sprintf("memory:%s", name)
}

// Get returns the entry for a display name.
func (s *RedisStore) Get(ctx context.Context, name string) (Entry, bool) {
	ctx, span := tracer.Start(ctx, "MemoryStore.Get")
	defer span.End()

	data, err := s.rdb.HGetAll(ctx, memoryKey(name)).Result()
	if err != nil || len(data) == 0 {
		return Entry{}, false
	}

	wins, _ := strconv.Atoi(data[fieldWins])
	losses, _ := strconv.Atoi(data[fieldLosses])
	draws, _ := strconv.Atoi(data[fieldDraws])
	return Entry{
		Wins:        wins,
		Losses:      losses,
		Draws:       draws,
		LastOutcome: data[fieldLastOutcome],
	}, true
}

// Record applies one decided game to the named entry.
func (s *RedisStore) Record(ctx context.Context, name string, winner game.Outcome, botMark game.Mark) error {
	ctx, span := tracer.Start(ctx, "MemoryStore.Record")
	defer span.End()

	var e Entry
	e.record(winner, botMark)

	counter := fieldWins
	switch e.LastOutcome {
	case OutcomeWin:
		counter = fieldLosses
	case OutcomeDraw:
		counter = fieldDraws
	}

	key := memoryKey(name)
	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, key, counter, 1)
	pipe.HSet(ctx, key, fieldLastOutcome, e.LastOutcome)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record outcome in redis: %w", err)
	}
	return nil
}
