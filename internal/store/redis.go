package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/durakfree/durak-server-go/internal/game"
)

// applyRetries bounds the optimistic-lock retry loop in Apply.
const applyRetries = 16

// ErrConflict is returned when an Apply keeps losing the optimistic
// write race and runs out of retries.
var ErrConflict = errors.New("store: too many concurrent snapshot writes")

// RedisStore keeps the authoritative snapshot as canonical JSON under a
// single key and broadcasts committed snapshots over a pub/sub channel,
// so multiple server nodes can share one game. Apply uses WATCH/MULTI
// for the read-modify-write cycle, which gives the same at-most-one-
// writer guarantee the in-memory store provides with a mutex.
type RedisStore struct {
	client  *redis.Client
	key     string
	channel string
	logger  *zap.Logger
}

// NewRedisStore creates a store for one game keyed by gameID.
func NewRedisStore(client *redis.Client, gameID string, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		client:  client,
		key:     "durak:game:" + gameID,
		channel: "durak:updates:" + gameID,
		logger:  logger,
	}
}

// Load implements Store.
func (r *RedisStore) Load(ctx context.Context) (*game.GameState, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("store: load snapshot: %w", err)
	}
	return game.DecodeSnapshot(data)
}

// Replace implements Store.
func (r *RedisStore) Replace(ctx context.Context, s *game.GameState) error {
	data, err := game.EncodeSnapshot(s)
	if err != nil {
		return err
	}
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key, data, 0)
	pipe.Publish(ctx, r.channel, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store: replace snapshot: %w", err)
	}
	return nil
}

// Apply implements Store. The watch aborts and retries when another
// writer commits between our read and our write; errors from fn abort
// without retrying, since the update itself was rejected.
func (r *RedisStore) Apply(ctx context.Context, fn UpdateFunc) (*game.GameState, error) {
	var committed *game.GameState
	txf := func(tx *redis.Tx) error {
		var current *game.GameState
		data, err := tx.Get(ctx, r.key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			current = nil
		case err != nil:
			return fmt.Errorf("store: read snapshot: %w", err)
		default:
			if current, err = game.DecodeSnapshot(data); err != nil {
				return err
			}
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		encoded, err := game.EncodeSnapshot(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key, encoded, 0)
			pipe.Publish(ctx, r.channel, encoded)
			return nil
		})
		if err == nil {
			committed = next
		}
		return err
	}

	for i := 0; i < applyRetries; i++ {
		err := r.client.Watch(ctx, txf, r.key)
		if errors.Is(err, redis.TxFailedErr) {
			r.logger.Debug("snapshot write raced, retrying", zap.Int("attempt", i+1))
			continue
		}
		if err != nil {
			return nil, err
		}
		return committed, nil
	}
	return nil, ErrConflict
}

// Subscribe implements Store, backed by redis pub/sub.
func (r *RedisStore) Subscribe(ctx context.Context) (<-chan *game.GameState, func(), error) {
	pubsub := r.client.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		return nil, nil, fmt.Errorf("store: subscribe: %w", err)
	}

	out := make(chan *game.GameState, 16)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			s, err := game.DecodeSnapshot([]byte(msg.Payload))
			if err != nil {
				r.logger.Warn("dropping undecodable snapshot update", zap.Error(err))
				continue
			}
			select {
			case out <- s:
			default:
				r.logger.Debug("subscriber lagging, snapshot dropped")
			}
		}
	}()
	cancel := func() { _ = pubsub.Close() }
	return out, cancel, nil
}

// Close implements Store. The redis client is shared and owned by the
// caller, so only this store's resources are released.
func (r *RedisStore) Close() error {
	return nil
}
