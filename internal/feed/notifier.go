package feed

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/canteiro/internal/logging"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultChannel is the pub/sub channel revisions are announced on.
const DefaultChannel = "canteiro:projects:changed"

// Notifier announces store revisions to other processes sharing the store.
type Notifier interface {
	Publish(ctx context.Context, revision int64) error
	// Changes signals every announced revision until ctx is done, then
	// closes. Signals coalesce.
	Changes(ctx context.Context) <-chan struct{}
}

// NopNotifier announces nothing. Watchers relying on it fall back to polling.
type NopNotifier struct{}

func (NopNotifier) Publish(context.Context, int64) error { return nil }

func (NopNotifier) Changes(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch
}

// RedisNotifier fans revisions out over Redis pub/sub.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisClient connects to addr. The connection is lazy; errors surface on
// first use.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisNotifier(rdb *redis.Client, channel string, logger *zap.Logger) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{rdb: rdb, channel: channel, logger: logging.OrNop(logger)}
}

func (n *RedisNotifier) Publish(ctx context.Context, revision int64) error {
	if err := n.rdb.Publish(ctx, n.channel, revision).Err(); err != nil {
		return fmt.Errorf("publishing revision %d: %w", revision, err)
	}
	return nil
}

func (n *RedisNotifier) Changes(ctx context.Context) <-chan struct{} {
	out := make(chan struct{}, 1)
	sub := n.rdb.Subscribe(ctx, n.channel)

	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if _, err := strconv.ParseInt(msg.Payload, 10, 64); err != nil {
					n.logger.Warn("ignoring malformed revision announcement",
						zap.String("channel", msg.Channel),
						zap.String("payload", msg.Payload),
					)
					continue
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out
}
