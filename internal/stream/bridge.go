package stream

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"shutterdesk-be/internal/logger"
)

// Notifier is what a store pings after a successful write so other server
// instances can refresh their snapshots. A nil Notifier is valid and means
// single-instance operation.
type Notifier interface {
	Notify(ctx context.Context, collection string)
}

// Bridge relays collection-change notices through Redis pub/sub. It carries
// no payload, only the collection name; receivers reload from the database
// themselves, so a lost notice degrades to a stale snapshot, never to wrong
// data.
type Bridge struct {
	rdb     *redis.Client
	channel string
}

func NewBridge(redisURL, channel string) (*Bridge, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Bridge{rdb: rdb, channel: channel}, nil
}

func (b *Bridge) Notify(ctx context.Context, collection string) {
	if err := b.rdb.Publish(ctx, b.channel, collection).Err(); err != nil {
		logger.FromCtx(ctx).Warn("change notice not published",
			zap.String("collection", collection),
			zap.Error(err),
		)
	}
}

// Listen delivers remote change notices to onNotice until ctx is done.
// It runs in its own goroutine.
func (b *Bridge) Listen(ctx context.Context, onNotice func(collection string)) {
	sub := b.rdb.Subscribe(ctx, b.channel)

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				onNotice(msg.Payload)
			}
		}
	}()
}

func (b *Bridge) Close() error {
	return b.rdb.Close()
}
