package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/groundops/crew-portal/internal/observability"
)

// RedisFeed carries change events over Redis pub/sub, one channel per table.
type RedisFeed struct {
	client  *redis.Client
	prefix  string
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewRedisFeed builds a feed over the given client.
func NewRedisFeed(client *redis.Client, prefix string, logger *zap.Logger, metrics *observability.Metrics) *RedisFeed {
	if prefix == "" {
		prefix = "realtime"
	}
	return &RedisFeed{client: client, prefix: prefix, logger: logger, metrics: metrics}
}

func (f *RedisFeed) channel(table string) string {
	return f.prefix + ":" + table
}

// Publish broadcasts the event on the table's channel.
func (f *RedisFeed) Publish(ctx context.Context, ev ChangeEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := f.client.Publish(ctx, f.channel(ev.Table), body).Err(); err != nil {
		return err
	}
	f.metrics.RecordRealtimeEvent(ev.Table, string(ev.Action))
	return nil
}

// Subscribe delivers matching events for a table until the context is
// cancelled or Unsubscribe is called.
func (f *RedisFeed) Subscribe(ctx context.Context, table string, filter Filter, fn Handler) (*Subscription, error) {
	pubsub := f.client.Subscribe(ctx, f.channel(table))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					f.logger.Warn("malformed change event", zap.Error(err))
					continue
				}
				if filter.Matches(ev) {
					fn(ev)
				}
			}
		}
	}()

	return newSubscription(cancel), nil
}
