// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-kids/internal/core/book"
	"github.com/taibuivan/yomira-kids/internal/platform/constants"
)

// Publisher is the part of [*redis.Client] the relay needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// # Redis Relay

// RedisRelay republishes favorite changes as JSON [Message] values on a Redis channel.
type RedisRelay struct {
	client  Publisher
	channel string
	queue   chan book.Change
	logger  *slog.Logger
}

// NewRedisRelay creates a relay publishing to channel. Call Run in its own goroutine.
func NewRedisRelay(client Publisher, channel string, logger *slog.Logger) *RedisRelay {
	return &RedisRelay{
		client:  client,
		channel: channel,
		queue:   make(chan book.Change, constants.FeedEventBuffer),
		logger:  logger,
	}
}

// Notify is a [book.Listener]. It never blocks the store.
func (relay *RedisRelay) Notify(change book.Change) {
	select {
	case relay.queue <- change:
	default:
		relay.logger.Warn("relay_event_dropped",
			slog.String("book_id", change.Book.ID),
			slog.String("type", string(change.Type)),
		)
	}
}

// Run publishes queued changes in order until ctx is cancelled.
func (relay *RedisRelay) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			relay.logger.Info("relay_stopped", slog.String("channel", relay.channel))
			return

		case change := <-relay.queue:
			if err := relay.Publish(ctx, change); err != nil {
				relay.logger.Error("relay_publish_failed",
					slog.String("book_id", change.Book.ID),
					slog.Any("error", err),
				)
			}
		}
	}
}

/*
Publish sends one change to the channel immediately.

Parameters:
  - ctx: context.Context (bounded further by [constants.RelayPublishTimeout])
  - change: book.Change

Returns:
  - error: Encoding or Redis failures
*/
func (relay *RedisRelay) Publish(ctx context.Context, change book.Change) error {
	payload, err := json.Marshal(NewMessage(change))
	if err != nil {
		return fmt.Errorf("feed: encoding change: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, constants.RelayPublishTimeout)
	defer cancel()

	receivers, err := relay.client.Publish(publishCtx, relay.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("feed: publishing to %s: %w", relay.channel, err)
	}

	relay.logger.Debug("relay_published",
		slog.String("channel", relay.channel),
		slog.String("book_id", change.Book.ID),
		slog.Int64("receivers", receivers),
	)

	return nil
}
