package cacheinfra

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-member-cache/internal/logging"
)

// DefaultInvalidationChannel is the Pub/Sub channel used when none is set.
const DefaultInvalidationChannel = "member-cache:invalidate"

// Invalidator relays key invalidations between processes sharing a Redis L2.
// Every message is "<origin> <key>"; a process ignores its own messages.
type Invalidator struct {
	client  *redis.Client
	channel string
	origin  string
	local   Backend
	logger  *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	closed bool
}

// NewInvalidator creates an invalidator that evicts keys from local when a
// peer publishes them.
func NewInvalidator(client *redis.Client, channel string, local Backend, logger *slog.Logger) *Invalidator {
	if channel == "" {
		channel = DefaultInvalidationChannel
	}
	return &Invalidator{
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
		local:   local,
		logger:  logging.OrOp(logger, "cache.invalidator"),
	}
}

// Start listens for invalidation messages. It blocks until the context is
// cancelled or Close is called.
func (i *Invalidator) Start(ctx context.Context) {
	i.mu.Lock()
	if i.closed {
		i.mu.Unlock()
		return
	}
	subCtx, cancel := context.WithCancel(ctx)
	i.cancel = cancel
	i.mu.Unlock()

	pubsub := i.client.Subscribe(subCtx, i.channel)
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
			i.handle(subCtx, msg.Payload)
		}
	}
}

func (i *Invalidator) handle(ctx context.Context, payload string) {
	origin, key, ok := decodeInvalidation(payload)
	if !ok {
		i.logger.Warn("malformed cache invalidation", "payload", payload)
		return
	}
	if origin == i.origin {
		return
	}
	if err := i.local.Delete(ctx, key); err != nil {
		i.logger.Warn("local cache eviction failed", "key", key, "error", err)
	}
}

// Publish announces that key changed.
func (i *Invalidator) Publish(ctx context.Context, key string) error {
	return i.client.Publish(ctx, i.channel, encodeInvalidation(i.origin, key)).Err()
}

// Close stops the listener.
func (i *Invalidator) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return nil
	}
	i.closed = true
	if i.cancel != nil {
		i.cancel()
	}
	return nil
}

func encodeInvalidation(origin, key string) string {
	return origin + " " + key
}

func decodeInvalidation(payload string) (origin, key string, ok bool) {
	origin, key, ok = strings.Cut(payload, " ")
	if !ok || origin == "" || key == "" {
		return "", "", false
	}
	return origin, key, true
}
