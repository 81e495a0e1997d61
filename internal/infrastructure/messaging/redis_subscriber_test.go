package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/udhari/ledger-service/internal/domain"
	"go.uber.org/zap"
)

func newTestSubscriber() *RedisEventSubscriber {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	sub := NewRedisEventSubscriber(client, zap.NewNop(), "test-consumer")
	sub.handlers[domain.EventTypeReminderRequested] = func(ctx context.Context, event domain.DomainEvent) error {
		return nil
	}
	return sub
}

func TestProcessEventsSurfacesCancellation(t *testing.T) {
	sub := newTestSubscriber()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled context must come back as context.Canceled so Start can
	// tell shutdown apart from a broker failure.
	err := sub.processEvents(ctx)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestStartReturnsCleanlyWhenCancelled(t *testing.T) {
	sub := newTestSubscriber()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, sub.Start(ctx))
}
