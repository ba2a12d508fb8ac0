package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/internal/infra/events"
	"github.com/m04kA/SMC-BeautyBooking/pkg/logger"
)

type recordingPublisher struct {
	name   string
	err    error
	events []domain.BookingEvent
	ctxErr error
}

func (p *recordingPublisher) Name() string {
	return p.name
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	p.events = append(p.events, event)
	p.ctxErr = ctx.Err()
	return p.err
}

type countingMetrics struct {
	errors map[string]int
}

func (m *countingMetrics) IncNotificationError(channel string) {
	m.errors[channel]++
}

func TestDispatcher_Publish(t *testing.T) {
	failing := &recordingPublisher{name: "amqp", err: errors.New("channel closed")}
	healthy := &recordingPublisher{name: "whatsapp"}
	metrics := &countingMetrics{errors: map[string]int{}}

	d := events.NewDispatcher(logger.NewNop(), metrics, failing, healthy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ev := domain.BookingEvent{Type: domain.EventBookingCreated, Reference: "TBE-1A2B3C"}
	d.Publish(ctx, ev)

	assert.Len(t, failing.events, 1)
	assert.Equal(t, []domain.BookingEvent{ev}, healthy.events, "a failing channel does not block the others")
	assert.NoError(t, healthy.ctxErr, "delivery is detached from request cancellation")
	assert.Equal(t, 1, metrics.errors["amqp"])
	assert.Zero(t, metrics.errors["whatsapp"])
}

func TestDispatcher_NoPublishers(t *testing.T) {
	d := events.NewDispatcher(logger.NewNop(), nil)
	assert.NotPanics(t, func() {
		d.Publish(context.Background(), domain.BookingEvent{Type: domain.EventBookingCancelled})
	})
}
