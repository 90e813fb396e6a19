//go:build unit

package eventbus_test

import (
	"context"
	"testing"

	"conference-seats/internal/domain/conference"
	"conference-seats/internal/infra/eventbus"
	"conference-seats/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestInProcessBus_DeliversInOrder(t *testing.T) {
	bus := eventbus.NewInProcessBus()

	var received []conference.Event
	bus.Subscribe(func(_ context.Context, e conference.Event) {
		received = append(received, e)
	})

	events := builder.NewConferenceHistoryBuilder().
		WithSeats("Workshop", 10).
		Published().
		Build()
	bus.Publish(context.Background(), events)

	if diff := cmp.Diff(events, received); diff != "" {
		t.Errorf("Delivery order mismatch (-want +got):\n%s", diff)
	}
}

func TestInProcessBus_EachSubscriberSeesEachEventOnce(t *testing.T) {
	bus := eventbus.NewInProcessBus()

	counts := make([]int, 2)
	bus.Subscribe(func(_ context.Context, _ conference.Event) { counts[0]++ })
	bus.Subscribe(func(_ context.Context, _ conference.Event) { counts[1]++ })

	events := builder.NewConferenceHistoryBuilder().Published().Build()
	bus.Publish(context.Background(), events)

	assert.Equal(t, len(events), counts[0])
	assert.Equal(t, len(events), counts[1])
}

func TestInProcessBus_PublishWithoutSubscribers(t *testing.T) {
	bus := eventbus.NewInProcessBus()

	events := builder.NewConferenceHistoryBuilder().Build()
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), events)
	})
}
