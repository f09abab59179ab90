package events

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	"fleet-mileage-monitor/pkg/mqtt"
)

type fakeBroker struct {
	handlers  map[string]mqtt.MessageHandler
	published [][]byte
	err       error
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{handlers: map[string]mqtt.MessageHandler{}}
}

func (f *fakeBroker) Publish(topic string, qos byte, retained bool, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, payload)
	if h, ok := f.handlers[topic]; ok {
		h(topic, payload)
	}
	return nil
}

func (f *fakeBroker) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	f.handlers[topic] = handler
	return nil
}

type recordingCache struct {
	invalidated []domainMileage.Category
}

func (r *recordingCache) Invalidate(category domainMileage.Category) {
	r.invalidated = append(r.invalidated, category)
}

func TestThresholdBroadcaster_PeersInvalidate(t *testing.T) {
	broker := newFakeBroker()
	local := NewThresholdBroadcaster(broker, "fleet/thresholds/updated")
	peer := NewThresholdBroadcaster(broker, "fleet/thresholds/updated")

	cache := &recordingCache{}
	require.NoError(t, peer.Listen(cache))

	require.NoError(t, local.PublishThresholdsUpdated(context.Background(), domainMileage.CategoryWeekly))

	require.Len(t, broker.published, 1)
	var event ThresholdsUpdated
	require.NoError(t, json.Unmarshal(broker.published[0], &event))
	assert.Equal(t, domainMileage.CategoryWeekly, event.Category)
	assert.Equal(t, local.origin, event.Origin)

	assert.Equal(t, []domainMileage.Category{domainMileage.CategoryWeekly}, cache.invalidated)
}

func TestThresholdBroadcaster_IgnoresOwnAndMalformedEvents(t *testing.T) {
	broker := newFakeBroker()
	b := NewThresholdBroadcaster(broker, "topic")
	cache := &recordingCache{}
	require.NoError(t, b.Listen(cache))

	require.NoError(t, b.PublishThresholdsUpdated(context.Background(), domainMileage.CategoryMonthlyTotal))
	b.handle(cache, []byte("not json"))
	b.handle(cache, []byte(`{"category":"yearly","origin":"someone"}`))

	assert.Empty(t, cache.invalidated)
}

func TestThresholdBroadcaster_PublishError(t *testing.T) {
	broker := newFakeBroker()
	broker.err = errors.New("not connected")

	err := NewThresholdBroadcaster(broker, "topic").PublishThresholdsUpdated(context.Background(), domainMileage.CategoryWeekly)
	assert.ErrorContains(t, err, "not connected")
}
