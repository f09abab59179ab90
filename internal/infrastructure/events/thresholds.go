package events

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
	"fleet-mileage-monitor/internal/logger"
	"fleet-mileage-monitor/pkg/mqtt"
)

const qosAtLeastOnce byte = 1

// Broker is the subset of the MQTT client used for threshold events.
type Broker interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// CacheInvalidator drops a cached range table.
type CacheInvalidator interface {
	Invalidate(category domainMileage.Category)
}

// ThresholdsUpdated is broadcast after a range table is replaced.
type ThresholdsUpdated struct {
	Category  domainMileage.Category `json:"category"`
	Origin    string                 `json:"origin"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// ThresholdBroadcaster keeps the range caches of every instance in step.
// Each instance tags its own events so it can ignore them on receipt.
type ThresholdBroadcaster struct {
	broker Broker
	topic  string
	origin string
}

func NewThresholdBroadcaster(broker Broker, topic string) *ThresholdBroadcaster {
	return &ThresholdBroadcaster{
		broker: broker,
		topic:  topic,
		origin: uuid.NewString(),
	}
}

func (b *ThresholdBroadcaster) PublishThresholdsUpdated(_ context.Context, category domainMileage.Category) error {
	payload, err := json.Marshal(ThresholdsUpdated{
		Category:  category,
		Origin:    b.origin,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode threshold event: %w", err)
	}

	if err := b.broker.Publish(b.topic, qosAtLeastOnce, false, payload); err != nil {
		return fmt.Errorf("failed to publish threshold event: %w", err)
	}
	return nil
}

// Listen subscribes to threshold events from peers and invalidates cache
// entries they touched.
func (b *ThresholdBroadcaster) Listen(cache CacheInvalidator) error {
	return b.broker.Subscribe(b.topic, qosAtLeastOnce, func(topic string, payload []byte) {
		b.handle(cache, payload)
	})
}

func (b *ThresholdBroadcaster) handle(cache CacheInvalidator, payload []byte) {
	var event ThresholdsUpdated
	if err := json.Unmarshal(payload, &event); err != nil {
		logger.Warn("Ignoring malformed threshold event", zap.Error(err))
		return
	}
	if event.Origin == b.origin {
		return
	}

	category, err := domainMileage.ParseCategory(string(event.Category))
	if err != nil {
		logger.Warn("Ignoring threshold event for unknown category",
			zap.String("category", string(event.Category)),
		)
		return
	}

	cache.Invalidate(category)
	logger.Info("Range cache invalidated by peer",
		zap.String("category", string(category)),
		zap.String("origin", event.Origin),
		zap.String("event", "thresholds_invalidated"),
	)
}
