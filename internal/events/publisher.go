// Package events publishes generated recommendations to an MQTT broker so
// other consumers (dashboards, notifiers) can follow them per zip code.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/clothingadvisor/backend/internal/domain"
)

// ErrNotConnected is returned when publishing before the broker connection is up.
var ErrNotConnected = errors.New("mqtt client not connected")

const publishTimeout = 5 * time.Second

// RecommendationEvent is the payload published for each recommendation.
type RecommendationEvent struct {
	ZipCode        string                        `json:"zip_code"`
	PublishedAt    time.Time                     `json:"published_at"`
	Recommendation domain.ClothingRecommendation `json:"recommendation"`
}

// Topic returns the topic a recommendation for zipCode is published on.
func Topic(prefix, zipCode string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if zipCode == "" {
		zipCode = "unknown"
	}
	return fmt.Sprintf("%s/%s/recommendation", prefix, zipCode)
}

// MQTTPublisher publishes recommendation events with QoS 1.
type MQTTPublisher struct {
	client    mqtt.Client
	prefix    string
	logger    *slog.Logger
	mu        sync.RWMutex
	connected bool
	now       func() time.Time
}

// NewMQTTPublisher configures a client for broker (e.g. tcp://localhost:1883).
// Call Connect before publishing.
func NewMQTTPublisher(broker, clientID, topicPrefix string, logger *slog.Logger) *MQTTPublisher {
	p := &MQTTPublisher{
		prefix: topicPrefix,
		logger: logger,
		now:    time.Now,
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)

	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		p.setConnected(true)
		logger.Info("mqtt connected", "broker", broker)
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		p.setConnected(false)
		logger.Warn("mqtt connection lost", "error", err)
	})

	p.client = mqtt.NewClient(opts)
	return p
}

// Connect waits for the initial broker connection or ctx cancellation.
func (p *MQTTPublisher) Connect(ctx context.Context) error {
	if p.IsConnected() {
		return nil
	}

	token := p.client.Connect()
	const poll = 200 * time.Millisecond
	for {
		if token.WaitTimeout(poll) {
			if err := token.Error(); err != nil {
				return fmt.Errorf("mqtt connect: %w", err)
			}
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
}

// PublishRecommendation publishes rec to {prefix}/{zip}/recommendation.
func (p *MQTTPublisher) PublishRecommendation(ctx context.Context, rec domain.ClothingRecommendation) error {
	if !p.IsConnected() {
		return ErrNotConnected
	}

	topic := Topic(p.prefix, rec.Weather.ZipCode)
	data, err := json.Marshal(RecommendationEvent{
		ZipCode:        rec.Weather.ZipCode,
		PublishedAt:    p.now().UTC(),
		Recommendation: rec,
	})
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}

	timeout := publishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < timeout {
			timeout = d
		}
	}

	token := p.client.Publish(topic, 1, false, data)
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("publish timeout for topic %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish recommendation: %w", err)
	}

	p.logger.Debug("published recommendation", "topic", topic)
	return nil
}

// IsConnected returns whether the client is connected.
func (p *MQTTPublisher) IsConnected() bool {
	p.mu.RLock()
	connected := p.connected
	p.mu.RUnlock()
	return connected && p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
	p.setConnected(false)
	p.logger.Info("mqtt disconnected")
}

func (p *MQTTPublisher) setConnected(v bool) {
	p.mu.Lock()
	p.connected = v
	p.mu.Unlock()
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

// PublishRecommendation does nothing.
func (NopPublisher) PublishRecommendation(context.Context, domain.ClothingRecommendation) error {
	return nil
}
