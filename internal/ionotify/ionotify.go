// Package ionotify publishes upload events to an MQTT broker.
package ionotify

import (
	"context"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gnames/gndash/pkg/config"
	"github.com/gnames/gndash/pkg/dataset"
	"github.com/gnames/gnfmt"
)

const publishTimeout = 5 * time.Second

type mqttNotifier struct {
	client mqtt.Client
	topic  string
}

// New creates a notifier for the MQTT settings. An empty broker gives a
// notifier that does nothing.
func New(cfg config.NotifyConfig) dataset.Notifier {
	if cfg.MQTTBroker == "" {
		return noop{}
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTTBroker)
	opts.SetClientID(cfg.MQTTClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(10 * time.Second)
	opts.SetMaxReconnectInterval(time.Minute)
	opts.SetConnectTimeout(5 * time.Second)

	opts.SetOnConnectHandler(func(mqtt.Client) {
		slog.Info("Connected to MQTT broker", "broker", cfg.MQTTBroker)
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		slog.Warn("Lost connection to MQTT broker", "error", err)
	})

	client := mqtt.NewClient(opts)

	// with ConnectRetry the client keeps trying in background
	token := client.Connect()
	if token.WaitTimeout(5*time.Second) && token.Error() != nil {
		slog.Warn("Cannot connect to MQTT broker",
			"broker", cfg.MQTTBroker, "error", token.Error())
	}

	return newMQTT(client, cfg.MQTTTopic)
}

func newMQTT(client mqtt.Client, topic string) *mqttNotifier {
	return &mqttNotifier{client: client, topic: topic}
}

// Notify publishes the event as JSON with QoS 1.
func (n *mqttNotifier) Notify(ctx context.Context, e dataset.Event) error {
	if !n.client.IsConnected() {
		return NotConnectedError(n.topic)
	}

	enc := gnfmt.GNjson{}
	payload, err := enc.Encode(e)
	if err != nil {
		return PublishError(n.topic, err)
	}

	token := n.client.Publish(n.topic, 1, false, payload)
	select {
	case <-ctx.Done():
		return PublishError(n.topic, ctx.Err())
	case <-token.Done():
	case <-time.After(publishTimeout):
		return PublishError(n.topic, context.DeadlineExceeded)
	}
	if err = token.Error(); err != nil {
		return PublishError(n.topic, err)
	}

	slog.Debug("Published upload event",
		"topic", n.topic, "dataset", e.DatasetID)
	return nil
}

func (n *mqttNotifier) Close() error {
	if n.client.IsConnected() {
		n.client.Disconnect(250)
	}
	return nil
}

type noop struct{}

func (noop) Notify(context.Context, dataset.Event) error { return nil }

func (noop) Close() error { return nil }
