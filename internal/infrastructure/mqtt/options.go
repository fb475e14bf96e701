package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/nerrad567/prusa-mqtt-bridge/internal/infrastructure/config"
)

// Connection constants.
const (
	// defaultConnectTimeout is the maximum time to wait for initial connection.
	defaultConnectTimeout = 10 * time.Second

	// defaultPublishTimeout bounds how long a publish may take to be written out.
	defaultPublishTimeout = 5 * time.Second

	// defaultDisconnectQuiesce is the time to wait for pending operations on disconnect.
	defaultDisconnectQuiesce = 250 // milliseconds

	// defaultKeepAlive is the keepalive interval for the connection.
	defaultKeepAlive = 60 * time.Second

	// defaultClientIDPrefix is used when the config leaves mqtt_client_id empty.
	defaultClientIDPrefix = "prusa-mqtt"

	// clientIDSuffixLen keeps the full id within the 23 characters MQTT 3.1 brokers accept.
	clientIDSuffixLen = 8
)

// Field delivery settings. Telemetry is at-most-once and not retained.
const (
	fieldQoS      byte = 0
	fieldRetained      = false

	// statusQoS is used for the retained availability topic.
	statusQoS byte = 1
)

// Availability payloads published on the status topic.
const (
	statusOnline  = "online"
	statusOffline = "offline"
)

// newClientID returns the configured prefix with a random suffix so that two
// bridges (or a restarted bridge whose old session lingers) never collide.
func newClientID(prefix string) string {
	if prefix == "" {
		prefix = defaultClientIDPrefix
	}
	suffix := uuid.NewString()[:clientIDSuffixLen]
	return prefix + "-" + suffix
}

// buildClientOptions creates paho MQTT options from bridge config.
//
// This configures:
//   - Broker URL (tcp://host:port)
//   - Client ID for identification
//   - Authentication credentials (if provided)
//   - Clean session mode
//   - Last Will on the status topic
//
// Auto-reconnect is deliberately off: once an established session drops the
// bridge keeps running and every publish fails with ErrNotConnected.
func buildClientOptions(cfg config.MQTTConfig, clientID string) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()

	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port))
	opts.SetClientID(clientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(false)
	opts.SetConnectRetry(false)
	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(defaultKeepAlive)

	opts.SetWill(NewTopics(cfg.Topic).Status(), statusOffline, statusQoS, true)

	return opts
}
