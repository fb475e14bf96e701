package mqtt

import (
	"fmt"
)

// Maximum payload size for MQTT messages (1MB).
const maxPayloadSize = 1 << 20

// Publish sends payload to {prefix}/{suffix}.
//
// Delivery is QoS 0 (at most once) and not retained. The call waits only
// until paho has handed the packet to the network, never for a broker ack.
//
// Parameters:
//   - suffix: Topic suffix appended to the configured prefix (e.g., "bed")
//   - payload: Message payload, UTF-8 text for telemetry values
//
// Returns:
//   - error: ErrInvalidTopic, ErrNotConnected, or ErrPublishFailed
//
// Example:
//
//	err := client.Publish("bed", []byte("60.5"))
func (c *Client) Publish(suffix string, payload []byte) error {
	if err := validateSuffix(suffix); err != nil {
		return fmt.Errorf("%w: %q", err, suffix)
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return fmt.Errorf("%w: %w", ErrPublishFailed, ErrNotConnected)
	}

	topic := c.topics.Field(suffix)
	token := c.client.Publish(topic, fieldQoS, fieldRetained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: %s: timeout after %v", ErrPublishFailed, topic, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublishFailed, topic, err)
	}

	return nil
}

// PublishString is a convenience method that publishes a string payload.
func (c *Client) PublishString(suffix string, payload string) error {
	return c.Publish(suffix, []byte(payload))
}
