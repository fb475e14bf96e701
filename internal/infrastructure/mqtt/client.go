package mqtt

import (
	"fmt"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/prusa-mqtt-bridge/internal/infrastructure/config"
)

// Client owns the single broker session used by the bridge.
//
// The session lifetime spans from a successful Connect to Close. Close is
// idempotent and safe to call on a client that never connected.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
//   - Once Close has started, Publish returns ErrNotConnected.
type Client struct {
	cfg      config.MQTTConfig
	clientID string
	topics   Topics

	// newPaho builds the underlying paho client. Replaced in tests.
	newPaho func(*pahomqtt.ClientOptions) pahomqtt.Client

	client pahomqtt.Client

	// connected tracks current connection state; closing is set once Close begins.
	connected bool
	closing   bool
	connMu    sync.RWMutex

	closeOnce sync.Once

	// onDisconnect is invoked when an established session is lost.
	onDisconnect func(err error)
	callbackMu   sync.RWMutex
}

// New creates an unconnected client. A fresh client id is generated from
// cfg.ClientID plus a random suffix.
func New(cfg config.MQTTConfig) *Client {
	return &Client{
		cfg:      cfg,
		clientID: newClientID(cfg.ClientID),
		topics:   NewTopics(cfg.Topic),
		newPaho:  pahomqtt.NewClient,
	}
}

// Connect establishes the broker session.
//
// It performs the following setup:
//  1. Builds connection options from config (broker URL, auth, LWT)
//  2. Attempts the connection with a bounded timeout
//  3. Publishes "online" to the retained status topic
//
// Calling Connect on a connected client is a no-op, so at most one session
// exists per Client.
//
// Returns:
//   - error: ErrConnectionFailed if the broker is unreachable or refuses
func (c *Client) Connect() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.closing {
		return fmt.Errorf("%w: client closed", ErrConnectionFailed)
	}
	if c.connected && c.client != nil && c.client.IsConnected() {
		return nil
	}

	opts := buildClientOptions(c.cfg, c.clientID)
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		c.handleConnectionLost(err)
	})

	client := c.newPaho(opts)
	token := client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %s:%d: %w", ErrConnectionFailed, c.cfg.Host, c.cfg.Port, err)
	}

	c.client = client
	c.connected = true

	// Best-effort; the LWT covers the offline case if this never lands.
	client.Publish(c.topics.Status(), statusQoS, true, statusOnline).WaitTimeout(defaultPublishTimeout)

	return nil
}

// handleConnectionLost is called by paho when an established session drops.
// No reconnection is attempted.
func (c *Client) handleConnectionLost(err error) {
	c.connMu.Lock()
	c.connected = false
	c.connMu.Unlock()

	c.callbackMu.RLock()
	callback := c.onDisconnect
	c.callbackMu.RUnlock()
	if callback != nil {
		callback(err)
	}
}

// Close gracefully disconnects from the MQTT broker.
//
// It performs:
//  1. Stops accepting publishes
//  2. Publishes graceful "offline" status (the LWT is reserved for crashes)
//  3. Disconnects with a short quiesce period
//
// Close may be called any number of times, including before Connect.
//
// Returns:
//   - error: always nil; a session that is already gone is not an error
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.connMu.Lock()
		c.closing = true
		client := c.client
		wasConnected := c.connected
		c.connected = false
		c.connMu.Unlock()

		if client == nil {
			return
		}

		if wasConnected && client.IsConnected() {
			token := client.Publish(c.topics.Status(), statusQoS, true, statusOffline)
			token.WaitTimeout(defaultPublishTimeout)
		}

		client.Disconnect(defaultDisconnectQuiesce)
	})

	return nil
}

// IsConnected returns the current connection state.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected && !c.closing && c.client != nil && c.client.IsConnected()
}

// ClientID returns the id presented to the broker.
func (c *Client) ClientID() string {
	return c.clientID
}

// Topics returns the topic builder for the configured prefix.
func (c *Client) Topics() Topics {
	return c.topics
}

// SetOnDisconnect sets a callback to be invoked when an established
// connection is lost. The error parameter describes why.
func (c *Client) SetOnDisconnect(callback func(err error)) {
	c.callbackMu.Lock()
	c.onDisconnect = callback
	c.callbackMu.Unlock()
}
