package prusa

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Connection is the broker session the bridge owns.
// Satisfied by *mqtt.Client.
type Connection interface {
	Publisher

	// Connect establishes the session. A failure here is fatal.
	Connect() error

	// Close ends the session. Must be safe to call more than once and
	// before Connect.
	Close() error
}

// BridgeOptions holds configuration for creating a bridge.
type BridgeOptions struct {
	// Fetcher supplies printer snapshots (typically *Client).
	Fetcher StatusFetcher

	// MQTT is the broker session (typically *mqtt.Client).
	MQTT Connection

	// Interval between poll cycles. Zero selects DefaultPollInterval.
	Interval time.Duration

	// Logger is optional structured logger.
	Logger Logger
}

// Bridge republishes printer telemetry onto MQTT.
//
// It moves through Connecting, Polling and Stopping. The broker session is
// referenced by both the poll loop and Shutdown; Shutdown only closes it
// after the loop has returned, so no publish follows disconnect.
//
// Thread Safety: All methods are safe for concurrent use.
type Bridge struct {
	mqtt   Connection
	poller *Poller
	logger Logger

	state atomic.Int32

	// Shutdown coordination
	mu       sync.Mutex
	running  bool
	stopped  bool
	cancel   context.CancelFunc // cancels the poll loop context
	loopDone chan struct{}      // closed once the poll loop can no longer publish
	loopOnce sync.Once
	stopOnce sync.Once
}

// NewBridge creates a new bridge instance.
// Call Run to connect and begin polling.
func NewBridge(opts BridgeOptions) (*Bridge, error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("status fetcher is required")
	}
	if opts.MQTT == nil {
		return nil, fmt.Errorf("MQTT connection is required")
	}

	b := &Bridge{
		mqtt:     opts.MQTT,
		poller:   NewPoller(opts.Fetcher, opts.MQTT, opts.Interval, opts.Logger),
		logger:   opts.Logger,
		loopDone: make(chan struct{}),
	}
	b.state.Store(int32(StateConnecting))

	return b, nil
}

// State returns the current lifecycle state.
func (b *Bridge) State() State {
	return State(b.state.Load())
}

// Run connects to the broker and polls until ctx is cancelled or Shutdown
// is called, then closes the broker session.
//
// Returns:
//   - error: non-nil only if the initial broker connection fails; a clean
//     shutdown returns nil
func (b *Bridge) Run(ctx context.Context) error {
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	b.mu.Lock()
	if b.stopped || b.running {
		b.mu.Unlock()
		return nil
	}
	b.running = true
	b.cancel = cancel
	b.mu.Unlock()

	defer b.markLoopDone()

	if err := b.mqtt.Connect(); err != nil {
		b.log().Error("MQTT connect failed",
			"kind", KindBrokerUnreachable,
			"error", err,
		)
		b.setState(StateStopping)
		return fmt.Errorf("connecting to MQTT broker: %w", err)
	}
	b.log().Info("MQTT connected, polling printer", "interval", b.poller.Interval())

	if b.state.CompareAndSwap(int32(StateConnecting), int32(StatePolling)) {
		b.poller.Run(loopCtx)
	}

	b.log().Info("stop requested, poll loop finished")
	b.markLoopDone()
	b.Shutdown()

	return nil
}

// Shutdown stops the bridge: no new cycle starts, the in-flight cycle (if
// any) finishes, then the broker session is closed.
//
// Safe to call multiple times, from any goroutine, and before Run.
func (b *Bridge) Shutdown() {
	b.stopOnce.Do(func() {
		b.mu.Lock()
		b.stopped = true
		running := b.running
		cancel := b.cancel
		b.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		b.setState(StateStopping)
		if !running {
			b.markLoopDone()
		}

		<-b.loopDone

		if err := b.mqtt.Close(); err != nil {
			b.log().Error("error closing MQTT", "error", err)
		}
		b.log().Info("MQTT disconnected, shutdown complete")
	})
}

// markLoopDone releases Shutdown once the poll loop can no longer publish.
func (b *Bridge) markLoopDone() {
	b.loopOnce.Do(func() { close(b.loopDone) })
}

func (b *Bridge) setState(s State) {
	b.state.Store(int32(s))
}

func (b *Bridge) log() Logger {
	if b.logger == nil {
		return nopLogger{}
	}
	return b.logger
}
