package prusa

import (
	"context"
	"time"
)

// DefaultPollInterval is the pause between the end of one cycle and the
// start of the next. I/O time is not subtracted, so cycles drift.
const DefaultPollInterval = 3 * time.Second

// StatusFetcher retrieves one printer status snapshot.
// Satisfied by *Client.
type StatusFetcher interface {
	FetchStatus(ctx context.Context) (Snapshot, error)
}

// Publisher sends one payload to {prefix}/{suffix}.
// Satisfied by *mqtt.Client.
type Publisher interface {
	Publish(suffix string, payload []byte) error
}

// Logger is the structured logger used by the bridge.
// Satisfied by *logging.Logger and *slog.Logger.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// CycleResult summarises one poll cycle.
type CycleResult struct {
	// Err is the fetch error; nil when a snapshot was obtained.
	Err error

	// Published counts fields handed to the broker successfully.
	Published int

	// Failed counts fields whose publish returned an error.
	Failed int

	// Skipped counts fields absent from the snapshot.
	Skipped int
}

// Poller runs the fetch-then-publish cycle.
//
// Failure isolation is two-level: a failed fetch skips the whole cycle,
// and a failed publish skips only that field.
type Poller struct {
	fetcher   StatusFetcher
	publisher Publisher
	interval  time.Duration
	logger    Logger
}

// NewPoller creates a poller. A non-positive interval selects DefaultPollInterval.
func NewPoller(fetcher StatusFetcher, publisher Publisher, interval time.Duration, logger Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		fetcher:   fetcher,
		publisher: publisher,
		interval:  interval,
		logger:    logger,
	}
}

// Interval returns the pause between cycles.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run polls until ctx is cancelled.
//
// Cancellation is observed at the top of each cycle and during the sleep
// between cycles. A cycle already in progress always runs to completion,
// so when Run returns no further Publish call will be made.
func (p *Poller) Run(ctx context.Context) {
	timer := time.NewTimer(p.interval)
	timer.Stop()
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return
		}

		p.PollOnce(ctx)

		timer.Reset(p.interval)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// PollOnce performs exactly one cycle: fetch, then publish each field
// independently.
//
// Cancelling ctx does not abort the fetch; the printer client's own
// timeout bounds it instead.
func (p *Poller) PollOnce(ctx context.Context) CycleResult {
	var res CycleResult

	snap, err := p.fetcher.FetchStatus(context.WithoutCancel(ctx))
	if err != nil {
		res.Err = err
		p.log().Error("printer status fetch failed, skipping cycle",
			"kind", errorKind(err),
			"error", err,
		)
		return res
	}

	for _, field := range snap.Fields() {
		if !field.Present {
			res.Skipped++
			p.log().Warn("field absent from snapshot, not published", "topic_suffix", field.Suffix)
			continue
		}

		if err := p.publisher.Publish(field.Suffix, field.Payload); err != nil {
			res.Failed++
			p.log().Error("publish failed",
				"kind", KindPublishFailed,
				"topic_suffix", field.Suffix,
				"error", err,
			)
			continue
		}
		res.Published++
	}

	p.log().Debug("poll cycle complete",
		"published", res.Published,
		"failed", res.Failed,
		"skipped", res.Skipped,
	)

	return res
}

// log returns the configured logger or a no-op one.
func (p *Poller) log() Logger {
	if p.logger == nil {
		return nopLogger{}
	}
	return p.logger
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
