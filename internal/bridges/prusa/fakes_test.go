package prusa

import (
	"context"
	"fmt"
	"sync"
)

// fetchStep is one scripted FetchStatus outcome.
type fetchStep struct {
	snap Snapshot
	err  error
}

// scriptedFetcher returns steps in order, repeating the last one.
// onCall, if set, runs after each call with the 1-based call number.
type scriptedFetcher struct {
	mu     sync.Mutex
	steps  []fetchStep
	calls  int
	onCall func(n int)
}

func (f *scriptedFetcher) FetchStatus(_ context.Context) (Snapshot, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	step := f.steps[len(f.steps)-1]
	if n <= len(f.steps) {
		step = f.steps[n-1]
	}
	hook := f.onCall
	f.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	return step.snap, step.err
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// event records publisher activity in order.
type event struct {
	kind    string // "connect", "publish", "close"
	suffix  string
	payload string
}

// fakeConnection implements Connection and records every call.
type fakeConnection struct {
	mu         sync.Mutex
	events     []event
	connectErr error
	failSuffix map[string]bool
}

func (c *fakeConnection) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event{kind: "connect"})
	return c.connectErr
}

func (c *fakeConnection) Publish(suffix string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event{kind: "publish", suffix: suffix, payload: string(payload)})
	if c.failSuffix[suffix] {
		return fmt.Errorf("publish %s: broker said no", suffix)
	}
	return nil
}

func (c *fakeConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event{kind: "close"})
	return nil
}

func (c *fakeConnection) recorded() []event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]event, len(c.events))
	copy(out, c.events)
	return out
}

func (c *fakeConnection) publishes() []event {
	var out []event
	for _, e := range c.recorded() {
		if e.kind == "publish" {
			out = append(out, e)
		}
	}
	return out
}

func (c *fakeConnection) count(kind string) int {
	n := 0
	for _, e := range c.recorded() {
		if e.kind == kind {
			n++
		}
	}
	return n
}

// logEntry is one captured log call.
type logEntry struct {
	level string
	msg   string
	attrs map[string]any
}

// recordingLogger implements Logger and keeps every entry.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string, kv []any) {
	attrs := make(map[string]any)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			attrs[k] = kv[i+1]
		}
	}
	l.mu.Lock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, attrs: attrs})
	l.mu.Unlock()
}

func (l *recordingLogger) Debug(msg string, kv ...any) { l.add("debug", msg, kv) }
func (l *recordingLogger) Info(msg string, kv ...any)  { l.add("info", msg, kv) }
func (l *recordingLogger) Warn(msg string, kv ...any)  { l.add("warn", msg, kv) }
func (l *recordingLogger) Error(msg string, kv ...any) { l.add("error", msg, kv) }

// errorKinds returns the "kind" attribute of every error entry.
func (l *recordingLogger) errorKinds() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var kinds []string
	for _, e := range l.entries {
		if e.level == "error" {
			if k, ok := e.attrs["kind"].(string); ok {
				kinds = append(kinds, k)
			}
		}
	}
	return kinds
}

func ptr[T any](v T) *T {
	return &v
}

// idleSnapshot is a complete snapshot with no job running.
func idleSnapshot() Snapshot {
	return Snapshot{
		BedTemperature:    ptr(21.5),
		NozzleTemperature: ptr(23.0),
		State:             ptr("IDLE"),
	}
}

// printingSnapshot is a complete snapshot mid-print.
func printingSnapshot() Snapshot {
	return Snapshot{
		BedTemperature:    ptr(60.0),
		NozzleTemperature: ptr(215.3),
		State:             ptr("PRINTING"),
		Progress:          37,
	}
}
