package mqtt

import (
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

// fakeToken is a completed paho token.
type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// published records one Publish call on the fake client.
type published struct {
	topic    string
	qos      byte
	retained bool
	payload  string
}

// fakePaho implements pahomqtt.Client in memory.
type fakePaho struct {
	mu          sync.Mutex
	opts        *pahomqtt.ClientOptions
	connectErr  error
	publishErr  error
	connected   bool
	connects    int
	disconnects int
	messages    []published
}

func (f *fakePaho) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakePaho) IsConnectionOpen() bool { return f.IsConnected() }

func (f *fakePaho) Connect() pahomqtt.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	if f.connectErr == nil {
		f.connected = true
	}
	return &fakeToken{err: f.connectErr}
}

func (f *fakePaho) Disconnect(uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
	f.connected = false
}

func (f *fakePaho) Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token {
	f.mu.Lock()
	defer f.mu.Unlock()

	var body string
	switch p := payload.(type) {
	case []byte:
		body = string(p)
	case string:
		body = p
	}
	f.messages = append(f.messages, published{topic: topic, qos: qos, retained: retained, payload: body})
	return &fakeToken{err: f.publishErr}
}

func (f *fakePaho) Subscribe(string, byte, pahomqtt.MessageHandler) pahomqtt.Token {
	return &fakeToken{}
}

func (f *fakePaho) SubscribeMultiple(map[string]byte, pahomqtt.MessageHandler) pahomqtt.Token {
	return &fakeToken{}
}

func (f *fakePaho) Unsubscribe(...string) pahomqtt.Token { return &fakeToken{} }

func (f *fakePaho) AddRoute(string, pahomqtt.MessageHandler) {}

func (f *fakePaho) OptionsReader() pahomqtt.ClientOptionsReader {
	return pahomqtt.ClientOptionsReader{}
}

// dropConnection simulates the broker going away after a successful connect.
func (f *fakePaho) dropConnection() {
	f.mu.Lock()
	f.connected = false
	f.mu.Unlock()
}

func (f *fakePaho) sent() []published {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]published, len(f.messages))
	copy(out, f.messages)
	return out
}
