// internal/player/mock.go
package player

import "sync"

// Mock is a test double for MediaElement.
type Mock struct {
	mu         sync.Mutex
	src        string
	loop       bool
	state      State
	playErr    error
	pauseErr   error
	playCalls  int
	pauseCalls int
	onEnded    func()
}

// NewMock creates a new mock element for testing.
func NewMock() *Mock {
	return &Mock{state: Stopped}
}

func (m *Mock) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.src
}

func (m *Mock) SetSource(src string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.src = src
	m.state = Stopped
}

func (m *Mock) Loop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loop
}

func (m *Mock) SetLoop(loop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loop = loop
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	if m.playErr != nil {
		return m.playErr
	}
	if m.src == "" {
		return ErrNoSource
	}
	m.state = Playing
	return nil
}

func (m *Mock) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	if m.pauseErr != nil {
		return m.pauseErr
	}
	if m.state == Playing {
		m.state = Paused
	}
	return nil
}

func (m *Mock) OnEnded(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEnded = fn
}

// Test helpers

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) SetPauseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseErr = err
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

// SimulateEnded simulates the source reaching its end. A looping mock keeps
// playing and does not notify.
func (m *Mock) SimulateEnded() {
	m.mu.Lock()
	if m.loop || m.state != Playing {
		m.mu.Unlock()
		return
	}
	m.state = Stopped
	fn := m.onEnded
	m.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// SimulateExternalPause pauses the element behind the wrapper's back, like
// a hardware media key or a device unplug would.
func (m *Mock) SimulateExternalPause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

// Verify Mock implements MediaElement and EndNotifier at compile time.
var (
	_ MediaElement = (*Mock)(nil)
	_ EndNotifier  = (*Mock)(nil)
)
