package platform

import (
	"github.com/adrichey/chip8-interpreter/emulator"
)

// mockFrontend records all calls and requests to quit on poll number quitAt.
type mockFrontend struct {
	quitAt  int
	keys    emulator.Keypad
	drawErr error

	polls int
	draws int
	tones []bool
}

func (m *mockFrontend) Draw(*emulator.Framebuffer) error {
	m.draws++
	return m.drawErr
}

func (m *mockFrontend) SetTone(on bool) {
	m.tones = append(m.tones, on)
}

func (m *mockFrontend) Poll() (emulator.Keypad, bool) {
	m.polls++
	return m.keys, m.polls == m.quitAt
}

func (m *mockFrontend) Close() error {
	return nil
}

// mockEngine returns prepared outputs, one per cycle, repeating the last one.
type mockEngine struct {
	outputs []emulator.Output
	err     error
	errAt   int

	keys   []emulator.Keypad
	cycles int
}

func (m *mockEngine) Advance(keys emulator.Keypad) (emulator.Output, error) {
	m.keys = append(m.keys, keys)
	m.cycles++
	if m.err != nil && m.cycles == m.errAt {
		return emulator.Output{}, m.err
	}

	if len(m.outputs) == 0 {
		return emulator.Output{}, nil
	}
	i := min(m.cycles, len(m.outputs)) - 1
	return m.outputs[i], nil
}

// mockDevice records the state of a queued audio device.
type mockDevice struct {
	queuedBytes uint32
	queueCalls  int
	paused      bool
	pauseCalls  int
	clearCalls  int
	queueErr    error
}

func (m *mockDevice) Queue(samples []byte) error {
	m.queueCalls++
	if m.queueErr != nil {
		return m.queueErr
	}
	m.queuedBytes += uint32(len(samples))
	return nil
}

func (m *mockDevice) Queued() uint32 {
	return m.queuedBytes
}

func (m *mockDevice) Pause(paused bool) {
	m.pauseCalls++
	m.paused = paused
}

func (m *mockDevice) Clear() {
	m.clearCalls++
	m.queuedBytes = 0
}
