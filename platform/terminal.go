package platform

import (
	"fmt"
	"os"
	"time"

	"github.com/adrichey/chip8-interpreter/emulator"
	"github.com/nsf/termbox-go"
)

// keyHoldTime is how long a key counts as pressed after the terminal reported it.
// Terminals only report key presses, the hold time bridges the gap until the key repeat starts.
const keyHoldTime = 250 * time.Millisecond

// Terminal is a text mode frontend. Two framebuffer rows share one character cell
// using the upper half block, so the terminal needs 64 columns and 16 rows.
type Terminal struct {
	events   chan termbox.Event
	pumpDone chan struct{}
	latch    keyLatch
	sound    bool
}

// NewTerminal takes over the terminal until Close is called.
func NewTerminal() (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	t := &Terminal{
		events:   make(chan termbox.Event, 64),
		pumpDone: make(chan struct{}),
		latch:    keyLatch{hold: keyHoldTime},
	}
	go t.pump()
	return t, nil
}

// pump forwards terminal events until the event polling is interrupted.
// Events are dropped while the queue is full so that an interrupt is always received.
func (t *Terminal) pump() {
	defer close(t.pumpDone)

	for {
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventInterrupt {
			return
		}

		select {
		case t.events <- ev:
		default:
		}
	}
}

// Draw renders the framebuffer into the top left corner of the terminal.
func (t *Terminal) Draw(fb *emulator.Framebuffer) error {
	for y := 0; y < emulator.Height; y += 2 {
		for x := range emulator.Width {
			termbox.SetCell(x, y/2, '▀', pixelColor(fb.Pixel(x, y)), pixelColor(fb.Pixel(x, y+1)))
		}
	}
	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

func pixelColor(lit bool) termbox.Attribute {
	if lit {
		return termbox.ColorWhite
	}
	return termbox.ColorBlack
}

// SetTone rings the terminal bell when the tone starts.
func (t *Terminal) SetTone(on bool) {
	if on && !t.sound {
		_, _ = fmt.Fprint(os.Stdout, "\a")
	}
	t.sound = on
}

// Poll processes all pending terminal events. Escape and Ctrl+C request to quit.
func (t *Terminal) Poll() (emulator.Keypad, bool) {
	now := time.Now()

	for {
		select {
		case ev := <-t.events:
			if ev.Type != termbox.EventKey {
				continue
			}
			if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
				return t.latch.snapshot(now), true
			}
			if key, ok := KeyIndex(ev.Ch); ok {
				t.latch.press(key, now)
			}

		default:
			return t.latch.snapshot(now), false
		}
	}
}

// Close stops the event pump and restores the terminal.
func (t *Terminal) Close() error {
	termbox.Interrupt()
	<-t.pumpDone
	termbox.Close()
	return nil
}

// keyLatch keeps keys pressed for a fixed time after each press.
type keyLatch struct {
	hold     time.Duration
	deadline [16]time.Time
}

func (l *keyLatch) press(key byte, now time.Time) {
	l.deadline[key&0xF] = now.Add(l.hold)
}

func (l *keyLatch) snapshot(now time.Time) emulator.Keypad {
	var keys emulator.Keypad
	for i, deadline := range l.deadline {
		keys[i] = now.Before(deadline)
	}
	return keys
}
