// Package window implements an SDL window frontend for the interpreter.
package window

import (
	"fmt"

	"github.com/adrichey/chip8-interpreter/emulator"
	"github.com/adrichey/chip8-interpreter/platform"
	"github.com/faiface/mainthread"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

// SDL is a window based frontend. All SDL calls are executed on the main thread,
// the process has to be started with mainthread.Run.
type SDL struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	tone     *platform.Tone
	scale    int32
	keys     emulator.Keypad
	rects    []sdl.Rect
	release  releaser
}

// New opens a window showing the framebuffer upscaled by the given factor.
// Missing audio support is logged and leaves the frontend silent.
func New(title string, scale int, logger *log.Logger) (*SDL, error) {
	s := &SDL{
		scale: int32(scale),
		rects: make([]sdl.Rect, 0, emulator.Width*emulator.Height),
	}

	err := mainthread.CallErr(func() error {
		if err := s.open(title, logger); err != nil {
			_ = s.release.run()
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// open acquires all SDL resources, each one is registered for release as soon as it exists.
func (s *SDL) open(title string, logger *log.Logger) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}
	s.release.add(func() error {
		sdl.Quit()
		return nil
	})

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		emulator.Width*s.scale, emulator.Height*s.scale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	s.window = window
	s.release.add(func() error {
		if err := window.Destroy(); err != nil {
			return fmt.Errorf("destroying window: %w", err)
		}
		return nil
	})

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	s.renderer = renderer
	s.release.add(func() error {
		if err := renderer.Destroy(); err != nil {
			return fmt.Errorf("destroying renderer: %w", err)
		}
		return nil
	})

	s.tone = platform.NewTone(s.openAudio(logger), logger)
	return s.present()
}

func (s *SDL) openAudio(logger *log.Logger) platform.AudioDevice {
	spec := sdl.AudioSpec{
		Freq:     platform.SampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	id, err := sdl.OpenAudioDevice("", false, &spec, nil, 0)
	if err != nil {
		if logger != nil {
			logger.Warn("Audio device not available, sound is disabled", log.Err(err))
		}
		return nil
	}
	s.release.add(func() error {
		sdl.CloseAudioDevice(id)
		return nil
	})
	return audioDevice(id)
}

// Draw renders lit pixels white on a black background.
func (s *SDL) Draw(fb *emulator.Framebuffer) error {
	s.rects = s.rects[:0]
	for y := range emulator.Height {
		for x := range emulator.Width {
			if !fb.Pixel(x, y) {
				continue
			}
			s.rects = append(s.rects, sdl.Rect{
				X: int32(x) * s.scale,
				Y: int32(y) * s.scale,
				W: s.scale,
				H: s.scale,
			})
		}
	}

	return mainthread.CallErr(s.present)
}

// present paints the collected pixel rectangles on a black background.
// It has to be called on the main thread.
func (s *SDL) present() error {
	if err := s.renderer.SetDrawColor(0, 0, 0, 0xFF); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}
	if err := s.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing window: %w", err)
	}

	if len(s.rects) > 0 {
		if err := s.renderer.SetDrawColor(0xFF, 0xFF, 0xFF, 0xFF); err != nil {
			return fmt.Errorf("setting draw color: %w", err)
		}
		if err := s.renderer.FillRects(s.rects); err != nil {
			return fmt.Errorf("drawing pixels: %w", err)
		}
	}

	s.renderer.Present()
	return nil
}

// SetTone starts or stops the square wave tone.
func (s *SDL) SetTone(on bool) {
	mainthread.Call(func() {
		s.tone.SetTone(on)
	})
}

// Poll processes all pending window events. Keys stay pressed until they are released,
// closing the window or pressing Escape requests to quit.
func (s *SDL) Poll() (emulator.Keypad, bool) {
	quit := false

	mainthread.Call(func() {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch t := event.(type) {
			case *sdl.QuitEvent:
				quit = true
			case *sdl.KeyboardEvent:
				pressed := t.Type == sdl.KEYDOWN

				if t.Keysym.Sym == sdl.K_ESCAPE {
					if pressed {
						quit = true
					}
					continue
				}
				if key, ok := platform.KeyIndex(rune(t.Keysym.Sym)); ok {
					s.keys[key] = pressed
				}
			}
		}
	})

	return s.keys, quit
}

// Close releases the audio device, the renderer, the window and SDL itself.
func (s *SDL) Close() error {
	return mainthread.CallErr(s.release.run)
}

// audioDevice is an opened SDL audio device using the queue interface.
type audioDevice sdl.AudioDeviceID

func (a audioDevice) Queue(samples []byte) error {
	return sdl.QueueAudio(sdl.AudioDeviceID(a), samples)
}

func (a audioDevice) Queued() uint32 {
	return sdl.GetQueuedAudioSize(sdl.AudioDeviceID(a))
}

func (a audioDevice) Pause(paused bool) {
	sdl.PauseAudioDevice(sdl.AudioDeviceID(a), paused)
}

func (a audioDevice) Clear() {
	sdl.ClearQueuedAudio(sdl.AudioDeviceID(a))
}
