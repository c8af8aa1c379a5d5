package platform

import (
	"github.com/retroenv/retrogolib/log"
)

// SampleRate is the number of samples per second an AudioDevice plays.
const SampleRate = 44100

const (
	toneFrequency   = 441
	toneAmplitude   = 32  // distance of both wave levels from silence
	silenceLevel    = 128 // unsigned 8 bit samples
	periodsInBuffer = 8
)

// AudioDevice is a host device that plays queued unsigned 8 bit mono samples at SampleRate.
type AudioDevice interface {
	Queue(samples []byte) error
	Queued() uint32
	Pause(paused bool)
	Clear()
}

// Tone plays a square wave on a queued audio device.
type Tone struct {
	device  AudioDevice
	logger  *log.Logger
	wave    []byte
	playing bool
}

// NewTone returns a tone playing on the given device. A nil device gives a silent tone.
func NewTone(device AudioDevice, logger *log.Logger) *Tone {
	return &Tone{
		device: device,
		logger: logger,
		wave:   squareWave(SampleRate/toneFrequency, periodsInBuffer),
	}
}

// SetTone starts or stops the tone. While the tone is on every call tops up the device queue
// so that playback does not run dry between cycles.
func (t *Tone) SetTone(on bool) {
	if t.device == nil {
		return
	}

	if on {
		t.fill()
	}
	if on == t.playing {
		return
	}

	t.playing = on
	if !on {
		t.device.Clear()
	}
	t.device.Pause(!on)
}

func (t *Tone) fill() {
	if t.device.Queued() >= uint32(len(t.wave)) {
		return
	}
	if err := t.device.Queue(t.wave); err != nil && t.logger != nil {
		t.logger.Error("Queueing audio samples failed", log.Err(err))
	}
}

// squareWave returns the given number of periods of a square wave, each period spanning
// the given number of samples.
func squareWave(period, periods int) []byte {
	wave := make([]byte, period*periods)
	for i := range wave {
		if i%period < period/2 {
			wave[i] = silenceLevel + toneAmplitude
		} else {
			wave[i] = silenceLevel - toneAmplitude
		}
	}
	return wave
}
