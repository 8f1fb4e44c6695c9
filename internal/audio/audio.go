// Package audio plays the CHIP-8 beep as a continuous square wave.
package audio

import (
	"github.com/retroenv/retrogolib/log"
)

// Tone settings of the beeper.
const (
	SampleRate    = 44100
	ToneFrequency = 440
	Volume        = 32 // amplitude around the unsigned 8 bit silence level

	silence = 128

	// bufferedSamples is the amount of audio kept queued while the tone is
	// playing. It covers a few 60 Hz frames so that a slow host loop does
	// not produce gaps.
	bufferedSamples = SampleRate / 15
)

// device is the audio output the beeper queues samples to.
type device interface {
	Queue(samples []byte) error
	Queued() int
	Pause(paused bool)
	Clear()
	Close()
}

// Beeper turns a beep flag into a tone.
type Beeper struct {
	logger *log.Logger
	dev    device

	playing bool
	phase   int // position within the current wave period, in samples
	buf     []byte
}

// Nop returns a beeper that stays silent.
func Nop() *Beeper {
	return &Beeper{}
}

func newBeeper(logger *log.Logger, dev device) *Beeper {
	return &Beeper{
		logger: logger,
		dev:    dev,
		buf:    make([]byte, 0, bufferedSamples),
	}
}

// SetTone starts or stops the tone. It is called once per host loop
// iteration and keeps the device queue filled while the tone plays.
func (b *Beeper) SetTone(on bool) {
	if b.dev == nil {
		return
	}

	if !on {
		if b.playing {
			b.dev.Pause(true)
			b.dev.Clear()
			b.playing = false
		}
		return
	}

	missing := bufferedSamples - b.dev.Queued()
	if missing > 0 {
		if err := b.dev.Queue(b.samples(missing)); err != nil {
			b.logger.Error("Queueing audio failed", log.Err(err))
			return
		}
	}
	if !b.playing {
		b.dev.Pause(false)
		b.playing = true
	}
}

// Playing returns whether the tone is currently audible.
func (b *Beeper) Playing() bool {
	return b.playing
}

// Close releases the audio device.
func (b *Beeper) Close() error {
	if b.dev != nil {
		b.dev.Close()
		b.dev = nil
	}
	return nil
}

// samples renders n samples of the square wave, continuing the wave at
// the phase where the previous call stopped.
func (b *Beeper) samples(n int) []byte {
	period := SampleRate / ToneFrequency
	b.buf = b.buf[:0]
	for range n {
		if b.phase < period/2 {
			b.buf = append(b.buf, silence+Volume)
		} else {
			b.buf = append(b.buf, silence-Volume)
		}
		b.phase = (b.phase + 1) % period
	}
	return b.buf
}
