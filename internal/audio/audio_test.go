package audio

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestBeeper_SetTone(t *testing.T) {
	dev := newMockDevice()
	b := newBeeper(log.NewTestLogger(t), dev)

	b.SetTone(false)
	assert.False(t, b.Playing())
	assert.Equal(t, 0, dev.cleared)

	b.SetTone(true)
	assert.True(t, b.Playing())
	assert.False(t, dev.paused)
	assert.Equal(t, bufferedSamples, dev.Queued())

	// the queue is only topped up to the buffer size
	dev.drain(100)
	b.SetTone(true)
	assert.Equal(t, bufferedSamples, dev.Queued())

	b.SetTone(false)
	assert.False(t, b.Playing())
	assert.True(t, dev.paused)
	assert.Equal(t, 0, dev.Queued())
	assert.Equal(t, 1, dev.cleared)
}

func TestBeeper_QueueError(t *testing.T) {
	dev := newMockDevice()
	dev.queueErr = true
	b := newBeeper(log.NewTestLogger(t), dev)

	b.SetTone(true)
	assert.False(t, b.Playing())
	assert.True(t, dev.paused)
}

func TestBeeper_SquareWave(t *testing.T) {
	b := newBeeper(log.NewTestLogger(t), newMockDevice())
	period := SampleRate / ToneFrequency

	samples := b.samples(period)
	assert.Len(t, samples, period)
	assert.Equal(t, byte(silence+Volume), samples[0])
	assert.Equal(t, byte(silence+Volume), samples[period/2-1])
	assert.Equal(t, byte(silence-Volume), samples[period/2])
	assert.Equal(t, byte(silence-Volume), samples[period-1])

	// the wave continues where it stopped
	next := b.samples(1)
	assert.Equal(t, byte(silence+Volume), next[0])
}

func TestBeeper_Close(t *testing.T) {
	dev := newMockDevice()
	b := newBeeper(log.NewTestLogger(t), dev)

	assert.NoError(t, b.Close())
	assert.True(t, dev.closed)

	// closed beepers ignore the flag
	b.SetTone(true)
	assert.False(t, b.Playing())
}

func TestNop(t *testing.T) {
	b := Nop()
	b.SetTone(true)
	assert.False(t, b.Playing())
	assert.NoError(t, b.Close())
}
