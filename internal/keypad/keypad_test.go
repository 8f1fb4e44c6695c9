package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad_Pressed(t *testing.T) {
	k := New()
	assert.False(t, k.Pressed(0x5))

	k.Update(0x5, true)
	assert.True(t, k.Pressed(0x5))

	k.Update(0x5, false)
	assert.False(t, k.Pressed(0x5))

	k.Update(0x10, true)
	assert.False(t, k.Pressed(0x10))
}

func TestKeypad_ReleaseWithoutWaitIsLost(t *testing.T) {
	k := New()
	k.Update(0xA, true)
	k.Update(0xA, false)

	k.Wait()
	_, ok := k.TakeReleased()
	assert.False(t, ok)
	assert.True(t, k.Waiting())
}

func TestKeypad_CaptureRelease(t *testing.T) {
	k := New()
	k.Wait()

	k.Update(0x7, true)
	_, ok := k.TakeReleased()
	assert.False(t, ok)

	k.Update(0x7, false)
	code, ok := k.TakeReleased()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x7), code)
	assert.False(t, k.Waiting())

	_, ok = k.TakeReleased()
	assert.False(t, ok)
}

func TestKeypad_LatestReleaseWins(t *testing.T) {
	k := New()
	k.Wait()
	k.Update(0x1, false)
	k.Update(0x2, false)

	code, ok := k.TakeReleased()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x2), code)
}
