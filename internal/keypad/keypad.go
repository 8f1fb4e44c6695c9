// Package keypad implements the 16 key hexadecimal keypad and the state
// needed by the blocking key read instruction.
package keypad

// Keys is the number of keys on the keypad.
const Keys = 16

// Keypad stores the pressed state of all keys.
//
// While a key read is pending, the first key release is captured. Releases
// that happen while nothing waits are not buffered.
type Keypad struct {
	pressed [Keys]bool

	waiting     bool
	released    uint8
	hasReleased bool
}

// New returns a keypad with all keys released.
func New() *Keypad {
	return &Keypad{}
}

// Update sets the state of a key. Codes outside of the keypad are ignored.
func (k *Keypad) Update(code uint8, pressed bool) {
	if code >= Keys {
		return
	}
	k.pressed[code] = pressed

	if !pressed && k.waiting {
		k.released = code
		k.hasReleased = true
	}
}

// Pressed returns whether the key is currently held down.
func (k *Keypad) Pressed(code uint8) bool {
	if code >= Keys {
		return false
	}
	return k.pressed[code]
}

// Wait marks a key read as pending.
func (k *Keypad) Wait() {
	k.waiting = true
}

// Waiting returns whether a key read is pending.
func (k *Keypad) Waiting() bool {
	return k.waiting
}

// TakeReleased returns the key captured while waiting. Taking a key ends
// the pending read.
func (k *Keypad) TakeReleased() (uint8, bool) {
	if !k.hasReleased {
		return 0, false
	}

	code := k.released
	k.waiting = false
	k.released = 0
	k.hasReleased = false
	return code, true
}
