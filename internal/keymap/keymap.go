// Package keymap maps host keyboard keys to the logical keys of the
// CHIP-8 keypad.
//
// The left side of a QWERTY keyboard mirrors the 4x4 layout of the
// original keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
package keymap

import "unicode"

var keys = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'Q': 0x4, 'W': 0x5, 'E': 0x6, 'R': 0xD,
	'A': 0x7, 'S': 0x8, 'D': 0x9, 'F': 0xE,
	'Z': 0xA, 'X': 0x0, 'C': 0xB, 'V': 0xF,
}

// Lookup returns the keypad code for a host key. Letters match
// regardless of case.
func Lookup(r rune) (uint8, bool) {
	code, ok := keys[unicode.ToUpper(r)]
	return code, ok
}
