package vm

import "fmt"

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Opcode is a 16 bit instruction word. The accessors return the fields
// of the nibble layout:
//
//	op x y n
//	   nnn
//	     kk
type Opcode uint16

// Op returns the highest nibble which selects the instruction group.
func (o Opcode) Op() uint8 {
	return uint8(o >> 12)
}

// X returns the first register index.
func (o Opcode) X() uint8 {
	return uint8(o>>8) & 0x0F
}

// Y returns the second register index.
func (o Opcode) Y() uint8 {
	return uint8(o>>4) & 0x0F
}

// N returns the lowest nibble.
func (o Opcode) N() uint8 {
	return uint8(o) & 0x0F
}

// KK returns the immediate byte.
func (o Opcode) KK() uint8 {
	return uint8(o)
}

// NNN returns the 12 bit address.
func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

// String returns the opcode as a hex string.
func (o Opcode) String() string {
	return fmt.Sprintf("%04X", uint16(o))
}
