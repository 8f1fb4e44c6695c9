// Package memory implements the CHIP-8 address space.
//
// The memory map is 4KB in size:
//
//	0x000-0x04F: built-in hexadecimal font, 16 glyphs of 5 bytes
//	0x050-0x1FF: unused interpreter area
//	0x200-0xFFF: program space
package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the size of the address space in bytes.
	Size = 4096

	// ProgramStart is the address that programs are loaded to and start executing at.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = Size - ProgramStart

	// FontStart is the address of the first glyph of the font table.
	FontStart = 0x000

	// GlyphSize is the number of bytes of a single font glyph.
	GlyphSize = 5

	addressMask = Size - 1
)

// ErrRomTooLarge is returned when a program does not fit into the program space.
var ErrRomTooLarge = errors.New("rom too large")

// font contains the 8x5 sprites for the hexadecimal digits 0-F.
var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the byte addressable memory of the machine.
// All accesses wrap around at the end of the address space.
type Memory struct {
	data [Size]byte
}

// New returns a zeroed memory with the font table installed.
func New() *Memory {
	m := &Memory{}
	copy(m.data[FontStart:], font[:])
	return m
}

// Load resets the memory and copies the program into the program space.
func (m *Memory) Load(rom []byte) error {
	if len(rom) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrRomTooLarge, len(rom), MaxProgramSize)
	}

	m.data = [Size]byte{}
	copy(m.data[FontStart:], font[:])
	copy(m.data[ProgramStart:], rom)
	return nil
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) byte {
	return m.data[address&addressMask]
}

// Write sets the byte at the given address.
func (m *Memory) Write(address uint16, value byte) {
	m.data[address&addressMask] = value
}

// ReadWord returns the big-endian 16 bit word at the given address.
func (m *Memory) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address))<<8 | uint16(m.Read(address+1))
}

// Slice returns a copy of n bytes starting at the given address.
func (m *Memory) Slice(address uint16, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = m.Read(address + uint16(i))
	}
	return b
}
