// Package disasm converts CHIP-8 instruction words into assembly text
// using the retrogolib CHIP-8 opcode table.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Decode returns the opcode table entry matching the word.
func Decode(word uint16) (chip8.Opcode, bool) {
	for _, op := range chip8.Opcodes[word>>12] {
		if word&op.Info.Mask == op.Info.Value && op.Instruction != nil {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}

// Format returns the assembly text of an instruction word. Words that do
// not decode to an instruction are returned as data.
func Format(word uint16) string {
	op, ok := Decode(word)
	if !ok {
		return fmt.Sprintf("dw $%04X", word)
	}
	return FormatOpcode(op, word)
}

// FormatOpcode returns the assembly text of an instruction word that was
// already decoded to the opcode table entry op.
func FormatOpcode(op chip8.Opcode, word uint16) string {
	if params := formatParameters(op.Info, word); params != "" {
		return fmt.Sprintf("%s %s", op.Instruction.Name, params)
	}
	return op.Instruction.Name
}

// IsSkip returns whether the word is a conditional skip instruction.
func IsSkip(word uint16) bool {
	op, ok := Decode(word)
	return ok && chip8.SkipInstructions.Contains(op.Instruction.Name)
}

// Listing writes a linear disassembly of the ROM to w. Every line contains
// the address of the instruction in memory, its bytes and its text.
// Instructions following a skip are indented to make the conditional
// flow visible.
func Listing(w io.Writer, rom []byte, base uint16) error {
	var afterSkip bool
	for offset := 0; offset < len(rom); offset += opcodeSize {
		address := base + uint16(offset)

		if offset+1 >= len(rom) {
			if _, err := fmt.Fprintf(w, "%03X  %02X     db $%02X\n", address, rom[offset], rom[offset]); err != nil {
				return fmt.Errorf("writing listing: %w", err)
			}
			break
		}

		word := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		indent := ""
		if afterSkip {
			indent = "  "
		}
		if _, err := fmt.Fprintf(w, "%03X  %02X %02X  %s%s\n", address, rom[offset], rom[offset+1], indent, Format(word)); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		afterSkip = IsSkip(word)
	}
	return nil
}

// formatParameters formats the operands of an instruction word, selected
// by the opcode variant it decoded to.
func formatParameters(info chip8.OpcodeInfo, word uint16) string {
	x, y := registerX(word), registerY(word)
	address := word & 0x0FFF
	value := word & 0x00FF

	switch info {
	case chip8.Opcode1000, chip8.Opcode2000:
		return fmt.Sprintf("$%03X", address)
	case chip8.OpcodeB000:
		return fmt.Sprintf("V0, $%03X", address)
	case chip8.Opcode3000, chip8.Opcode4000, chip8.Opcode6000, chip8.Opcode7000, chip8.OpcodeC000:
		return fmt.Sprintf("V%X, $%02X", x, value)
	case chip8.Opcode5000, chip8.Opcode9000,
		chip8.Opcode8000, chip8.Opcode8001, chip8.Opcode8002, chip8.Opcode8003, chip8.Opcode8004,
		chip8.Opcode8005, chip8.Opcode8006, chip8.Opcode8007, chip8.Opcode800E:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.OpcodeA000:
		return fmt.Sprintf("I, $%03X", address)
	case chip8.OpcodeD000:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, word&0x000F)
	case chip8.OpcodeE09E, chip8.OpcodeE0A1:
		return fmt.Sprintf("V%X", x)
	case chip8.OpcodeF01E:
		return fmt.Sprintf("I, V%X", x)
	}
	return formatLoadF(info, x)
}

// formatLoadF formats the timer, key, font and register block transfers
// of the F group.
func formatLoadF(info chip8.OpcodeInfo, x uint16) string {
	switch info {
	case chip8.OpcodeF007:
		return fmt.Sprintf("V%X, DT", x)
	case chip8.OpcodeF00A:
		return fmt.Sprintf("V%X, K", x)
	case chip8.OpcodeF015:
		return fmt.Sprintf("DT, V%X", x)
	case chip8.OpcodeF018:
		return fmt.Sprintf("ST, V%X", x)
	case chip8.OpcodeF029:
		return fmt.Sprintf("F, V%X", x)
	case chip8.OpcodeF033:
		return fmt.Sprintf("B, V%X", x)
	case chip8.OpcodeF055:
		return fmt.Sprintf("[I], V%X", x)
	case chip8.OpcodeF065:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return "" // cls, ret
}

// registerX extracts the X register nibble from a CHIP-8 opcode.
func registerX(word uint16) uint16 {
	return (word & 0x0F00) >> 8
}

// registerY extracts the Y register nibble from a CHIP-8 opcode.
func registerY(word uint16) uint16 {
	return (word & 0x00F0) >> 4
}
