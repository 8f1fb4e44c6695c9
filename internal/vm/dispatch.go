package vm

import (
	"github.com/retroenv/chip8emu/internal/disasm"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// handlers binds every opcode variant of the CHIP-8 opcode table to the
// handler executing it.
var handlers = map[chip8.OpcodeInfo]handler{
	chip8.Opcode00E0: cls,
	chip8.Opcode00EE: ret,
	chip8.Opcode1000: jp,
	chip8.Opcode2000: call,
	chip8.Opcode3000: seByte,
	chip8.Opcode4000: sneByte,
	chip8.Opcode5000: seReg,
	chip8.Opcode6000: ldByte,
	chip8.Opcode7000: addByte,
	chip8.Opcode8000: ldReg,
	chip8.Opcode8001: or,
	chip8.Opcode8002: and,
	chip8.Opcode8003: xor,
	chip8.Opcode8004: addReg,
	chip8.Opcode8005: sub,
	chip8.Opcode8006: shr,
	chip8.Opcode8007: subn,
	chip8.Opcode800E: shl,
	chip8.Opcode9000: sneReg,
	chip8.OpcodeA000: ldI,
	chip8.OpcodeB000: jpV0,
	chip8.OpcodeC000: rnd,
	chip8.OpcodeD000: drw,
	chip8.OpcodeE09E: skp,
	chip8.OpcodeE0A1: sknp,
	chip8.OpcodeF007: ldVxDT,
	chip8.OpcodeF00A: ldVxK,
	chip8.OpcodeF015: ldDTVx,
	chip8.OpcodeF018: ldSTVx,
	chip8.OpcodeF01E: addI,
	chip8.OpcodeF029: ldF,
	chip8.OpcodeF033: ldB,
	chip8.OpcodeF055: ldIVx,
	chip8.OpcodeF065: ldVxI,
}

// instruction is an opcode resolved to its table entry and handler.
type instruction struct {
	chip8.Opcode
	handler handler
}

// name returns the mnemonic of the instruction.
func (ins instruction) name() string {
	return ins.Instruction.Name
}

// decode resolves the opcode through the CHIP-8 opcode table. The result
// is used for both execution and tracing so every word is decoded once.
func decode(op Opcode) (instruction, bool) {
	entry, ok := disasm.Decode(uint16(op))
	if !ok {
		return instruction{}, false
	}
	h, ok := handlers[entry.Info]
	if !ok {
		return instruction{}, false
	}
	return instruction{Opcode: entry, handler: h}, true
}
