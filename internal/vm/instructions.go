package vm

import (
	"fmt"

	"github.com/retroenv/chip8emu/internal/memory"
)

// handler executes an instruction and returns how the program counter
// advances afterwards. Handlers never modify the program counter directly.
type handler func(s *State, op Opcode) (transition, error)

// 00E0 - CLS
func cls(s *State, _ Opcode) (transition, error) {
	s.Display.Clear()
	s.DrawFlag = true
	return next, nil
}

// 00EE - RET
func ret(s *State, _ Opcode) (transition, error) {
	if s.SP == 0 {
		return next, ErrStackUnderflow
	}
	s.SP--
	return jump(s.Stack[s.SP]), nil
}

// 1nnn - JP addr
func jp(_ *State, op Opcode) (transition, error) {
	return jump(op.NNN()), nil
}

// 2nnn - CALL addr
func call(s *State, op Opcode) (transition, error) {
	if int(s.SP) >= StackDepth {
		return next, fmt.Errorf("%w: depth %d", ErrStackOverflow, s.SP)
	}
	s.Stack[s.SP] = s.PC + opcodeSize
	s.SP++
	return jump(op.NNN()), nil
}

// 3xkk - SE Vx, byte
func seByte(s *State, op Opcode) (transition, error) {
	return skipIf(s.V[op.X()] == op.KK()), nil
}

// 4xkk - SNE Vx, byte
func sneByte(s *State, op Opcode) (transition, error) {
	return skipIf(s.V[op.X()] != op.KK()), nil
}

// 5xy0 - SE Vx, Vy
func seReg(s *State, op Opcode) (transition, error) {
	return skipIf(s.V[op.X()] == s.V[op.Y()]), nil
}

// 6xkk - LD Vx, byte
func ldByte(s *State, op Opcode) (transition, error) {
	s.V[op.X()] = op.KK()
	return next, nil
}

// 7xkk - ADD Vx, byte, wraps without touching VF.
func addByte(s *State, op Opcode) (transition, error) {
	s.V[op.X()] += op.KK()
	return next, nil
}

// 8xy0 - LD Vx, Vy
func ldReg(s *State, op Opcode) (transition, error) {
	s.V[op.X()] = s.V[op.Y()]
	return next, nil
}

// 8xy1 - OR Vx, Vy
func or(s *State, op Opcode) (transition, error) {
	s.V[op.X()] |= s.V[op.Y()]
	s.V[flagRegister] = 0
	return next, nil
}

// 8xy2 - AND Vx, Vy
func and(s *State, op Opcode) (transition, error) {
	s.V[op.X()] &= s.V[op.Y()]
	s.V[flagRegister] = 0
	return next, nil
}

// 8xy3 - XOR Vx, Vy
func xor(s *State, op Opcode) (transition, error) {
	s.V[op.X()] ^= s.V[op.Y()]
	s.V[flagRegister] = 0
	return next, nil
}

// 8xy4 - ADD Vx, Vy
func addReg(s *State, op Opcode) (transition, error) {
	sum := uint16(s.V[op.X()]) + uint16(s.V[op.Y()])
	s.V[op.X()] = uint8(sum)
	s.V[flagRegister] = flag(sum > 0xFF)
	return next, nil
}

// 8xy5 - SUB Vx, Vy
func sub(s *State, op Opcode) (transition, error) {
	vx, vy := s.V[op.X()], s.V[op.Y()]
	s.V[op.X()] = vx - vy
	s.V[flagRegister] = flag(vx >= vy)
	return next, nil
}

// 8xy6 - SHR Vx, Vy, shifts Vy into Vx.
func shr(s *State, op Opcode) (transition, error) {
	vy := s.V[op.Y()]
	s.V[op.X()] = vy >> 1
	s.V[flagRegister] = vy & 1
	return next, nil
}

// 8xy7 - SUBN Vx, Vy
func subn(s *State, op Opcode) (transition, error) {
	vx, vy := s.V[op.X()], s.V[op.Y()]
	s.V[op.X()] = vy - vx
	s.V[flagRegister] = flag(vy >= vx)
	return next, nil
}

// 8xyE - SHL Vx, Vy, shifts Vy into Vx.
func shl(s *State, op Opcode) (transition, error) {
	vy := s.V[op.Y()]
	s.V[op.X()] = vy << 1
	s.V[flagRegister] = (vy >> 7) & 1
	return next, nil
}

// 9xy0 - SNE Vx, Vy
func sneReg(s *State, op Opcode) (transition, error) {
	return skipIf(s.V[op.X()] != s.V[op.Y()]), nil
}

// Annn - LD I, addr
func ldI(s *State, op Opcode) (transition, error) {
	s.I = op.NNN()
	return next, nil
}

// Bnnn - JP V0, addr
func jpV0(s *State, op Opcode) (transition, error) {
	return jump(op.NNN() + uint16(s.V[0])), nil
}

// Cxkk - RND Vx, byte
func rnd(s *State, op Opcode) (transition, error) {
	s.V[op.X()] = s.random() & op.KK()
	return next, nil
}

// Dxyn - DRW Vx, Vy, nibble
func drw(s *State, op Opcode) (transition, error) {
	x, y := s.V[op.X()], s.V[op.Y()]
	sprite := s.Memory.Slice(s.I, int(op.N()))
	s.V[flagRegister] = s.Display.DrawSprite(x, y, sprite)
	s.DrawFlag = true
	return next, nil
}

// Ex9E - SKP Vx
func skp(s *State, op Opcode) (transition, error) {
	return skipIf(s.Keypad.Pressed(s.V[op.X()])), nil
}

// ExA1 - SKNP Vx
func sknp(s *State, op Opcode) (transition, error) {
	return skipIf(!s.Keypad.Pressed(s.V[op.X()])), nil
}

// Fx07 - LD Vx, DT
func ldVxDT(s *State, op Opcode) (transition, error) {
	s.V[op.X()] = s.Delay
	return next, nil
}

// Fx0A - LD Vx, K
//
// Until a key is released the instruction jumps to itself, so the same
// instruction runs again on the next tick without blocking the host.
func ldVxK(s *State, op Opcode) (transition, error) {
	s.Keypad.Wait()
	code, ok := s.Keypad.TakeReleased()
	if !ok {
		return jump(s.PC), nil
	}
	s.V[op.X()] = code
	return next, nil
}

// Fx15 - LD DT, Vx
func ldDTVx(s *State, op Opcode) (transition, error) {
	s.Delay = s.V[op.X()]
	return next, nil
}

// Fx18 - LD ST, Vx
func ldSTVx(s *State, op Opcode) (transition, error) {
	s.Sound = s.V[op.X()]
	return next, nil
}

// Fx1E - ADD I, Vx
func addI(s *State, op Opcode) (transition, error) {
	s.I += uint16(s.V[op.X()])
	return next, nil
}

// Fx29 - LD F, Vx
func ldF(s *State, op Opcode) (transition, error) {
	s.I = memory.FontStart + uint16(s.V[op.X()])*memory.GlyphSize
	return next, nil
}

// Fx33 - LD B, Vx
func ldB(s *State, op Opcode) (transition, error) {
	v := s.V[op.X()]
	s.Memory.Write(s.I, v/100)
	s.Memory.Write(s.I+1, (v/10)%10)
	s.Memory.Write(s.I+2, v%10)
	return next, nil
}

// Fx55 - LD [I], Vx, leaves I pointing past the stored registers.
func ldIVx(s *State, op Opcode) (transition, error) {
	x := uint16(op.X())
	for i := uint16(0); i <= x; i++ {
		s.Memory.Write(s.I+i, s.V[i])
	}
	s.I += x + 1
	return next, nil
}

// Fx65 - LD Vx, [I], leaves I pointing past the loaded bytes.
func ldVxI(s *State, op Opcode) (transition, error) {
	x := uint16(op.X())
	for i := uint16(0); i <= x; i++ {
		s.V[i] = s.Memory.Read(s.I + i)
	}
	s.I += x + 1
	return next, nil
}
