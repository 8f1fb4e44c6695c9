// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8emu/internal/memory"
)

// ErrEmptyRom is returned for ROM files without any content.
var ErrEmptyRom = errors.New("rom is empty")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file at the given path.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	rom, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading rom %s: %w", path, err)
	}
	return rom, nil
}

// LoadFromReader reads a raw CHIP-8 program. Programs that do not fit
// into the memory after the program start address are rejected without
// reading the whole input.
func (l *Loader) LoadFromReader(r io.Reader) ([]byte, error) {
	rom, err := io.ReadAll(io.LimitReader(r, memory.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}

	switch {
	case len(rom) == 0:
		return nil, ErrEmptyRom
	case len(rom) > memory.MaxProgramSize:
		return nil, fmt.Errorf("%w: maximum is %d bytes", memory.ErrRomTooLarge, memory.MaxProgramSize)
	}
	return rom, nil
}
