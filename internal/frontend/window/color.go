package window

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/retroenv/chip8emu/internal/display"
)

// ParseColor converts a RRGGBB hex string into normalized RGB components.
func ParseColor(s string) ([3]float32, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 3 {
		return [3]float32{}, fmt.Errorf("invalid color '%s', expected RRGGBB hex value", s)
	}
	return [3]float32{
		float32(b[0]) / 255,
		float32(b[1]) / 255,
		float32(b[2]) / 255,
	}, nil
}

// fillPixels converts the framebuffer into single channel texture data
// with lit pixels set to full intensity.
func fillPixels(d *display.Display, pixels []byte) {
	for y := range display.Height {
		for x := range display.Width {
			pixels[y*display.Width+x] = d.Pixel(x, y) * 0xFF
		}
	}
}
