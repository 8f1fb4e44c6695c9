// Package display implements the monochrome CHIP-8 framebuffer.
package display

const (
	// Width is the number of pixel columns.
	Width = 64
	// Height is the number of pixel rows.
	Height = 32

	spriteWidth = 8
)

// Display is a 64x32 grid of pixels that are either 0 or 1.
type Display struct {
	pixels [Height][Width]uint8
}

// New returns a cleared display.
func New() *Display {
	return &Display{}
}

// Clear turns off all pixels.
func (d *Display) Clear() {
	d.pixels = [Height][Width]uint8{}
}

// Pixel returns the pixel value at the given position, positions outside
// of the display are always off.
func (d *Display) Pixel(x, y int) uint8 {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0
	}
	return d.pixels[y][x]
}

// Lit returns the number of pixels that are turned on.
func (d *Display) Lit() int {
	var n int
	for y := range d.pixels {
		for x := range d.pixels[y] {
			n += int(d.pixels[y][x])
		}
	}
	return n
}

// DrawSprite XORs the sprite rows onto the display with the top left corner
// at x mod 64, y mod 32 and returns the collision flag.
//
// A row below the bottom edge stops the whole draw, a column past the
// right edge only drops that pixel. The flag is rewritten for every drawn
// pixel, so only the last drawn pixel decides the returned value.
func (d *Display) DrawSprite(x, y uint8, sprite []byte) uint8 {
	x0 := int(x) % Width
	y0 := int(y) % Height

	var flag uint8
	for i, row := range sprite {
		py := y0 + i
		for j := range spriteWidth {
			if py >= Height {
				return flag
			}
			px := x0 + j
			if px >= Width {
				continue
			}

			bit := (row >> (spriteWidth - 1 - j)) & 1
			flag = bit & d.pixels[py][px]
			d.pixels[py][px] ^= bit
		}
	}
	return flag
}
