package emulator

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Framebuffer is the monochrome 64x32 display, each pixel is either lit or unlit.
type Framebuffer struct {
	pixels [Height][Width]bool
}

// Pixel reports whether the pixel at column x and row y is lit.
// Coordinates outside of the display wrap around.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f.pixels[wrap(y, Height)][wrap(x, Width)]
}

func (f *Framebuffer) reset() {
	for k := range f.pixels {
		for i := range f.pixels[k] {
			f.pixels[k][i] = false
		}
	}
}

// toggle flips a pixel and returns whether a lit pixel got erased.
func (f *Framebuffer) toggle(x, y int) bool {
	erased := f.pixels[y][x]
	f.pixels[y][x] = !erased
	return erased
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
