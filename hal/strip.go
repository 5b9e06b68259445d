package hal

import "image/color"

// Strip buffers pixel colors for one addressable LED chain. Writes only
// touch the buffer; Show pushes the whole frame in a single WriteColors
// call, so the chain never sees a half-prepared batch.
type Strip struct {
	id  int
	wr  ColorWriter
	buf []color.RGBA
}

// NewStrip creates a strip buffer of numPixels pixels, all black.
func NewStrip(id, numPixels int, wr ColorWriter) *Strip {
	return &Strip{
		id:  id,
		wr:  wr,
		buf: make([]color.RGBA, numPixels),
	}
}

// ID returns the 1-based strip number.
func (s *Strip) ID() int { return s.id }

// NumPixels returns the pixel count.
func (s *Strip) NumPixels() int { return len(s.buf) }

// SetPixelColor sets one buffered pixel. Out-of-range indices are ignored,
// matching addressable-strip driver behaviour.
func (s *Strip) SetPixelColor(i int, c color.RGBA) {
	if i < 0 || i >= len(s.buf) {
		return
	}
	s.buf[i] = c
}

// Fill sets every buffered pixel in [start, end] to c. The caller
// validates the range.
func (s *Strip) Fill(start, end int, c color.RGBA) {
	for i := start; i <= end && i < len(s.buf); i++ {
		if i < 0 {
			continue
		}
		s.buf[i] = c
	}
}

// Clear sets every buffered pixel to black.
func (s *Strip) Clear() {
	for i := range s.buf {
		s.buf[i] = color.RGBA{}
	}
}

// Show pushes the buffered frame to the chain.
func (s *Strip) Show() error {
	return s.wr.WriteColors(s.buf)
}

// Pixel returns the buffered color of pixel i (black when out of range).
func (s *Strip) Pixel(i int) color.RGBA {
	if i < 0 || i >= len(s.buf) {
		return color.RGBA{}
	}
	return s.buf[i]
}

// Lit counts buffered pixels that are not black.
func (s *Strip) Lit() int {
	n := 0
	for _, c := range s.buf {
		if c.R != 0 || c.G != 0 || c.B != 0 {
			n++
		}
	}
	return n
}
