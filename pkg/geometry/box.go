// Package geometry checks bounding boxes of rendered elements against
// alignment, position, size and overlap expectations.
package geometry

import (
	"fmt"
	"math"
)

// Box is an element's border box in device pixels.
type Box struct {
	Label  string  `yaml:"label,omitempty" json:"label,omitempty"`
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

func (b Box) Right() float64 { return b.X + b.Width }
func (b Box) Bottom() float64 { return b.Y + b.Height }
func (b Box) CenterX() float64 { return b.X + b.Width/2 }
func (b Box) CenterY() float64 { return b.Y + b.Height/2 }

// Name returns the label, or "#i" when the box has none.
func (b Box) Name(i int) string {
	if b.Label != "" {
		return b.Label
	}
	return fmt.Sprintf("#%d", i)
}

// describe names a box in messages: its label, or its position.
func (b Box) describe() string {
	if b.Label != "" {
		return b.Label
	}
	return fmt.Sprintf("box at (%v, %v)", b.X, b.Y)
}

func (b Box) validate() error {
	for _, v := range []float64{b.X, b.Y, b.Width, b.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite coordinate")
		}
	}
	if b.X < 0 || b.Y < 0 || b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("negative coordinate or size")
	}
	return nil
}

// Overlaps reports whether a and b share any area. Boxes that only touch
// along an edge do not overlap. The relation is symmetric.
func Overlaps(a, b Box) bool {
	return !(a.Right() <= b.X ||
		b.Right() <= a.X ||
		a.Bottom() <= b.Y ||
		b.Bottom() <= a.Y)
}

// RightOf reports whether a starts strictly right of b's right edge.
func RightOf(a, b Box) bool {
	return a.X > b.Right()
}

// Below reports whether a starts strictly below b's bottom edge.
func Below(a, b Box) bool {
	return a.Y > b.Bottom()
}

func spread(values []float64) float64 {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi - lo
}
