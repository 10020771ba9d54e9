package contrast

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque sRGB color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Colorful returns c with channels scaled to [0,1].
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.RGB255()
	return RGB{r, g, b}
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

var (
	// ErrUnparseable is returned for any input outside the supported grammar.
	ErrUnparseable = errors.New("unparseable color")
	// ErrTransparent is returned for "transparent" and zero-alpha rgba().
	// It also matches ErrUnparseable.
	ErrTransparent = fmt.Errorf("%w: fully transparent", ErrUnparseable)
)

var (
	rgbPattern  = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
	rgbaPattern = regexp.MustCompile(`^rgba\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d*\.?\d+)\s*\)$`)
	hexPattern  = regexp.MustCompile(`^#[0-9a-f]{6}$`)
)

// ParseColor parses a computed CSS color. Accepted forms, tried in order:
//
//	rgb(r, g, b)
//	rgba(r, g, b, a)   alpha only rejects full transparency
//	#rrggbb
//
// Channels must be in [0,255]. Nothing is guessed: any other input,
// including named colors, returns an error wrapping ErrUnparseable.
func ParseColor(s string) (RGB, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return RGB{}, fmt.Errorf("%w: empty string", ErrUnparseable)
	}
	if in == "transparent" {
		return RGB{}, ErrTransparent
	}

	if m := rgbPattern.FindStringSubmatch(in); m != nil {
		return channels(s, m[1], m[2], m[3])
	}

	if m := rgbaPattern.FindStringSubmatch(in); m != nil {
		alpha, err := strconv.ParseFloat(m[4], 64)
		if err != nil || alpha > 1 {
			return RGB{}, fmt.Errorf("%w: bad alpha in %q", ErrUnparseable, s)
		}
		if alpha == 0 {
			return RGB{}, fmt.Errorf("%w: %q", ErrTransparent, s)
		}
		return channels(s, m[1], m[2], m[3])
	}

	if hexPattern.MatchString(in) {
		c, err := colorful.Hex(in)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
		}
		return fromColorful(c), nil
	}

	return RGB{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
}

func channels(orig string, parts ...string) (RGB, error) {
	var out [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v > 255 {
			return RGB{}, fmt.Errorf("%w: channel %q out of range in %q", ErrUnparseable, p, orig)
		}
		out[i] = uint8(v)
	}
	return RGB{out[0], out[1], out[2]}, nil
}
