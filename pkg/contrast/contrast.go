// Package contrast computes WCAG contrast ratios between CSS colors.
package contrast

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"guicheck/pkg/config"
	"guicheck/pkg/verdict"
)

// CheckName identifies verdicts produced by Check.
const CheckName = "color_contrast"

// Thresholds are the minimum ratios for normal and large text.
type Thresholds struct {
	Normal float64
	Large  float64
}

// DefaultThresholds returns 4.5:1 for normal text and 3:1 for large text.
func DefaultThresholds() Thresholds {
	return Thresholds{Normal: config.DefaultMinContrastRatio, Large: config.DefaultLargeTextRatio}
}

// ThresholdsFrom picks the contrast thresholds out of a tolerance set.
func ThresholdsFrom(t config.Tolerances) Thresholds {
	return Thresholds{Normal: t.MinContrastRatio, Large: t.LargeTextRatio}
}

// Channel weights of the relative luminance.
const (
	rc = 0.2126
	gc = 0.7152
	bc = 0.0722
)

// linearize applies the sRGB transfer function to a channel in [0,1].
func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// relativeLuminance uses the WCAG 2.x knee of 0.03928, not the 0.04045 of
// colorful's LinearRgb.
func relativeLuminance(c colorful.Color) float64 {
	r, g, b := linearize(c.R), linearize(c.G), linearize(c.B)
	// Explicit conversions keep the compiler from fusing into FMA, so white
	// sums to exactly 1.
	return float64(r*rc) + float64(g*gc) + float64(b*bc)
}

// Luminance returns the relative luminance of c in [0,1].
func Luminance(c RGB) float64 {
	return relativeLuminance(c.Colorful())
}

// Ratio returns the contrast ratio between two colors, in [1,21].
// The argument order does not matter.
func Ratio(a, b RGB) float64 {
	la, lb := Luminance(a), Luminance(b)
	lighter, darker := math.Max(la, lb), math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05)
}

// Check parses both colors and compares their contrast ratio against the
// threshold for the given text category. Whether text counts as large is
// the caller's decision; see IsLargeText.
func Check(foreground, background string, largeText bool, th Thresholds) verdict.Verdict {
	b := verdict.New(CheckName)

	category, required := "normal", th.Normal
	if largeText {
		category, required = "large", th.Large
	}
	b.Metric("category", category).Metric("required_ratio", required)

	fg, fgErr := ParseColor(foreground)
	bg, bgErr := ParseColor(background)
	if fgErr != nil || bgErr != nil {
		side := "background"
		switch {
		case fgErr != nil && bgErr != nil:
			side = "foreground and background"
			b.Metric("foreground_error", fgErr.Error()).Metric("background_error", bgErr.Error())
		case fgErr != nil:
			side = "foreground"
			b.Metric("foreground_error", fgErr.Error())
		default:
			b.Metric("background_error", bgErr.Error())
		}
		if errors.Is(fgErr, ErrTransparent) || errors.Is(bgErr, ErrTransparent) {
			b.Metric("transparent", true)
		}
		return b.Fail(verdict.KindInvalidInput, "could not determine color (%s)", side)
	}

	ratio := Ratio(fg, bg)
	b.Metric("ratio", ratio).
		Metric("foreground", fg.Hex()).
		Metric("background", bg.Hex()).
		Add(verdict.Check{
			Name:    "contrast_ratio",
			Passed:  ratio >= required,
			Message: fmt.Sprintf("%s on %s: %.2f:1", fg.Hex(), bg.Hex(), ratio),
			Value:   ratio,
			Limit:   required,
		})

	if ratio >= required {
		return b.Pass("contrast ratio %.2f meets requirement (%.1f, %s text)", ratio, required, category)
	}
	return b.Fail(verdict.KindBelowThreshold, "contrast ratio %.2f below requirement (%.1f, %s text)", ratio, required, category)
}
