// Package bitmap compares a reference screenshot with an actual one.
package bitmap

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"

	"guicheck/pkg/config"
	"guicheck/pkg/verdict"
)

// CheckName identifies verdicts produced by Compare.
const CheckName = "bitmap_similarity"

// ResizePolicy decides which image is resampled when the sizes differ.
// Resampling is lossy and can hide a real size change, so the choice is
// always reported in the verdict metrics.
type ResizePolicy string

const (
	// ResizeActual scales the actual image to the reference size.
	ResizeActual ResizePolicy = "actual"
	// ResizeReference scales the reference image to the actual size.
	ResizeReference ResizePolicy = "reference"
	// ResizeNever rejects images of different sizes as invalid input.
	ResizeNever ResizePolicy = "never"
)

// CompareOptions configures the image comparison
type CompareOptions struct {
	// SimilarityThreshold: pass iff 1 - MSE/255² is at least this (0-1).
	SimilarityThreshold float64

	// PixelTolerance: a pixel counts as different when its largest channel
	// difference exceeds this value (0-255). Only affects the pixel
	// statistics, not the pass/fail decision.
	PixelTolerance int

	// FuzzyRadius: if > 0, a pixel is not counted as different when any
	// reference pixel within this radius matches it within PixelTolerance.
	// Absorbs 1-2px text shifts in the pixel statistics; MSE is unaffected.
	FuzzyRadius int

	// MaxDifferentPercent: if > 0, the comparison also requires the share of
	// different pixels to be at most this percentage, reported as the
	// "different_pixels" sub-check.
	MaxDifferentPercent float64

	// Resize selects the normalization used for mismatched sizes.
	Resize ResizePolicy

	// WarnOnResize downgrades a passing but resized comparison to a warning.
	WarnOnResize bool

	// DiffImage: if true, Result.Diff holds an image highlighting differences.
	DiffImage bool
}

// DefaultOptions returns the documented defaults: 0.95 similarity, a
// per-channel tolerance of 5 and resizing of the actual image.
func DefaultOptions() CompareOptions {
	return OptionsFrom(config.Default())
}

// OptionsFrom builds comparison options from a tolerance set.
func OptionsFrom(t config.Tolerances) CompareOptions {
	return CompareOptions{
		SimilarityThreshold: t.SimilarityThreshold,
		PixelTolerance:      t.PixelTolerance,
		Resize:              ResizeActual,
	}
}

// Result contains the verdict and, when requested, the diff image.
type Result struct {
	Verdict verdict.Verdict
	// Diff marks differing pixels red over a grayscale copy of the actual
	// image. Nil unless CompareOptions.DiffImage was set and the images
	// could be compared.
	Diff image.Image
}

// SaveDiff writes the diff image as PNG.
func (r Result) SaveDiff(path string) error {
	if r.Diff == nil {
		return fmt.Errorf("no diff image to save")
	}
	if err := gg.SavePNG(path, r.Diff); err != nil {
		return fmt.Errorf("failed to save diff image: %w", err)
	}
	return nil
}

// Compare scores actual against reference. Neither input is modified.
//
// The similarity is 1 - MSE/255², with the mean squared error taken over
// the R, G and B channels of every pixel after converting both images to
// 8-bit non-premultiplied RGB. Alpha is ignored.
func Compare(reference, actual image.Image, opts CompareOptions) Result {
	b := verdict.New(CheckName).
		Metric("threshold", opts.SimilarityThreshold).
		Metric("pixel_tolerance", opts.PixelTolerance)

	if !(opts.SimilarityThreshold >= 0 && opts.SimilarityThreshold <= 1) {
		return Result{Verdict: b.Fail(verdict.KindInvalidInput, "similarity threshold %v not in [0,1]", opts.SimilarityThreshold)}
	}
	if opts.PixelTolerance < 0 {
		return Result{Verdict: b.Fail(verdict.KindInvalidInput, "pixel tolerance %d is negative", opts.PixelTolerance)}
	}
	if opts.FuzzyRadius < 0 {
		return Result{Verdict: b.Fail(verdict.KindInvalidInput, "fuzzy radius %d is negative", opts.FuzzyRadius)}
	}
	if !(opts.MaxDifferentPercent >= 0 && opts.MaxDifferentPercent <= 100) {
		return Result{Verdict: b.Fail(verdict.KindInvalidInput, "max different percent %v not in [0,100]", opts.MaxDifferentPercent)}
	}
	if empty(reference) {
		return Result{Verdict: b.Fail(verdict.KindInvalidInput, "reference image is empty")}
	}
	if empty(actual) {
		return Result{Verdict: b.Fail(verdict.KindInvalidInput, "actual image is empty")}
	}

	policy := opts.Resize
	if policy == "" {
		policy = ResizeActual
	}
	refBounds, actBounds := reference.Bounds(), actual.Bounds()
	b.Metric("reference_size", sizeString(refBounds)).
		Metric("actual_size", sizeString(actBounds)).
		Metric("resize_policy", string(policy))

	resized := refBounds.Dx() != actBounds.Dx() || refBounds.Dy() != actBounds.Dy()
	b.Metric("resized", resized)
	if resized {
		switch policy {
		case ResizeActual:
			actual = resize.Resize(uint(refBounds.Dx()), uint(refBounds.Dy()), actual, resize.Lanczos3)
		case ResizeReference:
			reference = resize.Resize(uint(actBounds.Dx()), uint(actBounds.Dy()), reference, resize.Lanczos3)
		case ResizeNever:
			return Result{Verdict: b.Fail(verdict.KindInvalidInput,
				"image dimensions differ: reference=%s, actual=%s", sizeString(refBounds), sizeString(actBounds))}
		default:
			return Result{Verdict: b.Fail(verdict.KindInvalidInput, "unknown resize policy %q", policy)}
		}
		b.Degrade()
	}

	stats, diff := scan(reference, actual, opts)

	mse := float64(stats.sumSquares) / float64(stats.total*3)
	similarity := 1 - mse/(255*255)
	pct := float64(stats.different) / float64(stats.total) * 100

	similar := similarity >= opts.SimilarityThreshold
	passed := similar
	b.Metric("similarity", similarity).
		Metric("mse", mse).
		Metric("different_pixels", stats.different).
		Metric("total_pixels", stats.total).
		Metric("difference_percentage", pct).
		Metric("max_difference", stats.maxDiff).
		Add(verdict.Check{
			Name:    "similarity",
			Passed:  similar,
			Message: fmt.Sprintf("similarity %.2f, threshold %.2f", similarity, opts.SimilarityThreshold),
			Value:   similarity,
			Limit:   opts.SimilarityThreshold,
		})

	if opts.MaxDifferentPercent > 0 {
		within := pct <= opts.MaxDifferentPercent
		passed = passed && within
		b.Add(verdict.Check{
			Name:    "different_pixels",
			Passed:  within,
			Message: fmt.Sprintf("%.2f%% of pixels differ, limit %.2f%%", pct, opts.MaxDifferentPercent),
			Value:   pct,
			Limit:   opts.MaxDifferentPercent,
		})
	}

	note := ""
	if resized {
		note = fmt.Sprintf(", %s image resized", policy)
	}

	res := Result{Diff: diff}
	switch {
	case !passed:
		if similar {
			note += fmt.Sprintf(", %.2f%% pixels differ", pct)
		}
		res.Verdict = b.Fail(verdict.KindBelowThreshold, "screenshot differs from reference (similarity: %.2f%s)", similarity, note)
	case resized && opts.WarnOnResize:
		res.Verdict = b.Warn("screenshot matches reference only after resize (similarity: %.2f%s)", similarity, note)
	default:
		res.Verdict = b.Pass("screenshot matches reference (similarity: %.2f%s)", similarity, note)
	}
	return res
}

type pixelStats struct {
	sumSquares uint64
	total      int
	different  int
	maxDiff    int
}

// scan walks both images, which must have equal dimensions, in lockstep.
func scan(reference, actual image.Image, opts CompareOptions) (pixelStats, image.Image) {
	rb, ab := reference.Bounds(), actual.Bounds()
	w, h := rb.Dx(), rb.Dy()
	stats := pixelStats{total: w * h}

	var dc *gg.Context
	if opts.DiffImage {
		dc = gg.NewContext(w, h)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			e := toNRGBA(reference.At(rb.Min.X+x, rb.Min.Y+y))
			a := toNRGBA(actual.At(ab.Min.X+x, ab.Min.Y+y))

			dr := int(a.R) - int(e.R)
			dg := int(a.G) - int(e.G)
			db := int(a.B) - int(e.B)
			stats.sumSquares += uint64(dr*dr + dg*dg + db*db)

			// Calculate maximum difference across all channels
			diff := max(absInt(dr), absInt(dg), absInt(db))
			if diff > stats.maxDiff {
				stats.maxDiff = diff
			}

			differs := diff > opts.PixelTolerance
			if differs && opts.FuzzyRadius > 0 {
				differs = !fuzzyMatch(reference, a, x, y, w, h, opts.FuzzyRadius, opts.PixelTolerance)
			}
			if differs {
				stats.different++
			}

			if dc != nil {
				if differs {
					// Highlight difference in red
					dc.SetRGB255(255, 0, 0)
				} else {
					gray := int(gray8(a))
					dc.SetRGB255(gray, gray, gray)
				}
				dc.SetPixel(x, y)
			}
		}
	}

	if dc == nil {
		return stats, nil
	}
	return stats, dc.Image()
}

// fuzzyMatch reports whether any reference pixel within radius of (x, y)
// matches a within tolerance. x and y are offsets from the reference's
// bounds origin.
func fuzzyMatch(reference image.Image, a color.NRGBA, x, y, w, h, radius, tolerance int) bool {
	rb := reference.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			e := toNRGBA(reference.At(rb.Min.X+nx, rb.Min.Y+ny))
			diff := max(
				absInt(int(a.R)-int(e.R)),
				absInt(int(a.G)-int(e.G)),
				absInt(int(a.B)-int(e.B)),
			)
			if diff <= tolerance {
				return true
			}
		}
	}
	return false
}

func empty(img image.Image) bool {
	return img == nil || img.Bounds().Empty()
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func gray8(c color.NRGBA) uint8 {
	return uint8((299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000)
}

func sizeString(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d", r.Dx(), r.Dy())
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
