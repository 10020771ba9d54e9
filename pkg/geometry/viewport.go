package geometry

import (
	"fmt"
	"strings"

	"guicheck/pkg/verdict"
)

const ViewportCheckName = "viewport"

const (
	// MinTouchTarget is the smallest usable element width on mobile, in px.
	MinTouchTarget = 44
	// MaxWidthShare is the largest share of the viewport width, in percent,
	// one element may take.
	MaxWidthShare = 90
)

// Viewport is the window the boxes were measured in. PageWidth is the
// document's scroll width; zero skips the horizontal scroll check.
type Viewport struct {
	Name      string  `yaml:"name" json:"name"`
	Width     float64 `yaml:"width" json:"width"`
	Height    float64 `yaml:"height" json:"height"`
	PageWidth float64 `yaml:"page_width,omitempty" json:"page_width,omitempty"`
}

// Mobile reports whether touch target sizes apply.
func (v Viewport) Mobile() bool {
	return strings.EqualFold(v.Name, "mobile")
}

// DefaultViewports are the mobile, tablet and desktop sizes used when none
// are given.
func DefaultViewports() []Viewport {
	return []Viewport{
		{Name: "mobile", Width: 375, Height: 667},
		{Name: "tablet", Width: 768, Height: 1024},
		{Name: "desktop", Width: 1920, Height: 1080},
	}
}

// CheckViewport checks each box against the viewport: it must end inside
// the viewport width, take at most MaxWidthShare percent of it and, on
// mobile, be at least MinTouchTarget wide. With a PageWidth it also checks
// that the page does not scroll horizontally. Every sub-check is reported.
func CheckViewport(boxes []Box, vp Viewport) verdict.Verdict {
	b := verdict.New(ViewportCheckName).
		Metric("viewport", vp.Name).
		Metric("viewport_width", vp.Width).
		Metric("elements", len(boxes))

	if !(vp.Width > 0) || !(vp.Height >= 0) || !(vp.PageWidth >= 0) {
		return b.Fail(verdict.KindInvalidInput, "viewport %s: width must be positive, height and page width non-negative", vp.Name)
	}
	for i, box := range boxes {
		if err := box.validate(); err != nil {
			return b.Fail(verdict.KindInvalidInput, "box %s: %v", box.Name(i), err)
		}
	}

	for i, box := range boxes {
		name := box.Name(i)
		b.Add(verdict.Check{
			Name:    "viewport_fit",
			Passed:  box.Right() <= vp.Width,
			Message: fmt.Sprintf("%s: right edge %v, viewport width %v", name, box.Right(), vp.Width),
			Value:   box.Right(),
			Limit:   vp.Width,
		})
		if vp.Mobile() {
			b.Add(verdict.Check{
				Name:    "touch_target",
				Passed:  box.Width >= MinTouchTarget,
				Message: fmt.Sprintf("%s: width %vpx, mobile touch target needs %dpx", name, box.Width, MinTouchTarget),
				Value:   box.Width,
				Limit:   MinTouchTarget,
			})
		}
		share := box.Width / vp.Width * 100
		b.Add(verdict.Check{
			Name:    "width_share",
			Passed:  share <= MaxWidthShare,
			Message: fmt.Sprintf("%s: takes %.1f%% of the viewport width", name, share),
			Value:   share,
			Limit:   MaxWidthShare,
		})
	}

	if vp.PageWidth > 0 {
		b.Metric("page_width", vp.PageWidth)
		c := verdict.Check{
			Name:    "horizontal_scroll",
			Passed:  vp.PageWidth <= vp.Width,
			Value:   vp.PageWidth,
			Limit:   vp.Width,
			Message: fmt.Sprintf("no horizontal scroll (page width %vpx <= viewport %vpx)", vp.PageWidth, vp.Width),
		}
		if !c.Passed {
			c.Message = fmt.Sprintf("page has horizontal scroll (page width %vpx > viewport %vpx)", vp.PageWidth, vp.Width)
		}
		b.Add(c)
	}

	return finish(b, vp.Name, "viewport")
}
