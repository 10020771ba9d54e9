package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guicheck/pkg/verdict"
)

func ptr(v float64) *float64 { return &v }

func TestOverlaps(t *testing.T) {
	a := Box{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"same box", a, true},
		{"partial", Box{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"contained", Box{X: 2, Y: 2, Width: 2, Height: 2}, true},
		{"touching right edge", Box{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{"touching bottom edge", Box{X: 0, Y: 10, Width: 5, Height: 5}, false},
		{"far left", Box{X: 20, Y: 0, Width: 5, Height: 5}, false},
		{"above", Box{X: 0, Y: 30, Width: 5, Height: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, a), "overlap must be symmetric")
		})
	}
}

func TestRightOfAndBelow(t *testing.T) {
	ref := Box{X: 0, Y: 0, Width: 100, Height: 40}

	assert.True(t, RightOf(Box{X: 101, Width: 10, Height: 10}, ref))
	assert.False(t, RightOf(Box{X: 100, Width: 10, Height: 10}, ref), "touching is not right of")
	assert.True(t, Below(Box{Y: 41, Width: 10, Height: 10}, ref))
	assert.False(t, Below(Box{Y: 40, Width: 10, Height: 10}, ref))
}

func TestCheckOverlaps(t *testing.T) {
	boxes := []Box{
		{Label: "header", X: 0, Y: 0, Width: 300, Height: 50},
		{Label: "nav", X: 0, Y: 40, Width: 100, Height: 200},
		{Label: "main", X: 110, Y: 60, Width: 190, Height: 200},
	}

	v := CheckOverlaps(boxes)
	assert.Equal(t, verdict.Fail, v.Outcome())
	raw, _ := v.Metric("overlaps")
	pairs := raw.([]Pair)
	require.Len(t, pairs, 1)
	assert.Equal(t, Pair{A: 0, B: 1, LabelA: "header", LabelB: "nav"}, pairs[0])
	assert.Contains(t, v.Message(), "1 overlapping")

	v = CheckOverlaps(boxes[1:])
	assert.Equal(t, verdict.Pass, v.Outcome())
	v = CheckOverlaps(nil)
	assert.Equal(t, verdict.Pass, v.Outcome())
}

func TestCheckPosition(t *testing.T) {
	box := Box{Label: "logo", X: 12, Y: 30, Width: 80, Height: 40}
	sidebar := Box{Label: "sidebar", X: 0, Y: 0, Width: 10, Height: 20}

	v := CheckPosition(box, PositionExpect{X: ptr(10), Y: ptr(20), RightOf: &sidebar, Below: &sidebar}, 5)

	require.Len(t, v.Checks(), 4, "every requirement is reported")
	x := checkNamed(t, v, "x_position")
	assert.True(t, x.Passed)
	assert.Equal(t, 2.0, x.Value)
	y := checkNamed(t, v, "y_position")
	assert.False(t, y.Passed)
	assert.Equal(t, 10.0, y.Value)
	assert.True(t, checkNamed(t, v, "to_right_of").Passed)
	assert.True(t, checkNamed(t, v, "below").Passed)
	assert.Equal(t, verdict.Fail, v.Outcome())
	assert.Contains(t, v.Message(), "logo")
}

func TestCheckPosition_NoExpectations(t *testing.T) {
	v := CheckPosition(Box{Width: 1, Height: 1}, PositionExpect{}, 5)
	assert.Equal(t, verdict.Warning, v.Outcome())
}

func TestCheckSize(t *testing.T) {
	box := Box{X: 0, Y: 0, Width: 40, Height: 44}

	v := CheckSize(box, SizeExpect{Width: ptr(42), MinWidth: ptr(44), MinHeight: ptr(44)}, 5)
	require.Len(t, v.Checks(), 3)
	assert.True(t, checkNamed(t, v, "width").Passed)
	assert.False(t, checkNamed(t, v, "min_width").Passed)
	assert.True(t, checkNamed(t, v, "min_height").Passed)
	assert.Equal(t, verdict.KindBelowThreshold, v.Kind())

	v = CheckSize(box, SizeExpect{Height: ptr(44)}, 0)
	assert.Equal(t, verdict.Pass, v.Outcome())
}

func TestCheckSize_InvalidBox(t *testing.T) {
	v := CheckSize(Box{Width: -5, Height: 10}, SizeExpect{Width: ptr(10)}, 5)
	assert.True(t, v.InvalidInput())
}

func TestCheckPosition_ReferenceNames(t *testing.T) {
	box := Box{X: 5, Y: 5, Width: 10, Height: 10}
	ref := Box{X: 20, Y: 0, Width: 10, Height: 10}

	v := CheckPosition(box, PositionExpect{RightOf: &ref}, 5)
	c := checkNamed(t, v, "to_right_of")
	assert.False(t, c.Passed)
	assert.Contains(t, c.Message, "box at (20, 0)")
	assert.Contains(t, v.Message(), "box at (5, 5)")

	ref.Label = "sidebar"
	v = CheckPosition(box, PositionExpect{Below: &ref}, 5)
	assert.Contains(t, checkNamed(t, v, "below").Message, "sidebar")
}

func TestCheckPosition_InvalidReference(t *testing.T) {
	box := Box{X: 50, Y: 50, Width: 10, Height: 10}
	tests := []struct {
		name string
		want PositionExpect
	}{
		{"negative right_of", PositionExpect{RightOf: &Box{X: -1, Width: 10, Height: 10}}},
		{"NaN below", PositionExpect{Below: &Box{Y: math.NaN(), Width: 10, Height: 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := CheckPosition(box, tt.want, 5)
			assert.True(t, v.InvalidInput())
			assert.Contains(t, v.Message(), "reference box")
		})
	}
}

func TestNaNToleranceIsInvalid(t *testing.T) {
	box := Box{X: 0, Y: 0, Width: 10, Height: 10}
	nan := math.NaN()

	assert.True(t, CheckPosition(box, PositionExpect{X: ptr(0)}, nan).InvalidInput())
	assert.True(t, CheckSize(box, SizeExpect{Width: ptr(10)}, nan).InvalidInput())
	assert.True(t, Align([]Box{box, box}, Horizontal, nan, 0).InvalidInput())
}

func TestCheckViewport(t *testing.T) {
	mobile := Viewport{Name: "mobile", Width: 375, Height: 667}

	tests := []struct {
		name   string
		boxes  []Box
		vp     Viewport
		failed []string
		checks int
	}{
		{"fits", []Box{{Label: "button", X: 10, Y: 10, Width: 120, Height: 44}}, mobile, nil, 3},
		{"too small to tap", []Box{{Label: "icon", X: 10, Y: 10, Width: 30, Height: 30}}, mobile, []string{"touch_target"}, 3},
		{"small is fine on desktop", []Box{{Label: "icon", X: 10, Y: 10, Width: 30, Height: 30}}, Viewport{Name: "desktop", Width: 1920, Height: 1080}, nil, 2},
		{"too wide", []Box{{Label: "banner", X: 0, Y: 0, Width: 350, Height: 80}}, mobile, []string{"width_share"}, 3},
		{"overflows", []Box{{Label: "table", X: 100, Y: 0, Width: 300, Height: 80}}, mobile, []string{"viewport_fit"}, 3},
		{"horizontal scroll", nil, Viewport{Name: "tablet", Width: 768, PageWidth: 800}, []string{"horizontal_scroll"}, 1},
		{"no scroll", nil, Viewport{Name: "tablet", Width: 768, PageWidth: 768}, nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := CheckViewport(tt.boxes, tt.vp)
			assert.Len(t, v.Checks(), tt.checks)
			var failed []string
			for _, c := range v.FailedChecks() {
				failed = append(failed, c.Name)
			}
			assert.Equal(t, tt.failed, failed)
			if tt.failed == nil {
				assert.Equal(t, verdict.Pass, v.Outcome())
			} else {
				assert.Equal(t, verdict.KindBelowThreshold, v.Kind())
			}
		})
	}
}

func TestCheckViewport_Edges(t *testing.T) {
	v := CheckViewport(nil, Viewport{Name: "desktop", Width: 1920})
	assert.Equal(t, verdict.Warning, v.Outcome(), "nothing to check")

	v = CheckViewport(nil, Viewport{Name: "broken"})
	assert.True(t, v.InvalidInput())

	v = CheckViewport([]Box{{Width: -1}}, DefaultViewports()[0])
	assert.True(t, v.InvalidInput())

	share := checkNamed(t, CheckViewport([]Box{{Width: 375 * 0.9, Height: 1}}, DefaultViewports()[0]), "width_share")
	assert.True(t, share.Passed, "exactly 90%% is allowed, got %v", share.Value)
}
