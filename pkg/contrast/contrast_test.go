package contrast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guicheck/pkg/verdict"
)

var (
	black = RGB{0, 0, 0}
	white = RGB{255, 255, 255}
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"rgb(255, 0, 0)", RGB{255, 0, 0}},
		{"rgb(0,128,255)", RGB{0, 128, 255}},
		{"  RGB( 1 , 2 , 3 ) ", RGB{1, 2, 3}},
		{"rgba(10, 20, 30, 0.5)", RGB{10, 20, 30}},
		{"rgba(10, 20, 30, 1)", RGB{10, 20, 30}},
		{"#ff0000", RGB{255, 0, 0}},
		{"#00FF7f", RGB{0, 255, 127}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColor_Rejects(t *testing.T) {
	tests := []string{
		"",
		"red",
		"#f00",
		"#ff00001",
		"rgb(256, 0, 0)",
		"rgb(1, 2)",
		"rgba(1, 2, 3, 1.5)",
		"hsl(0, 100%, 50%)",
		"rgb(255, 0, 0) trailing",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := ParseColor(in)
			assert.ErrorIs(t, err, ErrUnparseable)
			assert.Equal(t, RGB{}, got)
		})
	}
}

func TestParseColor_Transparent(t *testing.T) {
	for _, in := range []string{"transparent", "rgba(0, 0, 0, 0)", "rgba(255,255,255,0.0)"} {
		_, err := ParseColor(in)
		assert.True(t, errors.Is(err, ErrTransparent), in)
		assert.True(t, errors.Is(err, ErrUnparseable), in)
	}
}

func TestLuminance_Extremes(t *testing.T) {
	assert.Equal(t, 0.0, Luminance(black))
	assert.Equal(t, 1.0, Luminance(white))
}

func TestRatio_BlackWhiteIsExactly21(t *testing.T) {
	assert.Equal(t, 21.0, Ratio(black, white))
	assert.Equal(t, 21.0, Ratio(white, black))
}

func TestRatio_SameColorIsOne(t *testing.T) {
	for _, c := range []RGB{black, white, {12, 200, 99}, {128, 128, 128}} {
		assert.Equal(t, 1.0, Ratio(c, c), c.String())
	}
}

func TestRatio_Symmetric(t *testing.T) {
	samples := []RGB{black, white, {255, 0, 0}, {0, 128, 0}, {119, 119, 119}, {3, 250, 17}, {200, 10, 230}}
	for _, a := range samples {
		for _, b := range samples {
			assert.Equal(t, Ratio(a, b), Ratio(b, a), "%s vs %s", a, b)
		}
	}
}

func TestRatio_KnownValue(t *testing.T) {
	// #777 on white sits just under 4.5:1.
	assert.InDelta(t, 4.48, Ratio(RGB{119, 119, 119}, white), 0.01)
}

func TestCheck_Pass(t *testing.T) {
	v := Check("rgb(0, 0, 0)", "#ffffff", false, DefaultThresholds())
	assert.Equal(t, verdict.Pass, v.Outcome())
	ratio, _ := v.Float("ratio")
	assert.Equal(t, 21.0, ratio)
	req, _ := v.Float("required_ratio")
	assert.Equal(t, 4.5, req)
	cat, _ := v.Metric("category")
	assert.Equal(t, "normal", cat)
	assert.Contains(t, v.Message(), "21.00")
}

func TestCheck_LargeTextThreshold(t *testing.T) {
	// About 4.48:1, fails normal text but passes large text.
	normal := Check("#777777", "#ffffff", false, DefaultThresholds())
	large := Check("#777777", "#ffffff", true, DefaultThresholds())

	assert.Equal(t, verdict.Fail, normal.Outcome())
	assert.Equal(t, verdict.KindBelowThreshold, normal.Kind())
	assert.Equal(t, verdict.Pass, large.Outcome())
	cat, _ := large.Metric("category")
	assert.Equal(t, "large", cat)
	req, _ := large.Float("required_ratio")
	assert.Equal(t, 3.0, req)
}

func TestCheck_UnparseableIsInvalidInput(t *testing.T) {
	v := Check("transparent", "#ffffff", false, DefaultThresholds())
	assert.Equal(t, verdict.Fail, v.Outcome())
	assert.Equal(t, verdict.KindInvalidInput, v.Kind())
	assert.Contains(t, v.Message(), "could not determine color")
	assert.Contains(t, v.Message(), "foreground")
	_, hasRatio := v.Metric("ratio")
	assert.False(t, hasRatio, "no ratio may be invented for an unknown color")
	transparent, _ := v.Metric("transparent")
	assert.Equal(t, true, transparent)
}

func TestCheck_BothSidesReported(t *testing.T) {
	v := Check("nope", "also-nope", false, DefaultThresholds())
	assert.True(t, v.InvalidInput())
	_, fg := v.Metric("foreground_error")
	_, bg := v.Metric("background_error")
	assert.True(t, fg)
	assert.True(t, bg)
}

func TestCheck_Idempotent(t *testing.T) {
	a := Check("rgb(10, 20, 30)", "#fafafa", false, DefaultThresholds())
	b := Check("rgb(10, 20, 30)", "#fafafa", false, DefaultThresholds())
	assert.Equal(t, a.Record(), b.Record())
}

func TestIsLargeText(t *testing.T) {
	tests := []struct {
		size, weight string
		want         bool
	}{
		{"24px", "400", true},   // 18pt
		{"23px", "400", false},  // 17.25pt
		{"19px", "bold", true},  // 14.25pt bold
		{"18px", "700", false},  // 13.5pt bold
		{"14pt", "normal", false},
		{"14pt", "900", true},
		{"1.5em", "400", true},  // 18pt
		{"", "bold", true},      // default 16pt, bold
		{"garbage", "400", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsLargeText(tt.size, tt.weight), "%s/%s", tt.size, tt.weight)
	}
}

func TestRGB_HexRoundTrip(t *testing.T) {
	for _, in := range []string{"#000000", "#ffffff", "#0a7f3c", "#777777", "#fe01ab"} {
		c, err := ParseColor(in)
		require.NoError(t, err)
		assert.Equal(t, in, c.Hex())
		back, err := ParseColor(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, back)
	}
}

func TestLuminance_KneeBelowLinearRgb(t *testing.T) {
	// 10/255 is just under the 0.03928 knee, so the linear segment applies.
	c := RGB{10, 10, 10}
	ch := 10.0 / 255
	assert.InDelta(t, ch/12.92, Luminance(c), 1e-12)
	assert.Equal(t, Luminance(c), relativeLuminance(c.Colorful()))
}
