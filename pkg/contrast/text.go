package contrast

import (
	"strconv"
	"strings"
)

const defaultFontPt = 16

// FontPoints converts a computed CSS font-size to points. px and em (16px
// base) are converted; unknown or empty values count as 16pt.
func FontPoints(fontSize string) float64 {
	s := strings.TrimSpace(strings.ToLower(fontSize))
	unit := func(suffix string) (float64, bool) {
		if !strings.HasSuffix(s, suffix) {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, suffix)), 64)
		return v, err == nil
	}

	if v, ok := unit("px"); ok {
		return v * 0.75
	}
	if v, ok := unit("pt"); ok {
		return v
	}
	if v, ok := unit("em"); ok {
		return v * 16 * 0.75
	}
	return defaultFontPt
}

// IsLargeText applies the WCAG large-text rule: at least 18pt, or at least
// 14pt when bold. Check never calls this; it is for the code that reads
// computed styles.
func IsLargeText(fontSize, fontWeight string) bool {
	pt := FontPoints(fontSize)
	if pt >= 18 {
		return true
	}
	switch strings.TrimSpace(strings.ToLower(fontWeight)) {
	case "bold", "700", "800", "900":
		return pt >= 14
	}
	return false
}
