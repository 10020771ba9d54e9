package geometry

import (
	"fmt"
	"math"

	"guicheck/pkg/verdict"
)

const (
	PositionCheckName = "position"
	SizeCheckName     = "size"
	OverlapCheckName  = "overlap"
)

// PositionExpect lists the position requirements for one box. Nil fields
// are not checked.
type PositionExpect struct {
	X       *float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y       *float64 `yaml:"y,omitempty" json:"y,omitempty"`
	RightOf *Box     `yaml:"right_of,omitempty" json:"right_of,omitempty"`
	Below   *Box     `yaml:"below,omitempty" json:"below,omitempty"`
}

// SizeExpect lists the size requirements for one box. Nil fields are not
// checked.
type SizeExpect struct {
	Width     *float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height    *float64 `yaml:"height,omitempty" json:"height,omitempty"`
	MinWidth  *float64 `yaml:"min_width,omitempty" json:"min_width,omitempty"`
	MinHeight *float64 `yaml:"min_height,omitempty" json:"min_height,omitempty"`
}

// CheckPosition compares box against the expected coordinates, allowing
// tolerance pixels of error, and checks the relative placements.
func CheckPosition(box Box, want PositionExpect, tolerance float64) verdict.Verdict {
	name := box.describe()
	b := verdict.New(PositionCheckName).
		Metric("element", name).
		Metric("tolerance", tolerance)
	if err := box.validate(); err != nil {
		return b.Fail(verdict.KindInvalidInput, "box %s: %v", name, err)
	}
	for _, ref := range []*Box{want.RightOf, want.Below} {
		if ref == nil {
			continue
		}
		if err := ref.validate(); err != nil {
			return b.Fail(verdict.KindInvalidInput, "reference box %s: %v", ref.describe(), err)
		}
	}
	if !(tolerance >= 0) {
		return b.Fail(verdict.KindInvalidInput, "tolerance %v is not a non-negative number", tolerance)
	}

	if want.X != nil {
		b.Add(deltaCheck("x_position", box.X, *want.X, tolerance))
	}
	if want.Y != nil {
		b.Add(deltaCheck("y_position", box.Y, *want.Y, tolerance))
	}
	if want.RightOf != nil {
		b.Add(relationCheck("to_right_of", "to the right of", RightOf(box, *want.RightOf), box.X-want.RightOf.Right(), want.RightOf.describe()))
	}
	if want.Below != nil {
		b.Add(relationCheck("below", "below", Below(box, *want.Below), box.Y-want.Below.Bottom(), want.Below.describe()))
	}

	return finish(b, name, "position")
}

// CheckSize compares box dimensions against exact sizes, within tolerance,
// and against minimum sizes.
func CheckSize(box Box, want SizeExpect, tolerance float64) verdict.Verdict {
	name := box.describe()
	b := verdict.New(SizeCheckName).
		Metric("element", name).
		Metric("tolerance", tolerance)
	if err := box.validate(); err != nil {
		return b.Fail(verdict.KindInvalidInput, "box %s: %v", name, err)
	}
	if !(tolerance >= 0) {
		return b.Fail(verdict.KindInvalidInput, "tolerance %v is not a non-negative number", tolerance)
	}

	if want.Width != nil {
		b.Add(deltaCheck("width", box.Width, *want.Width, tolerance))
	}
	if want.Height != nil {
		b.Add(deltaCheck("height", box.Height, *want.Height, tolerance))
	}
	if want.MinWidth != nil {
		b.Add(minimumCheck("min_width", box.Width, *want.MinWidth))
	}
	if want.MinHeight != nil {
		b.Add(minimumCheck("min_height", box.Height, *want.MinHeight))
	}

	return finish(b, name, "size")
}

// Pair names two overlapping boxes by index and label.
type Pair struct {
	A      int    `yaml:"a" json:"a"`
	B      int    `yaml:"b" json:"b"`
	LabelA string `yaml:"label_a" json:"label_a"`
	LabelB string `yaml:"label_b" json:"label_b"`
}

// CheckOverlaps reports every pair of boxes that overlap. Zero or one box
// trivially passes.
func CheckOverlaps(boxes []Box) verdict.Verdict {
	b := verdict.New(OverlapCheckName).Metric("elements", len(boxes))
	for i, box := range boxes {
		if err := box.validate(); err != nil {
			return b.Fail(verdict.KindInvalidInput, "box %s: %v", box.Name(i), err)
		}
	}

	pairs := []Pair{}
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if Overlaps(boxes[i], boxes[j]) {
				pairs = append(pairs, Pair{A: i, B: j, LabelA: boxes[i].Name(i), LabelB: boxes[j].Name(j)})
			}
		}
	}
	b.Metric("overlaps", pairs).Metric("overlap_count", len(pairs))

	if len(pairs) == 0 {
		return b.Pass("no overlapping elements found")
	}
	return b.Fail(verdict.KindBelowThreshold, "found %d overlapping element pairs", len(pairs))
}

func deltaCheck(name string, actual, expected, tolerance float64) verdict.Check {
	d := actual - expected
	return verdict.Check{
		Name:    name,
		Passed:  math.Abs(d) <= tolerance,
		Message: fmt.Sprintf("expected %v, got %v (difference %v, tolerance %v)", expected, actual, d, tolerance),
		Value:   d,
		Limit:   tolerance,
	}
}

func minimumCheck(name string, actual, minimum float64) verdict.Check {
	return verdict.Check{
		Name:    name,
		Passed:  actual >= minimum,
		Message: fmt.Sprintf("expected at least %v, got %v", minimum, actual),
		Value:   actual,
		Limit:   minimum,
	}
}

func relationCheck(name, phrase string, ok bool, gap float64, other string) verdict.Check {
	msg := fmt.Sprintf("element is %s %s", phrase, other)
	if !ok {
		msg = fmt.Sprintf("element not %s %s", phrase, other)
	}
	return verdict.Check{Name: name, Passed: ok, Message: msg, Value: gap}
}

func finish(b *verdict.Builder, element, what string) verdict.Verdict {
	if b.FailedCount() > 0 {
		return b.Fail(verdict.KindBelowThreshold, "%s: %d %s checks failed", element, b.FailedCount(), what)
	}
	if !b.HasChecks() {
		return b.Warn("%s: no %s expectations given", element, what)
	}
	return b.Pass("%s: %s checks passed", element, what)
}
