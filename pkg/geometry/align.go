package geometry

import (
	"fmt"

	"guicheck/pkg/verdict"
)

// AlignCheckName identifies verdicts produced by Align.
const AlignCheckName = "alignment"

// Mode selects the alignment relation Align verifies.
type Mode string

const (
	// Horizontal: boxes in a row share their top edge and vertical center.
	Horizontal Mode = "horizontal"
	// Vertical: boxes in a column share their left edge and horizontal center.
	Vertical Mode = "vertical"
	// Grid: rows are horizontally aligned and columns vertically aligned.
	Grid Mode = "grid"
)

// ParseMode converts a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Horizontal, Vertical, Grid:
		return m, nil
	}
	return "", fmt.Errorf("unknown alignment mode %q", s)
}

// Align checks whether boxes satisfy the alignment relation of mode, with
// each edge or center spread allowed up to tolerance pixels. Every sub-check
// runs and is reported, even after one fails.
//
// In Grid mode, boxes must be given in row-major order without gaps: the
// first columns boxes form row 0, the next columns boxes row 1, and so on.
// Boxes in any other order produce meaningless rows and columns. columns is
// ignored by the other modes.
func Align(boxes []Box, mode Mode, tolerance float64, columns int) verdict.Verdict {
	b := verdict.New(AlignCheckName).
		Metric("mode", string(mode)).
		Metric("tolerance", tolerance).
		Metric("elements", len(boxes))

	if len(boxes) < 2 {
		return b.Fail(verdict.KindInvalidInput, "insufficient elements: need at least 2 for alignment check, got %d", len(boxes))
	}
	if !(tolerance >= 0) {
		return b.Fail(verdict.KindInvalidInput, "tolerance %v is not a non-negative number", tolerance)
	}
	for i, box := range boxes {
		if err := box.validate(); err != nil {
			return b.Fail(verdict.KindInvalidInput, "box %s: %v", box.Name(i), err)
		}
	}

	var checks []verdict.Check
	switch mode {
	case Horizontal:
		checks = horizontalChecks(boxes, tolerance)
	case Vertical:
		checks = verticalChecks(boxes, tolerance)
	case Grid:
		if columns < 1 {
			return b.Fail(verdict.KindInvalidInput, "grid needs at least 1 column, got %d", columns)
		}
		return alignGrid(b, boxes, tolerance, columns)
	default:
		return b.Fail(verdict.KindInvalidInput, "unknown alignment mode %q", mode)
	}

	b.Add(checks...)
	for _, c := range checks {
		b.Metric(c.Name+"_spread", c.Value)
	}
	if b.AllPassed() {
		return b.Pass("%d elements %s aligned within %vpx", len(boxes), mode, tolerance)
	}
	return b.Fail(verdict.KindBelowThreshold, "%d of %d %s alignment checks exceed %vpx", b.FailedCount(), len(checks), mode, tolerance)
}

func alignGrid(b *verdict.Builder, boxes []Box, tolerance float64, columns int) verdict.Verdict {
	var rows [][]Box
	for start := 0; start < len(boxes); start += columns {
		rows = append(rows, boxes[start:min(start+columns, len(boxes))])
	}

	failedRows, failedCols := []int{}, []int{}
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		ok := true
		for _, c := range horizontalChecks(row, tolerance) {
			ok = ok && c.Passed
			b.Add(c.InRow(i))
		}
		if !ok {
			failedRows = append(failedRows, i)
		}
	}

	checkedCols := 0
	for col := 0; col < columns; col++ {
		var column []Box
		for _, row := range rows {
			if col < len(row) {
				column = append(column, row[col])
			}
		}
		if len(column) < 2 {
			continue
		}
		checkedCols++
		ok := true
		for _, c := range verticalChecks(column, tolerance) {
			ok = ok && c.Passed
			b.Add(c.InColumn(col))
		}
		if !ok {
			failedCols = append(failedCols, col)
		}
	}

	b.Metric("rows", len(rows)).
		Metric("columns", columns).
		Metric("failed_rows", failedRows).
		Metric("failed_columns", failedCols)

	if len(failedRows) == 0 && len(failedCols) == 0 {
		return b.Pass("grid of %d rows x %d columns aligned within %vpx", len(rows), columns, tolerance)
	}
	return b.Fail(verdict.KindBelowThreshold, "grid misaligned: %d of %d rows and %d of %d columns exceed %vpx",
		len(failedRows), len(rows), len(failedCols), checkedCols, tolerance)
}

func horizontalChecks(boxes []Box, tolerance float64) []verdict.Check {
	tops := make([]float64, len(boxes))
	centers := make([]float64, len(boxes))
	for i, box := range boxes {
		tops[i] = box.Y
		centers[i] = box.CenterY()
	}
	return []verdict.Check{
		spreadCheck("top_alignment", "aligned at top", tops, tolerance),
		spreadCheck("center_alignment", "center-aligned", centers, tolerance),
	}
}

func verticalChecks(boxes []Box, tolerance float64) []verdict.Check {
	lefts := make([]float64, len(boxes))
	centers := make([]float64, len(boxes))
	for i, box := range boxes {
		lefts[i] = box.X
		centers[i] = box.CenterX()
	}
	return []verdict.Check{
		spreadCheck("left_alignment", "left-aligned", lefts, tolerance),
		spreadCheck("center_alignment", "center-aligned", centers, tolerance),
	}
}

func spreadCheck(name, what string, values []float64, tolerance float64) verdict.Check {
	d := spread(values)
	c := verdict.Check{Name: name, Passed: d <= tolerance, Value: d, Limit: tolerance}
	switch {
	case d == 0:
		c.Message = "all elements " + what
	case c.Passed:
		c.Message = fmt.Sprintf("%s within tolerance (%vpx)", name, d)
	default:
		c.Message = fmt.Sprintf("%s exceeds tolerance (%vpx > %vpx)", name, d, tolerance)
	}
	return c
}
