// Package verdict holds the result type shared by every analyzer.
//
// A Verdict is built once through a Builder and never changes afterwards.
// Accessors hand out copies, so calling code can keep, compare and
// serialize verdicts without coordinating with the analyzer that made them.
package verdict

import "fmt"

// Outcome is the top-level result of a check.
type Outcome string

const (
	Pass    Outcome = "pass"
	Fail    Outcome = "fail"
	Warning Outcome = "warning"
)

// Kind classifies why a verdict did not pass.
type Kind string

const (
	KindNone Kind = "none"
	// KindInvalidInput marks malformed or empty observations: zero-sized
	// bitmaps, unparseable colors, too few boxes.
	KindInvalidInput Kind = "invalid_input"
	// KindBelowThreshold marks well-formed input whose metric missed the
	// configured tolerance.
	KindBelowThreshold Kind = "below_threshold"
)

// Check is one sub-check inside a verdict, e.g. "top_alignment" of a grid row.
type Check struct {
	Name    string  `json:"name" yaml:"name"`
	Passed  bool    `json:"passed" yaml:"passed"`
	Message string  `json:"message" yaml:"message"`
	Value   float64 `json:"value" yaml:"value"`
	Limit   float64 `json:"limit" yaml:"limit"`
	Row     *int    `json:"row,omitempty" yaml:"row,omitempty"`
	Column  *int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// InRow returns a copy of c tagged with a grid row index.
func (c Check) InRow(i int) Check {
	c.Row = &i
	return c
}

// InColumn returns a copy of c tagged with a grid column index.
func (c Check) InColumn(j int) Check {
	c.Column = &j
	return c
}

// Verdict is the immutable result of one analyzer invocation.
type Verdict struct {
	check    string
	outcome  Outcome
	kind     Kind
	message  string
	degraded bool
	metrics  map[string]any
	checks   []Check
}

func (v Verdict) Check() string { return v.check }
func (v Verdict) Outcome() Outcome { return v.outcome }
func (v Verdict) Kind() Kind { return v.kind }
func (v Verdict) Message() string { return v.message }
func (v Verdict) Passed() bool { return v.outcome == Pass }
func (v Verdict) Failed() bool { return v.outcome == Fail }
func (v Verdict) InvalidInput() bool { return v.kind == KindInvalidInput }

// Degraded reports whether the observation had to be altered before it
// could be compared (for example a bitmap resize).
func (v Verdict) Degraded() bool { return v.degraded }

// Metric returns a copy of a single named metric.
func (v Verdict) Metric(name string) (any, bool) {
	m, ok := v.metrics[name]
	return deepCopy(m), ok
}

// Float returns a numeric metric as float64. Integer metrics are converted.
func (v Verdict) Float(name string) (float64, bool) {
	switch n := v.metrics[name].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Metrics returns a copy of all metrics.
func (v Verdict) Metrics() map[string]any {
	return cloneMetrics(v.metrics)
}

// Checks returns a copy of the sub-checks in the order they were evaluated.
func (v Verdict) Checks() []Check {
	return cloneChecks(v.checks)
}

// FailedChecks returns only the sub-checks that did not pass.
func (v Verdict) FailedChecks() []Check {
	var out []Check
	for _, c := range v.checks {
		if !c.Passed {
			out = append(out, c.clone())
		}
	}
	return out
}

func (v Verdict) String() string {
	return fmt.Sprintf("%s: %s (%s)", v.check, v.outcome, v.message)
}

// Record is the serializable snapshot of a verdict. Report writers consume
// records, never the verdict internals.
type Record struct {
	Check    string         `json:"check" yaml:"check"`
	Outcome  Outcome        `json:"outcome" yaml:"outcome"`
	Kind     Kind           `json:"kind" yaml:"kind"`
	Message  string         `json:"message" yaml:"message"`
	Degraded bool           `json:"degraded,omitempty" yaml:"degraded,omitempty"`
	Metrics  map[string]any `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Checks   []Check        `json:"checks,omitempty" yaml:"checks,omitempty"`
}

// Record returns the public snapshot of v.
func (v Verdict) Record() Record {
	return Record{
		Check:    v.check,
		Outcome:  v.outcome,
		Kind:     v.kind,
		Message:  v.message,
		Degraded: v.degraded,
		Metrics:  v.Metrics(),
		Checks:   v.Checks(),
	}
}

// Overall folds several outcomes into one: pass when all pass, fail when any
// fails, warning otherwise. An empty list is a warning since nothing was
// verified.
func Overall(vs []Verdict) Outcome {
	if len(vs) == 0 {
		return Warning
	}
	allPass := true
	for _, v := range vs {
		if v.outcome == Fail {
			return Fail
		}
		if v.outcome != Pass {
			allPass = false
		}
	}
	if allPass {
		return Pass
	}
	return Warning
}
