package verdict

import "fmt"

// Builder accumulates metrics and sub-checks, then seals them into a Verdict.
// A Builder is not safe for concurrent use; each analyzer call owns its own.
type Builder struct {
	check    string
	degraded bool
	metrics  map[string]any
	checks   []Check
}

// New starts a verdict for the named check.
func New(check string) *Builder {
	return &Builder{check: check, metrics: make(map[string]any)}
}

// Metric records a named metric, replacing any previous value.
func (b *Builder) Metric(name string, value any) *Builder {
	b.metrics[name] = value
	return b
}

// Add appends sub-checks.
func (b *Builder) Add(checks ...Check) *Builder {
	b.checks = append(b.checks, checks...)
	return b
}

// Degrade flags the comparison as degraded.
func (b *Builder) Degrade() *Builder {
	b.degraded = true
	return b
}

// HasChecks reports whether any sub-check was added.
func (b *Builder) HasChecks() bool {
	return len(b.checks) > 0
}

// AllPassed reports whether every sub-check added so far passed.
func (b *Builder) AllPassed() bool {
	for _, c := range b.checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// FailedCount returns the number of failing sub-checks added so far.
func (b *Builder) FailedCount() int {
	n := 0
	for _, c := range b.checks {
		if !c.Passed {
			n++
		}
	}
	return n
}

func (b *Builder) Pass(format string, args ...any) Verdict {
	return b.seal(Pass, KindNone, format, args)
}

func (b *Builder) Warn(format string, args ...any) Verdict {
	return b.seal(Warning, KindNone, format, args)
}

// Fail seals a failing verdict of the given kind.
func (b *Builder) Fail(kind Kind, format string, args ...any) Verdict {
	return b.seal(Fail, kind, format, args)
}

func (b *Builder) seal(outcome Outcome, kind Kind, format string, args []any) Verdict {
	return Verdict{
		check:    b.check,
		outcome:  outcome,
		kind:     kind,
		message:  fmt.Sprintf(format, args...),
		degraded: b.degraded,
		metrics:  cloneMetrics(b.metrics),
		checks:   cloneChecks(b.checks),
	}
}

// Invalid is shorthand for a verdict rejecting malformed input.
func Invalid(check, format string, args ...any) Verdict {
	return New(check).Fail(KindInvalidInput, format, args...)
}
