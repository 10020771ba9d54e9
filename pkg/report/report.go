// Package report aggregates verdicts from a run and renders them for people
// and machines. It only reads the public Record of each verdict.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"guicheck/pkg/config"
	"guicheck/pkg/verdict"
)

// Format selects a renderer.
type Format string

const (
	Console Format = "console"
	JSON    Format = "json"
	YAML    Format = "yaml"
	HTML    Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case Console, JSON, YAML, HTML:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// Entry is one named verdict in a report.
type Entry struct {
	Name   string         `json:"name" yaml:"name"`
	Result verdict.Record `json:"result" yaml:"result"`
}

// Summary counts outcomes across a run.
type Summary struct {
	Total       int             `json:"total" yaml:"total"`
	Passed      int             `json:"passed" yaml:"passed"`
	Failed      int             `json:"failed" yaml:"failed"`
	Warnings    int             `json:"warnings" yaml:"warnings"`
	SuccessRate float64         `json:"success_rate" yaml:"success_rate"`
	Overall     verdict.Outcome `json:"overall" yaml:"overall"`
}

// Report is the outcome of one run. Config holds the tolerances the run
// used, when known.
type Report struct {
	RunID     string             `json:"run_id" yaml:"run_id"`
	Timestamp time.Time          `json:"timestamp" yaml:"timestamp"`
	Title     string             `json:"title,omitempty" yaml:"title,omitempty"`
	Summary   Summary            `json:"summary" yaml:"summary"`
	Entries   []Entry            `json:"entries" yaml:"entries"`
	Config    *config.Tolerances `json:"config,omitempty" yaml:"config,omitempty"`

	verdicts []verdict.Verdict
}

// New starts an empty report with a fresh run ID.
func New(title string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Title:     title,
		Entries:   []Entry{},
	}
}

// SetConfig records the tolerances the run used.
func (r *Report) SetConfig(t config.Tolerances) {
	r.Config = &t
}

// Add appends a verdict under name and refreshes the summary.
func (r *Report) Add(name string, v verdict.Verdict) {
	r.Entries = append(r.Entries, Entry{Name: name, Result: v.Record()})
	r.verdicts = append(r.verdicts, v)
	r.Summary = Summarize(r.verdicts)
}

// Outcome is the overall outcome of the run.
func (r *Report) Outcome() verdict.Outcome {
	return r.Summary.Overall
}

// Summarize counts the outcomes of vs. SuccessRate is the passed share in
// percent; an empty run has a rate of 0.
func Summarize(vs []verdict.Verdict) Summary {
	s := Summary{Total: len(vs), Overall: verdict.Overall(vs)}
	for _, v := range vs {
		switch v.Outcome() {
		case verdict.Pass:
			s.Passed++
		case verdict.Fail:
			s.Failed++
		case verdict.Warning:
			s.Warnings++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Passed) / float64(s.Total) * 100
	}
	return s
}

// Write renders r to w in the given format.
func (r *Report) Write(w io.Writer, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return enc.Close()
	case HTML:
		return r.writeHTML(w)
	case Console, "":
		return r.writeConsole(w)
	}
	return fmt.Errorf("unknown report format %q", f)
}

func symbol(o verdict.Outcome) string {
	switch o {
	case verdict.Pass:
		return "✓"
	case verdict.Fail:
		return "✗"
	}
	return "!"
}

func (r *Report) writeConsole(w io.Writer) error {
	ew := &errWriter{w: w}
	if r.Title != "" {
		ew.printf("%s\n", r.Title)
	}
	ew.printf("run %s at %s\n\n", r.RunID, r.Timestamp.Format(time.RFC3339))

	for _, e := range r.Entries {
		ew.printf("%s %s [%s] %s\n", symbol(e.Result.Outcome), e.Name, e.Result.Check, e.Result.Message)
		for _, c := range e.Result.Checks {
			if c.Passed {
				continue
			}
			where := ""
			if c.Row != nil {
				where = fmt.Sprintf(" row %d", *c.Row)
			}
			if c.Column != nil {
				where = fmt.Sprintf(" column %d", *c.Column)
			}
			ew.printf("    - %s%s: %s\n", c.Name, where, c.Message)
		}
	}

	s := r.Summary
	ew.printf("\n%d checks: %d passed, %d failed, %d warnings (%.1f%% success)\n",
		s.Total, s.Passed, s.Failed, s.Warnings, s.SuccessRate)
	ew.printf("overall: %s\n", s.Overall)
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
