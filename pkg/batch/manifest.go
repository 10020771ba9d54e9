package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"guicheck/pkg/bitmap"
)

// Entry is one reference/screenshot pair in a manifest.
type Entry struct {
	Name      string `yaml:"name,omitempty"`
	Reference string `yaml:"reference"`
	Actual    string `yaml:"actual"`
	// Diff, when set, is where a diff PNG is written.
	Diff string `yaml:"diff,omitempty"`
}

// Manifest lists the pairs of a batch run. Relative paths in the file are
// resolved against the manifest's directory when loaded.
type Manifest struct {
	Entries []Entry `yaml:"jobs"`
}

// LoadManifest reads a YAML (or JSON) manifest.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range m.Entries {
		e := &m.Entries[i]
		if e.Reference == "" || e.Actual == "" {
			return m, fmt.Errorf("manifest %s: job %d needs reference and actual", path, i)
		}
		if e.Name == "" {
			e.Name = filepath.Base(e.Actual)
		}
		e.Reference = resolve(dir, e.Reference)
		e.Actual = resolve(dir, e.Actual)
		if e.Diff != "" {
			e.Diff = resolve(dir, e.Diff)
		}
	}
	return m, nil
}

// Jobs turns the entries into path-based jobs sharing opts. A diff image is
// requested only for entries that name a diff path.
func (m Manifest) Jobs(opts bitmap.CompareOptions) []Job {
	jobs := make([]Job, len(m.Entries))
	for i, e := range m.Entries {
		o := opts
		o.DiffImage = e.Diff != ""
		jobs[i] = Job{Name: e.Name, ReferencePath: e.Reference, ActualPath: e.Actual, Options: o}
	}
	return jobs
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
