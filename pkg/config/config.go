// Package config holds the numeric tolerances the analyzers compare against.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Documented defaults. There is no other implicit configuration.
const (
	DefaultSimilarityThreshold = 0.95
	DefaultPixelTolerance      = 5
	DefaultMinContrastRatio    = 4.5
	DefaultLargeTextRatio      = 3.0
	DefaultAlignmentTolerance  = 5
	DefaultPositionTolerance   = 5
	DefaultSizeTolerance       = 5
)

// ErrInvalid is returned when a tolerance is out of range.
var ErrInvalid = errors.New("invalid tolerance")

// Tolerances is read-only while a comparison runs; analyzers take it by value.
type Tolerances struct {
	// Screenshot comparison
	SimilarityThreshold float64 `yaml:"similarity_threshold" json:"similarity_threshold"` // 0..1
	PixelTolerance      int     `yaml:"pixel_tolerance" json:"pixel_tolerance"`           // max channel delta, 0..255

	// Accessibility
	MinContrastRatio float64 `yaml:"min_contrast_ratio" json:"min_contrast_ratio"`
	LargeTextRatio   float64 `yaml:"large_text_ratio" json:"large_text_ratio"`

	// Layout, all in device pixels
	AlignmentTolerance float64 `yaml:"alignment_tolerance" json:"alignment_tolerance"`
	PositionTolerance  float64 `yaml:"position_tolerance" json:"position_tolerance"`
	SizeTolerance      float64 `yaml:"size_tolerance" json:"size_tolerance"`
}

// Default returns the documented default tolerances.
func Default() Tolerances {
	return Tolerances{
		SimilarityThreshold: DefaultSimilarityThreshold,
		PixelTolerance:      DefaultPixelTolerance,
		MinContrastRatio:    DefaultMinContrastRatio,
		LargeTextRatio:      DefaultLargeTextRatio,
		AlignmentTolerance:  DefaultAlignmentTolerance,
		PositionTolerance:   DefaultPositionTolerance,
		SizeTolerance:       DefaultSizeTolerance,
	}
}

// Validate checks every field and reports the first out-of-range value.
// The comparisons are written so that NaN fails them.
func (t Tolerances) Validate() error {
	switch {
	case !(t.SimilarityThreshold >= 0 && t.SimilarityThreshold <= 1):
		return fmt.Errorf("%w: similarity_threshold %v not in [0,1]", ErrInvalid, t.SimilarityThreshold)
	case t.PixelTolerance < 0 || t.PixelTolerance > 255:
		return fmt.Errorf("%w: pixel_tolerance %d not in [0,255]", ErrInvalid, t.PixelTolerance)
	case !(t.MinContrastRatio >= 1):
		return fmt.Errorf("%w: min_contrast_ratio %v below 1", ErrInvalid, t.MinContrastRatio)
	case !(t.LargeTextRatio >= 1):
		return fmt.Errorf("%w: large_text_ratio %v below 1", ErrInvalid, t.LargeTextRatio)
	case !(t.AlignmentTolerance >= 0):
		return fmt.Errorf("%w: alignment_tolerance %v is negative", ErrInvalid, t.AlignmentTolerance)
	case !(t.PositionTolerance >= 0):
		return fmt.Errorf("%w: position_tolerance %v is negative", ErrInvalid, t.PositionTolerance)
	case !(t.SizeTolerance >= 0):
		return fmt.Errorf("%w: size_tolerance %v is negative", ErrInvalid, t.SizeTolerance)
	}
	return nil
}

// Parse decodes YAML over the defaults, so omitted keys keep their default
// values, then validates the result.
func Parse(data []byte) (Tolerances, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tolerances{}, fmt.Errorf("parse tolerances: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tolerances{}, err
	}
	return t, nil
}

// Load reads tolerances from a YAML file. A missing file yields the defaults.
func Load(path string) (Tolerances, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Tolerances{}, fmt.Errorf("read tolerances: %w", err)
	}
	return Parse(data)
}

// Save writes t as YAML.
func (t Tolerances) Save(path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode tolerances: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write tolerances: %w", err)
	}
	return nil
}
