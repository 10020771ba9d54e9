package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d := Default()
	assert.Equal(t, 0.95, d.SimilarityThreshold)
	assert.Equal(t, 5, d.PixelTolerance)
	assert.Equal(t, 4.5, d.MinContrastRatio)
	assert.Equal(t, 3.0, d.LargeTextRatio)
	assert.Equal(t, 5.0, d.AlignmentTolerance)
	assert.NoError(t, d.Validate())
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	tol, err := Parse([]byte("similarity_threshold: 0.99\npixel_tolerance: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.99, tol.SimilarityThreshold)
	assert.Equal(t, 0, tol.PixelTolerance, "explicit zero must survive")
	assert.Equal(t, 4.5, tol.MinContrastRatio)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"threshold above one", "similarity_threshold: 1.5"},
		{"negative pixel tolerance", "pixel_tolerance: -1"},
		{"contrast below one", "min_contrast_ratio: 0.5"},
		{"large text below one", "large_text_ratio: 0"},
		{"negative alignment", "alignment_tolerance: -2"},
		{"NaN alignment", "alignment_tolerance: .nan"},
		{"NaN threshold", "similarity_threshold: .nan"},
		{"NaN position", "position_tolerance: .NaN"},
		{"NaN size", "size_tolerance: .NAN"},
		{"NaN contrast", "min_contrast_ratio: .nan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("similarity_threshold: [1, 2"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	tol, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), tol)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tol.yaml")
	want := Default()
	want.AlignmentTolerance = 1.5
	want.LargeTextRatio = 3.5
	require.NoError(t, want.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "alignment_tolerance: 1.5")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
