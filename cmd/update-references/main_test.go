package main

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guicheck/pkg/bitmap"
	"guicheck/pkg/config"
)

func writePNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	dc := gg.NewContext(6, 6)
	dc.SetColor(c)
	dc.Clear()
	require.NoError(t, dc.SavePNG(path))
}

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "refs/same.png"), color.White)
	writePNG(t, filepath.Join(dir, "out/same.png"), color.White)
	writePNG(t, filepath.Join(dir, "refs/changed.png"), color.White)
	writePNG(t, filepath.Join(dir, "out/changed.png"), color.Black)
	writePNG(t, filepath.Join(dir, "out/new.png"), color.Black)
	manifest := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`jobs:
  - {reference: refs/same.png, actual: out/same.png}
  - {reference: refs/changed.png, actual: out/changed.png}
  - {reference: refs/new.png, actual: out/new.png}
`), 0o644))
	return manifest
}

func TestUpdateReferences_FailingOnly(t *testing.T) {
	manifest := setup(t)
	dir := filepath.Dir(manifest)

	n, err := updateReferences(context.Background(), manifest, config.Default(), false, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.FileExists(t, filepath.Join(dir, "refs/new.png"))

	res := bitmap.CompareFiles(filepath.Join(dir, "refs/changed.png"), filepath.Join(dir, "out/changed.png"), bitmap.DefaultOptions())
	assert.True(t, res.Verdict.Passed(), res.Verdict.Message())

	n, err = updateReferences(context.Background(), manifest, config.Default(), false, false)
	require.NoError(t, err)
	assert.Zero(t, n, "everything matches after the update")
}

func TestUpdateReferences_DryRunAndAll(t *testing.T) {
	manifest := setup(t)
	dir := filepath.Dir(manifest)

	n, err := updateReferences(context.Background(), manifest, config.Default(), true, true)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoFileExists(t, filepath.Join(dir, "refs/new.png"))
}
