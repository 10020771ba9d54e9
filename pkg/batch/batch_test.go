package batch

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"guicheck/pkg/bitmap"
	"guicheck/pkg/verdict"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fill(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRunner_PreservesOrder(t *testing.T) {
	white := fill(8, 8, color.White)
	black := fill(8, 8, color.Black)

	var jobs []Job
	for i := 0; i < 20; i++ {
		actual := white
		if i%3 == 0 {
			actual = black
		}
		jobs = append(jobs, Job{
			Name:      fmt.Sprintf("page-%02d", i),
			Reference: white,
			Actual:    actual,
			Options:   bitmap.DefaultOptions(),
		})
	}

	results, err := Runner{Limit: 4}.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))

	for i, r := range results {
		assert.Equal(t, jobs[i].Name, r.Name)
		if i%3 == 0 {
			assert.Equal(t, verdict.Fail, r.Verdict.Outcome(), r.Name)
		} else {
			assert.Equal(t, verdict.Pass, r.Verdict.Outcome(), r.Name)
		}
	}
}

func TestRunner_MatchesSequential(t *testing.T) {
	ref := fill(6, 6, color.RGBA{40, 80, 120, 255})
	act := fill(9, 5, color.RGBA{44, 80, 118, 255})
	jobs := []Job{{Name: "a", Reference: ref, Actual: act, Options: bitmap.DefaultOptions()}}

	results, err := Runner{}.Run(context.Background(), jobs)
	require.NoError(t, err)

	want := bitmap.Compare(ref, act, bitmap.DefaultOptions()).Verdict.Record()
	assert.Equal(t, want, results[0].Verdict.Record())
}

func TestRunner_MissingFilesAreVerdicts(t *testing.T) {
	jobs := []Job{{Name: "gone", ReferencePath: "/nonexistent/ref.png", ActualPath: "/nonexistent/act.png", Options: bitmap.DefaultOptions()}}

	results, err := Runner{Limit: 1}.Run(context.Background(), jobs)
	require.NoError(t, err)
	assert.True(t, results[0].Verdict.InvalidInput())
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{{Name: "x", Reference: fill(2, 2, color.White), Actual: fill(2, 2, color.White)}}
	_, err := Runner{Limit: 2}.Run(ctx, jobs)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Empty(t *testing.T) {
	results, err := Runner{}.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
