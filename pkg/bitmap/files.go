package bitmap

import (
	"os"

	"guicheck/pkg/images"
	"guicheck/pkg/verdict"
)

// CompareFiles compares two image files. The reference is loaded through
// the shared image cache since the same reference is usually compared many
// times; the actual screenshot is always read fresh. Load failures become
// invalid-input verdicts.
func CompareFiles(referencePath, actualPath string, opts CompareOptions) Result {
	reference, err := images.LoadImage(referencePath)
	if err != nil {
		return Result{Verdict: loadFailure("reference", err)}
	}

	data, err := os.ReadFile(actualPath)
	if err != nil {
		return Result{Verdict: loadFailure("actual", err)}
	}
	actual, err := images.Decode(data)
	if err != nil {
		return Result{Verdict: loadFailure("actual", err)}
	}

	return Compare(reference, actual, opts)
}

// CompareBytes compares two encoded images, e.g. a stored reference and the
// PNG returned by a browser screenshot call.
func CompareBytes(reference, actual []byte, opts CompareOptions) Result {
	ref, err := images.Decode(reference)
	if err != nil {
		return Result{Verdict: loadFailure("reference", err)}
	}
	act, err := images.Decode(actual)
	if err != nil {
		return Result{Verdict: loadFailure("actual", err)}
	}
	return Compare(ref, act, opts)
}

func loadFailure(which string, err error) verdict.Verdict {
	return verdict.New(CheckName).
		Metric("load_error", err.Error()).
		Fail(verdict.KindInvalidInput, "could not load %s image: %v", which, err)
}
