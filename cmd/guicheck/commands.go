package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"guicheck/pkg/batch"
	"guicheck/pkg/bitmap"
	"guicheck/pkg/contrast"
	"guicheck/pkg/geometry"
)

var errArgs = errors.New("missing required arguments")

func runImage(e *env, args []string) error {
	var configPath, format, ref, act, diff, resize string
	var warnOnResize bool
	var fuzzy int
	var maxDiff float64
	fs := e.flags("image", &configPath, &format)
	fs.IntVar(&fuzzy, "fuzzy", 0, "pixel shift radius ignored in the different-pixel count")
	fs.Float64Var(&maxDiff, "max-diff", 0, "also fail when more than this percentage of pixels differ (0 = off)")
	fs.StringVar(&ref, "ref", "", "reference image path")
	fs.StringVar(&act, "actual", "", "actual screenshot path")
	fs.StringVar(&diff, "diff", "", "write a diff PNG to this path")
	fs.StringVar(&resize, "resize", string(bitmap.ResizeActual), "on size mismatch resize: actual, reference or never")
	fs.BoolVar(&warnOnResize, "warn-on-resize", false, "downgrade a passing resized comparison to a warning")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if ref == "" || act == "" {
		fs.Usage()
		return errArgs
	}
	if err := e.setup("image comparison", configPath, format); err != nil {
		return err
	}

	opts := bitmap.OptionsFrom(e.tol)
	opts.Resize = bitmap.ResizePolicy(resize)
	opts.WarnOnResize = warnOnResize
	opts.FuzzyRadius = fuzzy
	opts.MaxDifferentPercent = maxDiff
	opts.DiffImage = diff != ""

	res := bitmap.CompareFiles(ref, act, opts)
	if diff != "" && res.Diff != nil {
		if err := res.SaveDiff(diff); err != nil {
			return err
		}
		e.logger.Printf("wrote diff to %s", diff)
	}
	e.report.Add(act, res.Verdict)
	return nil
}

func runBatch(e *env, args []string) error {
	var configPath, format string
	var workers int
	fs := e.flags("batch", &configPath, &format)
	fs.IntVar(&workers, "workers", 0, "concurrent comparisons (0 = one per CPU)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errArgs
	}
	if err := e.setup("batch comparison", configPath, format); err != nil {
		return err
	}
	m, err := batch.LoadManifest(fs.Arg(0))
	if err != nil {
		return err
	}
	jobs := m.Jobs(bitmap.OptionsFrom(e.tol))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e.logger.Printf("comparing %d pairs", len(jobs))
	results, err := batch.Runner{Limit: workers}.Run(ctx, jobs)
	if err != nil {
		return err
	}
	for i, r := range results {
		if d := m.Entries[i].Diff; d != "" && r.Diff != nil {
			if err := r.SaveDiff(d); err != nil {
				return err
			}
		}
		e.report.Add(r.Name, r.Verdict)
	}
	return nil
}

func runContrast(e *env, args []string) error {
	var configPath, format, fg, bg, fontSize, fontWeight string
	var large bool
	fs := e.flags("contrast", &configPath, &format)
	fs.StringVar(&fg, "fg", "", "foreground color, e.g. rgb(0, 0, 0) or #333333")
	fs.StringVar(&bg, "bg", "", "background color")
	fs.BoolVar(&large, "large", false, "apply the large-text threshold")
	fs.StringVar(&fontSize, "font-size", "", "computed font size (e.g. 24px); sets -large when it qualifies")
	fs.StringVar(&fontWeight, "font-weight", "", "computed font weight, used with -font-size")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fg == "" || bg == "" {
		fs.Usage()
		return errArgs
	}
	if err := e.setup("color contrast", configPath, format); err != nil {
		return err
	}
	if fontSize != "" {
		large = large || contrast.IsLargeText(fontSize, fontWeight)
	}
	e.report.Add(fg+" on "+bg, contrast.Check(fg, bg, large, contrast.ThresholdsFrom(e.tol)))
	return nil
}

func runAlign(e *env, args []string) error {
	var configPath, format, mode string
	var columns int
	fs := e.flags("align", &configPath, &format)
	fs.StringVar(&mode, "mode", string(geometry.Horizontal), "horizontal, vertical or grid")
	fs.IntVar(&columns, "columns", 0, "boxes per row in grid mode")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errArgs
	}
	m, err := geometry.ParseMode(mode)
	if err != nil {
		return err
	}
	if err := e.setup("alignment", configPath, format); err != nil {
		return err
	}
	boxes, err := loadBoxes(fs.Arg(0))
	if err != nil {
		return err
	}
	e.report.Add(fs.Arg(0), geometry.Align(boxes, m, e.tol.AlignmentTolerance, columns))
	return nil
}

func runOverlap(e *env, args []string) error {
	var configPath, format string
	fs := e.flags("overlap", &configPath, &format)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errArgs
	}
	if err := e.setup("overlap", configPath, format); err != nil {
		return err
	}
	boxes, err := loadBoxes(fs.Arg(0))
	if err != nil {
		return err
	}
	e.report.Add(fs.Arg(0), geometry.CheckOverlaps(boxes))
	return nil
}

func runLayout(e *env, args []string) error {
	var configPath, format string
	fs := e.flags("layout", &configPath, &format)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errArgs
	}
	if err := e.setup("layout", configPath, format); err != nil {
		return err
	}
	var lf layoutFile
	if err := readYAML(fs.Arg(0), &lf); err != nil {
		return err
	}
	for i, el := range lf.Elements {
		// Unlabeled boxes get their index so the entry and message agree.
		if el.Box.Label == "" {
			el.Box.Label = el.Box.Name(i)
		}
		name := el.Box.Label
		if el.Position != nil {
			e.report.Add(name, geometry.CheckPosition(el.Box, *el.Position, e.tol.PositionTolerance))
		}
		if el.Size != nil {
			e.report.Add(name, geometry.CheckSize(el.Box, *el.Size, e.tol.SizeTolerance))
		}
	}
	return nil
}

func runViewport(e *env, args []string) error {
	var configPath, format, name string
	var width, height, pageWidth float64
	fs := e.flags("viewport", &configPath, &format)
	fs.StringVar(&name, "viewport", "desktop", "mobile, tablet, desktop or a custom name with -width")
	fs.Float64Var(&width, "width", 0, "viewport width in px (overrides the named size)")
	fs.Float64Var(&height, "height", 0, "viewport height in px (overrides the named size)")
	fs.Float64Var(&pageWidth, "page-width", 0, "document scroll width in px; 0 skips the horizontal scroll check")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errArgs
	}

	vp := geometry.Viewport{Name: name}
	for _, d := range geometry.DefaultViewports() {
		if d.Name == name {
			vp = d
		}
	}
	if width > 0 {
		vp.Width = width
	}
	if height > 0 {
		vp.Height = height
	}
	vp.PageWidth = pageWidth
	if vp.Width == 0 {
		return fmt.Errorf("unknown viewport %q: give -width", name)
	}

	if err := e.setup("viewport "+name, configPath, format); err != nil {
		return err
	}
	boxes, err := loadBoxes(fs.Arg(0))
	if err != nil {
		return err
	}
	e.report.Add(fs.Arg(0), geometry.CheckViewport(boxes, vp))
	return nil
}
