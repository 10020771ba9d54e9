package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"guicheck/pkg/batch"
	"guicheck/pkg/bitmap"
	"guicheck/pkg/config"
	"guicheck/pkg/images"
)

// Promotes screenshots to reference images after an intentional UI change.
func main() {
	all := flag.Bool("all", false, "update every reference, not only failing ones")
	dryRun := flag.Bool("n", false, "list the references that would change without writing them")
	configPath := flag.String("config", "", "tolerances YAML file")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Reference Image Updater for guicheck")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  update-references [flags] <manifest.yaml>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Flags:")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	tol := config.Default()
	if *configPath != "" {
		var err error
		if tol, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	n, err := updateReferences(context.Background(), flag.Arg(0), tol, *all, *dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *dryRun {
		fmt.Printf("%d reference images would be updated\n", n)
		return
	}
	fmt.Printf("✓ %d reference images updated\n", n)
}

// updateReferences compares every manifest pair and overwrites the
// references whose comparison did not pass, or all of them. A missing
// reference does not pass and so gets created. It returns the number of
// references selected.
func updateReferences(ctx context.Context, manifestPath string, tol config.Tolerances, all, dryRun bool) (int, error) {
	m, err := batch.LoadManifest(manifestPath)
	if err != nil {
		return 0, err
	}

	opts := bitmap.OptionsFrom(tol)
	results, err := batch.Runner{}.Run(ctx, m.Jobs(opts))
	if err != nil {
		return 0, err
	}

	updated := 0
	for i, r := range results {
		e := m.Entries[i]
		if !all && r.Verdict.Passed() {
			continue
		}
		fmt.Printf("Updating: %s (%s)\n", e.Reference, r.Verdict.Message())
		updated++
		if dryRun {
			continue
		}
		if err := images.UpdateReference(e.Actual, e.Reference); err != nil {
			return updated, fmt.Errorf("failed to update %s: %w", e.Reference, err)
		}
	}
	return updated, nil
}
