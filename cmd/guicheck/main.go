// Command guicheck runs the GUI checks against screenshots, colors and
// element bounding boxes and prints a report.
//
// Usage:
//
//	guicheck <command> [flags] [args]
//
// Commands: image, batch, contrast, align, overlap, layout, viewport.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"guicheck/pkg/config"
	"guicheck/pkg/report"
	"guicheck/pkg/verdict"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

type command struct {
	name  string
	usage string
	run   func(env *env, args []string) error
}

var commands = []command{
	{"image", "compare a screenshot against a reference image", runImage},
	{"batch", "compare every pair listed in a manifest", runBatch},
	{"contrast", "check foreground/background color contrast", runContrast},
	{"align", "check alignment of boxes read from a file", runAlign},
	{"overlap", "report overlapping boxes read from a file", runOverlap},
	{"layout", "check element positions and sizes read from a file", runLayout},
	{"viewport", "check boxes against a viewport's width and touch targets", runViewport},
}

// env carries the settings shared by every command.
type env struct {
	stdout io.Writer
	logger *log.Logger
	tol    config.Tolerances
	format report.Format
	report *report.Report
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: guicheck <command> [flags] [args]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(w, "\nRun 'guicheck <command> -h' for command flags.\n")
}

// run executes one command and returns the process exit code: 0 when every
// check passed or warned, 1 when any failed, 2 on usage or IO errors.
func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "guicheck: ", 0)
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		if args[0] != "-h" && args[0] != "help" {
			logger.Printf("unknown command %q", args[0])
		}
		usage(stderr)
		return exitUsage
	}

	e := &env{stdout: stdout, logger: logger}
	if err := cmd.run(e, args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			logger.Printf("%s: %v", cmd.name, err)
		}
		return exitUsage
	}
	if e.report == nil {
		return exitOK
	}
	if err := e.report.Write(stdout, e.format); err != nil {
		logger.Printf("write report: %v", err)
		return exitUsage
	}
	if e.report.Outcome() == verdict.Fail {
		return exitFailed
	}
	return exitOK
}

// flags returns a FlagSet with the common -config and -format flags. Call
// e.setup after parsing.
func (e *env) flags(name string, configPath, format *string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.logger.Writer())
	fs.StringVar(configPath, "config", "", "tolerances YAML file (defaults when empty or missing)")
	fs.StringVar(format, "format", string(report.Console), "report format: console, json, yaml or html")
	return fs
}

func (e *env) setup(title, configPath, format string) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	e.format = f

	e.tol = config.Default()
	if configPath != "" {
		t, err := config.Load(configPath)
		if err != nil {
			return err
		}
		e.tol = t
		e.logger.Printf("loaded tolerances from %s", configPath)
	}
	e.report = report.New(title)
	e.report.SetConfig(e.tol)
	return nil
}
