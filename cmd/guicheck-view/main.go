// Command guicheck-view shows a reference image, a screenshot and their
// diff side by side with the comparison verdict.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"guicheck/pkg/bitmap"
	"guicheck/pkg/config"
	"guicheck/pkg/images"
)

func main() {
	configPath := flag.String("config", "", "tolerances YAML file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: guicheck-view [flags] <reference.png> <actual.png>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	refPath, actPath := flag.Arg(0), flag.Arg(1)

	tol := config.Default()
	if *configPath != "" {
		var err error
		if tol, err = config.Load(*configPath); err != nil {
			log.Fatalf("guicheck-view: %v", err)
		}
	}
	opts := bitmap.OptionsFrom(tol)
	opts.DiffImage = true

	a := app.New()
	w := a.NewWindow("guicheck")
	w.Resize(fyne.NewSize(1280, 720))

	refImg := pane()
	actImg := pane()
	diffImg := pane()
	status := widget.NewLabel("Comparing...")
	status.Wrapping = fyne.TextWrapWord

	// compare runs off the UI goroutine and hands widget updates to fyne.Do.
	compare := func() {
		// Either file may have been regenerated since the last run.
		images.Purge()
		res := bitmap.CompareFiles(refPath, actPath, opts)
		ref, _ := load(refPath)
		act, _ := load(actPath)
		v := res.Verdict
		log.Printf("%s: %s", actPath, v)

		fyne.Do(func() {
			setImage(refImg, ref)
			setImage(actImg, act)
			setImage(diffImg, res.Diff)
			status.SetText(fmt.Sprintf("%s: %s", v.Outcome(), v.Message()))
			w.SetTitle(fmt.Sprintf("guicheck - %s (%s)", actPath, v.Outcome()))
		})
	}

	rerun := widget.NewButton("Compare again", func() { go compare() })
	panes := container.NewGridWithColumns(3,
		titled("Reference", refImg),
		titled("Actual", actImg),
		titled("Difference", diffImg),
	)
	bottom := container.NewBorder(nil, nil, nil, rerun, status)
	w.SetContent(container.NewBorder(nil, bottom, nil, nil, panes))

	go compare()
	w.ShowAndRun()
}

func pane() *canvas.Image {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	img.FillMode = canvas.ImageFillContain
	return img
}

func titled(title string, img *canvas.Image) fyne.CanvasObject {
	return container.NewBorder(widget.NewLabel(title), nil, nil, nil, img)
}

func load(path string) (image.Image, error) {
	img, err := images.LoadImage(path)
	if err != nil {
		log.Printf("load %s: %v", path, err)
	}
	return img, err
}

func setImage(dst *canvas.Image, img image.Image) {
	if img == nil {
		return
	}
	dst.Image = img
	dst.Refresh()
}
