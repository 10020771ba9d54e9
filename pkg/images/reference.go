package images

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

// UpdateReference replaces the reference image at referencePath with the
// screenshot at actualPath, re-encoded as PNG. Parent directories are
// created as needed and the shared cache forgets the old reference.
func UpdateReference(actualPath, referencePath string) error {
	img, err := loadFile(actualPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(referencePath), 0755); err != nil {
		return fmt.Errorf("create reference dir: %w", err)
	}
	if err := gg.SavePNG(referencePath, img); err != nil {
		return fmt.Errorf("write reference %s: %w", referencePath, err)
	}
	globalCache.entries.Remove(referencePath)
	return nil
}
