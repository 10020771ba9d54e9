// Package images turns screenshot bytes, files and data URIs into
// image.Image values for the bitmap analyzer.
package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultCacheSize bounds how many decoded reference images are kept.
const DefaultCacheSize = 64

// ErrEmpty is returned when there are no bytes to decode.
var ErrEmpty = errors.New("empty image data")

// Decode decodes PNG, JPEG, GIF, BMP or WebP bytes.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// IsDataURI reports whether uri is a data: URI.
func IsDataURI(uri string) bool {
	return strings.HasPrefix(uri, "data:")
}

// LoadImageFromDataURI decodes a data:image/...;base64,... URI, as produced
// by browser screenshot APIs.
func LoadImageFromDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, fmt.Errorf("not a data URI")
	}
	header, payload, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI: missing ','")
	}

	var data []byte
	if strings.HasSuffix(header, ";base64") {
		var err error
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode base64 payload: %w", err)
		}
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("unescape payload: %w", err)
		}
		data = []byte(unescaped)
	}
	return Decode(data)
}

// Cache holds decoded images keyed by path or data URI. It is safe for
// concurrent use; the LRU does its own locking.
type Cache struct {
	entries *lru.Cache[string, image.Image]
}

// NewCache returns a cache holding at most size images.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[string, image.Image](size)
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Load returns the image at src, a filesystem path or a data URI, decoding
// it on first use.
func (c *Cache) Load(src string) (image.Image, error) {
	if img, ok := c.entries.Get(src); ok {
		return img, nil
	}

	var (
		img image.Image
		err error
	)
	if IsDataURI(src) {
		img, err = LoadImageFromDataURI(src)
	} else {
		img, err = loadFile(src)
	}
	if err != nil {
		return nil, err
	}

	c.entries.Add(src, img)
	return img, nil
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached image, e.g. after references were regenerated.
func (c *Cache) Purge() {
	c.entries.Purge()
}

func loadFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

var globalCache = func() *Cache {
	c, err := NewCache(DefaultCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}()

// LoadImage loads an image through the shared cache.
func LoadImage(src string) (image.Image, error) {
	return globalCache.Load(src)
}

// GetImageDimensions returns the width and height of the image at src.
func GetImageDimensions(src string) (width, height int, err error) {
	img, err := LoadImage(src)
	if err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// Purge empties the shared cache.
func Purge() {
	globalCache.Purge()
}
