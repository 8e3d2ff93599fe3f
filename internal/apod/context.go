package apod

import (
	"image"
	"path/filepath"
	"strings"
)

const loadingTitle = "Loading..."

// ImageContext is the currently loaded picture and its metadata.
// ImageData is non-nil only while ValidImage is true.
type ImageContext struct {
	Title      string
	Filename   string
	Status     string
	ValidImage bool
	ImageData  image.Image

	SourceURL string
	Bytes     int64
}

func NewImageContext() ImageContext {
	return ImageContext{Title: loadingTitle}
}

// Dimensions returns the pixel size of the decoded image, or 0x0.
func (c ImageContext) Dimensions() (int, int) {
	if c.ImageData == nil {
		return 0, 0
	}

	b := c.ImageData.Bounds()
	return b.Dx(), b.Dy()
}

// FilenameFromPath returns the last '/'-separated segment of an extracted
// image path or URL.
func FilenameFromPath(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}

	return p
}

// PNGPath is the file SaveCurrentImage writes for filename inside dir.
func PNGPath(dir, filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if base == "" {
		base = "apod"
	}

	return filepath.Join(dir, base+".png")
}
