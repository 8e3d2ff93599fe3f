package apod

import (
	"io"
	"strings"

	"github.com/brogergvhs/apodd/internal/util"
)

const statusSaving = "Saving..."

// SaveCurrentImage encodes the loaded image as PNG into dir, replacing any
// existing file of the same name, and returns the written path. Nothing is
// written unless a valid image is loaded.
func (f *Fetcher) SaveCurrentImage(dir string) (string, error) {
	snap := f.Snapshot()
	if !snap.ValidImage || snap.ImageData == nil {
		return "", f.saveFailed(newError(ErrNoImage, "", "Unable to save, no valid image was downloaded", nil))
	}

	if strings.TrimSpace(dir) == "" {
		return "", f.saveFailed(newError(ErrSave, "", "Unable to save image: save directory is not configured", nil))
	}

	path := PNGPath(dir, snap.Filename)
	f.setStatus(statusSaving)
	f.debugf("saving %s\n", path)

	err := util.WriteFile(path, func(w io.Writer) error {
		return encodePNG(w, snap.ImageData)
	})
	if err != nil {
		return "", f.saveFailed(kindErrorf(ErrSave, err, "Unable to save image: %v", err))
	}

	msg := "Saved to: " + path
	f.setStatus(msg)
	f.report(msg)

	return path, nil
}

func (f *Fetcher) saveFailed(e *Error) error {
	f.setStatus(e.Status)
	f.debugf("save failed: %s\n", e.Message)
	f.report(e.Message)

	return e
}

func (f *Fetcher) setStatus(s string) {
	f.update(func(c *ImageContext) {
		c.Status = s
	})
}
