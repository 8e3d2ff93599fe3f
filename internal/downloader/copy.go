package downloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// MaxBodyBytes caps a single response body held in memory.
const MaxBodyBytes = 128 << 20

var ErrBodyTooLarge = errors.New("response body too large")

// readBody reads src into memory, reporting the running byte count. sizeHint
// presizes the buffer when the server announced a length.
func readBody(src io.Reader, sizeHint, limit int64, progress func(done int64)) ([]byte, error) {
	var buf bytes.Buffer
	if sizeHint > 0 && sizeHint <= limit {
		buf.Grow(int(sizeHint))
	}

	chunk := make([]byte, 32*1024)
	var total int64
	for {
		nr, er := src.Read(chunk)

		if nr > 0 {
			if total+int64(nr) > limit {
				return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, limit)
			}

			buf.Write(chunk[:nr])
			total += int64(nr)
			if progress != nil {
				progress(total)
			}
		}

		if er != nil {
			if er == io.EOF {
				break
			}
			return nil, er
		}
	}

	return buf.Bytes(), nil
}
