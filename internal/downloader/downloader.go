package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.Code, http.StatusText(e.Code))
}

// Progress receives byte counts while an image body is read.
type Progress interface {
	SetTotal(total int64)
	Update(done int64)
	MarkDone()
}

type Logger interface {
	Debugf(format string, args ...any)
}

type Downloader struct {
	client  *http.Client
	timeout time.Duration
	maxBody int64
	log     Logger
}

func New(c *http.Client, timeout time.Duration, log Logger) *Downloader {
	if c == nil {
		c = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Downloader{
		client:  c,
		timeout: timeout,
		maxBody: MaxBodyBytes,
		log:     log,
	}
}

// FetchPage returns the body of an HTML page.
func (d *Downloader) FetchPage(ctx context.Context, u string) (string, error) {
	body, err := d.get(ctx, u, "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8", nil)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// FetchImage returns the raw image bytes. The content type is not checked;
// deciding whether the bytes are a usable image is left to the decoder.
func (d *Downloader) FetchImage(ctx context.Context, u string, progress Progress) ([]byte, error) {
	return d.get(ctx, u, "image/avif,image/webp,image/apng,image/*,*/*;q=0.8", progress)
}

// get completes progress on every return path, failed requests included, so
// that a progress container waiting on it never blocks.
func (d *Downloader) get(ctx context.Context, u, accept string, progress Progress) ([]byte, error) {
	if progress != nil {
		defer progress.MarkDone()
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			d.debugf("failed to close response body for %s: %v\n", u, cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: u, Code: resp.StatusCode}
	}

	d.debugf("GET %s -> %d (%s, %d bytes)\n", u, resp.StatusCode, resp.Header.Get("Content-Type"), resp.ContentLength)

	if resp.ContentLength > d.maxBody {
		return nil, fmt.Errorf("%w: %d bytes announced", ErrBodyTooLarge, resp.ContentLength)
	}

	var onRead func(int64)
	if progress != nil {
		progress.SetTotal(resp.ContentLength)
		onRead = progress.Update
	}

	body, err := readBody(resp.Body, resp.ContentLength, d.maxBody, onRead)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

func (d *Downloader) debugf(format string, args ...any) {
	if d.log != nil {
		d.log.Debugf(format, args...)
	}
}
