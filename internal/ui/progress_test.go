package ui

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brogergvhs/apodd/internal/apod"
	"github.com/brogergvhs/apodd/internal/downloader"
)

// closeWithin fails the test when pm.Close does not return in time.
func closeWithin(t *testing.T, pm *MPBProgressManager, d time.Duration) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		pm.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("Close still blocked after %s", d)
	}
}

func progressFetcher(t *testing.T, pm *MPBProgressManager, imageStatus int) *apod.Fetcher {
	t.Helper()

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, solid(4, 4)); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/astropix.html":
			_, _ = w.Write([]byte(`<b>Nebula</b><br>
<br> <a href="image/n.png"> <img src="image/n_sm.png">`))
		case "/image/n.png":
			if imageStatus != http.StatusOK {
				w.WriteHeader(imageStatus)
				return
			}
			_, _ = w.Write(pngBuf.Bytes())
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	f, err := apod.NewFetcher(apod.Options{
		BaseURL:     server.URL,
		Source:      downloader.New(server.Client(), time.Second, nil),
		NewProgress: pm.Factory("image"),
	})
	if err != nil {
		t.Fatalf("NewFetcher returned error: %v", err)
	}

	return f
}

func TestProgress_CloseReturnsAfterImageFailure(t *testing.T) {
	pm := NewProgressManager(io.Discard)
	f := progressFetcher(t, pm, http.StatusNotFound)

	err := f.FetchLatest(context.Background())
	if !errors.Is(err, apod.ErrNetwork) {
		t.Fatalf("FetchLatest err = %v, want ErrNetwork", err)
	}

	closeWithin(t, pm, 3*time.Second)
}

func TestProgress_CloseReturnsAfterSuccess(t *testing.T) {
	pm := NewProgressManager(io.Discard)
	f := progressFetcher(t, pm, http.StatusOK)

	if err := f.FetchLatest(context.Background()); err != nil {
		t.Fatalf("FetchLatest returned error: %v", err)
	}

	closeWithin(t, pm, 3*time.Second)
}

func TestProgressHandle_MarkDoneWithoutData(t *testing.T) {
	pm := NewProgressManager(io.Discard)
	h := pm.Register("image")

	h.SetTotal(0)
	h.MarkDone()
	h.MarkDone()

	closeWithin(t, pm, 3*time.Second)
}
