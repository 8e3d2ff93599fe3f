package apod

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/brogergvhs/apodd/internal/downloader"
	"github.com/brogergvhs/apodd/internal/extract"
)

const (
	DefaultBaseURL = "https://apod.nasa.gov/apod/"
	homePage       = "astropix.html"

	statusReady = "Ready"
)

// Source performs the two GETs of a fetch cycle.
type Source interface {
	FetchPage(ctx context.Context, url string) (string, error)
	FetchImage(ctx context.Context, url string, progress downloader.Progress) ([]byte, error)
}

// Reporter surfaces a message to the user, the way a dialog box would.
type Reporter interface {
	Report(msg string)
}

// DirectorySource supplies the save directory at the moment a save is
// requested.
type DirectorySource interface {
	SaveDirectory() string
}

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
}

type Options struct {
	BaseURL   string
	Source    Source
	Extractor extract.Extractor
	Reporter  Reporter
	Dirs      DirectorySource
	Logger    Logger

	// NewProgress, when set, is called once per image download.
	NewProgress func() downloader.Progress
	// OnStateChange is called synchronously on every transition.
	OnStateChange func(State)
}

type Fetcher struct {
	base      *url.URL
	source    Source
	extractor extract.Extractor
	reporter  Reporter
	dirs      DirectorySource
	log       Logger

	newProgress   func() downloader.Progress
	onStateChange func(State)

	busy atomic.Bool

	mu    sync.RWMutex
	ictx  ImageContext
	state State
}

func NewFetcher(opts Options) (*Fetcher, error) {
	raw := opts.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !base.IsAbs() {
		return nil, errors.New("base url must be absolute: " + raw)
	}

	if opts.Source == nil {
		return nil, errors.New("apod: nil source")
	}

	ex := opts.Extractor
	if ex == nil {
		ex = extract.Regex{}
	}

	return &Fetcher{
		base:          base,
		source:        opts.Source,
		extractor:     ex,
		reporter:      opts.Reporter,
		dirs:          opts.Dirs,
		log:           opts.Logger,
		newProgress:   opts.NewProgress,
		onStateChange: opts.OnStateChange,
		ictx:          NewImageContext(),
	}, nil
}

// Snapshot returns a copy of the current ImageContext.
func (f *Fetcher) Snapshot() ImageContext {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.ictx
}

func (f *Fetcher) State() State {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.state
}

func (f *Fetcher) Busy() bool {
	return f.busy.Load()
}

// PageURL is the homepage fetched at the start of every cycle.
func (f *Fetcher) PageURL() string {
	return f.base.ResolveReference(&url.URL{Path: homePage}).String()
}

// OnUserRefreshRequested starts a fetch cycle on behalf of the display
// layer.
func (f *Fetcher) OnUserRefreshRequested(ctx context.Context) error {
	return f.FetchLatest(ctx)
}

// OnUserSaveRequested saves to the directory supplied by the injected
// DirectorySource.
func (f *Fetcher) OnUserSaveRequested() (string, error) {
	dir := ""
	if f.dirs != nil {
		dir = f.dirs.SaveDirectory()
	}

	return f.SaveCurrentImage(dir)
}

// FetchLatest runs one fetch cycle. A call made while another cycle is in
// flight returns ErrBusy without touching the ImageContext.
func (f *Fetcher) FetchLatest(ctx context.Context) error {
	if !f.busy.CompareAndSwap(false, true) {
		return newError(ErrBusy, "", "A fetch is already in progress", nil)
	}
	defer f.busy.Store(false)

	f.update(func(c *ImageContext) {
		c.ValidImage = false
		c.ImageData = nil
		c.Bytes = 0
		c.Status = loadingTitle
	})

	f.setState(StateFetchingPage)
	pageURL := f.PageURL()
	f.debugf("fetching %s\n", pageURL)

	html, err := f.source.FetchPage(ctx, pageURL)
	if err != nil {
		return f.fail(networkError("Unable to open apod homepage", err))
	}

	f.setState(StateParsing)
	res, err := f.extractor.Extract(html)
	if err != nil {
		return f.fail(kindErrorf(ErrParse, err, "Unable to parse image url from html"))
	}

	imagePath := res.ImagePath()
	ref, err := url.Parse(strings.TrimSpace(imagePath))
	if err != nil {
		return f.fail(kindErrorf(ErrParse, err, "Unable to parse image url from html"))
	}
	imageURL := f.base.ResolveReference(ref).String()

	f.setState(StateFetchingImage)
	f.debugf("fetching %s\n", imageURL)

	var progress downloader.Progress
	if f.newProgress != nil {
		progress = f.newProgress()
	}

	data, err := f.source.FetchImage(ctx, imageURL, progress)
	if err != nil {
		return f.fail(networkError("Unable to download latest image", err))
	}

	f.setState(StateDecoding)
	img, err := decodeImage(data)
	if err != nil {
		return f.fail(newError(ErrDecode,
			"Error creating image context",
			"Error creating image context - this might be a video.\n"+err.Error(),
			err))
	}

	filename := FilenameFromPath(imagePath)
	title := res.Title
	if title == "" {
		title = filename
	}

	f.update(func(c *ImageContext) {
		c.ImageData = img
		c.Filename = filename
		c.Title = title
		c.SourceURL = imageURL
		c.Bytes = int64(len(data))
		c.Status = statusReady
		c.ValidImage = true
	})
	f.setState(StateReady)

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	f.infof("loaded %q (%s, %dx%d)\n", title, filename, w, h)

	return nil
}

func networkError(prefix string, err error) *Error {
	var se *downloader.StatusError
	if errors.As(err, &se) {
		return kindErrorf(ErrNetwork, err, "%s. status code: %d", prefix, se.Code)
	}

	return kindErrorf(ErrNetwork, err, "%s: %v", prefix, err)
}

func (f *Fetcher) fail(e *Error) error {
	f.update(func(c *ImageContext) {
		c.ValidImage = false
		c.ImageData = nil
		c.Title = "Error"
		c.Status = e.Status
	})
	f.setState(StateFailed)

	f.debugf("fetch failed: %s\n", e.Message)
	f.report(e.Message)

	return e
}

func (f *Fetcher) update(fn func(c *ImageContext)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fn(&f.ictx)
}

func (f *Fetcher) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()

	if f.onStateChange != nil {
		f.onStateChange(s)
	}
}

func (f *Fetcher) report(msg string) {
	if f.reporter != nil {
		f.reporter.Report(msg)
	}
}

func (f *Fetcher) debugf(format string, args ...any) {
	if f.log != nil {
		f.log.Debugf(format, args...)
	}
}

func (f *Fetcher) infof(format string, args ...any) {
	if f.log != nil {
		f.log.Infof(format, args...)
	}
}
