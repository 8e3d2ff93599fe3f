package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/apodd/internal/downloader"
	"github.com/brogergvhs/apodd/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type MPBProgressManager struct {
	p *mpb.Progress
}

func NewProgressManager(out io.Writer) *MPBProgressManager {
	p := mpb.New(
		mpb.WithWidth(40),
		mpb.WithOutput(out),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &MPBProgressManager{p: p}
}

func (pm *MPBProgressManager) Close() {
	pm.p.Wait()
}

// Factory returns a constructor suitable for apod.Options.NewProgress.
func (pm *MPBProgressManager) Factory(prefix string) func() downloader.Progress {
	return func() downloader.Progress {
		return pm.Register(prefix)
	}
}

func (pm *MPBProgressManager) Register(prefix string) *ProgressHandle {
	h := &ProgressHandle{
		pm:     pm,
		prefix: prefix,
	}
	h.initBar()
	return h
}

// ProgressHandle tracks the bytes of one download.
type ProgressHandle struct {
	pm     *MPBProgressManager
	prefix string
	bar    *mpb.Bar

	total atomic.Int64
	bytes atomic.Int64

	start   time.Time
	elapsed atomic.Int64

	final atomic.Bool
}

func (h *ProgressHandle) initBar() {
	h.start = time.Now()

	h.bar = h.pm.p.New(
		0,
		mpb.BarStyle().Rbound("]"),

		mpb.PrependDecorators(
			decor.Name(h.prefix+"  "),
		),

		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				if t := h.total.Load(); t > 0 {
					return fmt.Sprintf(" | %s / %s", util.Human(h.bytes.Load()), util.Human(t))
				}
				return " | " + util.Human(h.bytes.Load())
			}),

			decor.Any(func(_ decor.Statistics) string {
				if h.final.Load() {
					return fmt.Sprintf(" | %ds", h.elapsed.Load())
				}

				return fmt.Sprintf(" | %ds", int(time.Since(h.start).Seconds()))
			}),
		),
	)
}

// SetTotal sets the expected size. Unknown sizes (<= 0) are ignored and the
// bar completes at whatever was read.
func (h *ProgressHandle) SetTotal(total int64) {
	if h.final.Load() || total <= 0 {
		return
	}

	h.total.Store(total)
	h.bar.SetTotal(total, false)
}

func (h *ProgressHandle) Update(done int64) {
	if h.final.Load() {
		return
	}

	h.bytes.Store(done)
	if h.total.Load() <= 0 {
		h.bar.SetTotal(done+1, false)
	}
	h.bar.SetCurrent(done)
}

func (h *ProgressHandle) MarkDone() {
	if h.final.Swap(true) {
		return
	}

	h.elapsed.Store(int64(time.Since(h.start).Seconds()))
	h.bar.SetTotal(-1, true)
}
