package ui

import (
	"context"
	"errors"
	"image"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brogergvhs/apodd/internal/apod"
)

// chrome is the number of lines taken by everything except the preview.
const chrome = 5

type fetchDoneMsg struct{ err error }

type saveDoneMsg struct {
	path string
	err  error
}

type ViewerOptions struct {
	Context      context.Context
	Fetcher      *apod.Fetcher
	FetchOnStart bool
}

// Viewer is the Bubble Tea model that displays the current picture.
type Viewer struct {
	ctx     context.Context
	fetcher *apod.Fetcher

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int

	snap         apod.ImageContext
	busy         bool
	fetchOnStart bool
	message      string
	isError      bool

	cache *previewCache
}

type previewCache struct {
	rendered string
	img      image.Image
	w, h     int
}

func NewViewer(opts ViewerOptions) Viewer {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle

	return Viewer{
		ctx:          ctx,
		fetcher:      opts.Fetcher,
		keys:         defaultKeyMap(),
		help:         help.New(),
		spinner:      sp,
		snap:         opts.Fetcher.Snapshot(),
		fetchOnStart: opts.FetchOnStart,
		busy:         opts.FetchOnStart,
		cache:        &previewCache{},
	}
}

func (m Viewer) Init() tea.Cmd {
	if !m.fetchOnStart {
		return nil
	}

	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m Viewer) fetchCmd() tea.Cmd {
	f, ctx := m.fetcher, m.ctx
	return func() tea.Msg {
		return fetchDoneMsg{err: f.OnUserRefreshRequested(ctx)}
	}
}

func (m Viewer) saveCmd() tea.Cmd {
	f := m.fetcher
	return func() tea.Msg {
		path, err := f.OnUserSaveRequested()
		return saveDoneMsg{path: path, err: err}
	}
}

func (m Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchDoneMsg:
		m.busy = false
		m.snap = m.fetcher.Snapshot()
		m.setResult(msg.err, "")
		return m, nil

	case saveDoneMsg:
		m.snap = m.fetcher.Snapshot()
		m.setResult(msg.err, "Saved to: "+msg.path)
		return m, nil
	}

	return m, nil
}

func (m Viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.message = ""
		return m, tea.Batch(m.spinner.Tick, m.fetchCmd())

	case key.Matches(msg, m.keys.Save):
		if m.busy {
			return m, nil
		}
		return m, m.saveCmd()
	}

	return m, nil
}

func (m *Viewer) setResult(err error, okMessage string) {
	if err != nil {
		m.message = err.Error()
		m.isError = !errors.Is(err, apod.ErrBusy)
		return
	}

	m.message = okMessage
	m.isError = false
}

func (m Viewer) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.snap.Title))
	if m.snap.Filename != "" {
		b.WriteString(filenameStyle.Render(m.snap.Filename))
	}
	b.WriteString("\n\n")

	b.WriteString(m.body())
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.spinner.View() + " " + statusStyle.Render(m.fetcher.State().String()+"..."))
	} else {
		b.WriteString(statusStyle.Render(m.snap.Status))
	}
	b.WriteString("\n")

	if m.message != "" {
		style := statusStyle
		if m.isError {
			style = errorStyle
		}
		b.WriteString(style.Render(firstLine(m.message)))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Viewer) body() string {
	if !m.snap.ValidImage || m.snap.ImageData == nil {
		if m.busy {
			return placeholderStyle.Render("Downloading today's picture...")
		}
		return placeholderStyle.Render("No image loaded. Press r to fetch.")
	}

	w, h := m.width, m.height-chrome
	if w <= 0 || h <= 0 {
		w, h = 80, 24
	}

	return m.renderPreview(w, h)
}

// renderPreview caches the last rendering; View runs on every spinner tick.
func (m Viewer) renderPreview(w, h int) string {
	c := m.cache
	if c.img != m.snap.ImageData || c.w != w || c.h != h {
		c.rendered = lipgloss.PlaceHorizontal(w, lipgloss.Center, RenderHalfBlocks(m.snap.ImageData, w, h))
		c.img = m.snap.ImageData
		c.w, c.h = w, h
	}

	return c.rendered
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
