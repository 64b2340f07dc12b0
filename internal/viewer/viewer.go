// Package viewer is the terminal front end: a Bubble Tea model that
// hosts a chart surface on a braille canvas, routes mouse and keyboard
// input into it, and tails an optional live sample file.
package viewer

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luoshushi/oxyplot/internal/config"
	"github.com/luoshushi/oxyplot/internal/datafeed"
	"github.com/luoshushi/oxyplot/internal/geometry"
	"github.com/luoshushi/oxyplot/internal/gesture"
	"github.com/luoshushi/oxyplot/internal/model"
	"github.com/luoshushi/oxyplot/internal/observability"
	"github.com/luoshushi/oxyplot/internal/redraw"
	"github.com/luoshushi/oxyplot/internal/render"
	"github.com/luoshushi/oxyplot/internal/render/braille"
	"github.com/luoshushi/oxyplot/internal/series"
	"github.com/luoshushi/oxyplot/internal/surface"
)

// tickInterval is how often the frame loop wakes up; actual render
// passes are additionally rate-limited to the configured frame rate.
const tickInterval = 16 * time.Millisecond

type frameMsg time.Time

var (
	statusStyle   = lipgloss.NewStyle().Faint(true)
	trackerStyle  = lipgloss.NewStyle().Bold(true)
	zoomRectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// canvasHost adapts the braille context and the viewer's overlay state
// to what the surface needs from its host.
type canvasHost struct {
	ctx *braille.Context

	trackerText string
	zoomRect    *geometry.Rect

	// overlayDirty is set when overlay state changed since the last
	// pass, so the next frame re-renders even without an axis change.
	overlayDirty bool
}

func (h *canvasHost) Size() (float64, float64) { return h.ctx.Size() }

func (h *canvasHost) BeginDraw() render.Context {
	h.ctx.Clear()
	return h.ctx
}

func (h *canvasHost) ShowTracker(hit *series.TrackerHit) {
	h.trackerText = hit.Text()
	h.overlayDirty = true
}

func (h *canvasHost) HideTracker() {
	h.trackerText = ""
	h.overlayDirty = true
}

func (h *canvasHost) ShowZoomRectangle(r geometry.Rect) {
	h.zoomRect = &r
	h.overlayDirty = true
}

func (h *canvasHost) HideZoomRectangle() {
	h.zoomRect = nil
	h.overlayDirty = true
}

// Model describes the application state.
//
// Implements tea.Model.
type Model struct {
	cfg    *config.Manager
	logger *observability.CoreLogger

	width, height int

	host    *canvasHost
	surface *surface.Surface
	plot    *model.PlotModel

	feed  *datafeed.Feed
	pacer *redraw.Pacer

	keyMap map[string]func(*Model, tea.KeyMsg) (*Model, tea.Cmd)

	statusMsg string
	quitting  bool
}

// New creates the viewer. samplePath may be empty, in which case the
// chart starts with an empty model and no feed.
func New(
	samplePath string,
	cfg *config.Manager,
	logger *observability.CoreLogger,
) (*Model, error) {
	host := &canvasHost{ctx: braille.NewContext(0, 0)}
	s := surface.New(host, surface.Options{
		WheelZoomEnabled: cfg.WheelZoomEnabled(),
		TrackerHitLimit:  cfg.TrackerHitLimit(),
		DoubleClick:      gesture.NewDoubleClickDetector(cfg.DoubleClickWindow(), 0),
	}, logger)

	title := "oxyview"
	if samplePath != "" {
		title = samplePath
	}
	plot := model.New(title)
	if err := s.SetModel(plot); err != nil {
		return nil, err
	}

	m := &Model{
		cfg:     cfg,
		logger:  logger,
		host:    host,
		surface: s,
		plot:    plot,
		pacer:   redraw.NewPacer(float64(cfg.FrameRate())),
		keyMap:  defaultKeyMap(),
	}

	if samplePath != "" {
		m.feed = datafeed.New(datafeed.Params{
			Path:        samplePath,
			Invalidator: s,
			Logger:      logger,
		})
		if err := m.feed.Start(); err != nil {
			return nil, fmt.Errorf("viewer: starting data feed: %w", err)
		}
	}

	return m, nil
}

// Surface exposes the chart surface for programmatic control.
func (m *Model) Surface() *surface.Surface { return m.surface }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	case frameMsg:
		return m.handleFrame()
	}
	return m, nil
}

func (m *Model) handleFrame() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	if (m.surface.InvalidationPending() || m.host.overlayDirty) && m.pacer.Admit() {
		m.renderPass()
	}

	return m, tick()
}

// renderPass applies staged feed samples, runs one surface pass and
// redraws the overlay on top of the fresh frame. It is the only place
// the plot model is mutated or read, so the feed's watcher goroutine
// never touches live series data.
func (m *Model) renderPass() {
	m.host.overlayDirty = false
	if m.feed != nil && m.feed.Drain(m.plot) > 0 {
		m.surface.RequestInvalidate(true)
	}
	m.surface.RequestInvalidate(false)
	m.surface.RenderTick()
	if r := m.host.zoomRect; r != nil {
		m.host.ctx.DrawRect(*r, zoomRectStyle)
	}
}

// Close tears down the feed and the surface after painting the last
// frame.
func (m *Model) Close() {
	if m.feed != nil {
		m.feed.Close()
	}
	m.renderPass()
	m.surface.Close()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.host.ctx.View(),
		m.statusBar(),
	)
}

func (m *Model) statusBar() string {
	if m.host.trackerText != "" {
		return trackerStyle.Render(m.host.trackerText)
	}
	if m.statusMsg != "" {
		return statusStyle.Render(m.statusMsg)
	}
	return statusStyle.Render(
		"drag-right pan | drag-middle zoom rect | double-middle reset | wheel zoom | q quit",
	)
}
