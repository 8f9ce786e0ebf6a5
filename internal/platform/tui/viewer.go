package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/guard-patrol/internal/core"
	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/registry"
	"github.com/vovakirdan/guard-patrol/internal/search"
)

// Animation speed limits in cells per second.
const (
	minTickRate = 1
	maxTickRate = 480
)

// statusLines is the number of text rows drawn below the grid frame.
const statusLines = 2

// ViewerOptions configures a patrol viewer.
type ViewerOptions struct {
	Name      string
	TickRate  int
	ShowLoops bool

	// Strategy runs the loop search once the viewer starts.
	// Nil disables loop marking.
	Strategy registry.Strategy
	Logger   *log.Logger

	// Follow reloads the map whenever the watched file changes.
	Follow *FileWatcher

	// Embedded viewers report Back to their parent instead of quitting.
	Embedded bool

	Width  int
	Height int
}

// searchDoneMsg carries the result of a background loop search.
// gen ties the result to the map it was computed for.
type searchDoneMsg struct {
	gen    int64
	report patrol.Report
	err    error
}

// ViewerModel animates the guard's patrol over a map, cell by cell.
type ViewerModel struct {
	ctx  context.Context
	id   int64
	name string
	m    patrol.Map
	gen  int64

	trail    []patrol.Position
	facings  []patrol.Facing
	distinct []int // distinct cells in trail[:i+1]
	looping  bool
	step     int

	tickRate  int
	paused    bool
	showLoops bool

	strategy  registry.Strategy
	logger    *log.Logger
	searchCtx context.Context
	cancel    context.CancelFunc // stops the search for the current map
	report    *patrol.Report
	searching bool
	searchErr error
	loadErr   error

	follow *FileWatcher

	screen     *core.Screen
	keys       ViewerKeyMap
	help       help.Model
	width      int
	embedded   bool
	quitting   bool
	backToMenu bool
}

// NewViewerModel creates a viewer for m.
func NewViewerModel(ctx context.Context, m patrol.Map, opts ViewerOptions) ViewerModel {
	if ctx == nil {
		ctx = context.Background()
	}
	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = 30
	}

	v := ViewerModel{
		ctx:       ctx,
		id:        nextID(),
		name:      opts.Name,
		tickRate:  core.Clamp(tickRate, minTickRate, maxTickRate),
		showLoops: opts.ShowLoops,
		strategy:  opts.Strategy,
		logger:    opts.Logger,
		follow:    opts.Follow,
		keys:      DefaultViewerKeyMap(),
		help:      help.New(),
		width:     opts.Width,
		embedded:  opts.Embedded,
	}
	v.help.Width = opts.Width
	v.load(m)
	return v
}

// load replaces the map and rewinds the animation. A search still running
// for the previous map is cancelled.
func (v *ViewerModel) load(m patrol.Map) {
	v.stopSearch()
	v.searchCtx, v.cancel = context.WithCancel(v.ctx)

	v.m = m
	v.gen = nextID()
	v.trail = patrol.Trail(m)
	v.facings = trailFacings(m.Start.Facing, v.trail)
	v.distinct = distinctCounts(v.trail)
	v.looping = patrol.IsLoop(m)
	v.step = 0
	v.report = nil
	v.searchErr = nil
	v.loadErr = nil
	v.searching = v.strategy != nil

	b := m.Bounds
	v.screen = core.NewScreen(max(b.Width+2, 44), b.Height+2+statusLines)
}

// Init starts the animation, the loop search and the file follower.
func (v ViewerModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(v.id, v.tickRate)}
	if cmd := v.searchCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if v.follow != nil {
		cmds = append(cmds, v.follow.Next())
	}
	return tea.Batch(cmds...)
}

// searchCmd runs the candidate search for the current map in the background.
func (v ViewerModel) searchCmd() tea.Cmd {
	if v.strategy == nil {
		return nil
	}
	ctx, m, s, gen, logger := v.searchCtx, v.m, v.strategy, v.gen, v.logger
	return func() tea.Msg {
		report, err := search.Solve(ctx, m, s, logger)
		return searchDoneMsg{gen: gen, report: report, err: err}
	}
}

// Update handles messages and updates the model state.
func (v ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.help.Width = msg.Width
		return v, nil

	case TickMsg:
		if msg.ID != v.id {
			return v, nil
		}
		if !v.paused && !v.Finished() {
			v.step++
		}
		return v, tickCmd(v.id, v.tickRate)

	case searchDoneMsg:
		if msg.gen != v.gen {
			return v, nil
		}
		v.searching = false
		v.stopSearch()
		if msg.err != nil {
			v.searchErr = msg.err
			return v, nil
		}
		report := msg.report
		v.report = &report
		return v, nil

	case ScenarioReloadedMsg:
		var next tea.Cmd
		if v.follow != nil {
			next = v.follow.Next()
		}
		if msg.Err != nil {
			v.loadErr = msg.Err
			return v, next
		}
		v.load(msg.Map)
		return v, tea.Batch(next, v.searchCmd())
	}

	return v, nil
}

func (v ViewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		v.quitting = true
		v.stopSearch()
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		v.backToMenu = true
		v.stopSearch()
		if v.embedded {
			return v, nil
		}
		return v, tea.Quit

	case key.Matches(msg, v.keys.Pause):
		v.paused = !v.paused

	case key.Matches(msg, v.keys.Step):
		v.paused = true
		if !v.Finished() {
			v.step++
		}

	case key.Matches(msg, v.keys.Faster):
		v.tickRate = core.Clamp(v.tickRate*2, minTickRate, maxTickRate)

	case key.Matches(msg, v.keys.Slower):
		v.tickRate = core.Clamp(v.tickRate/2, minTickRate, maxTickRate)

	case key.Matches(msg, v.keys.Restart):
		v.step = 0
		v.paused = false

	case key.Matches(msg, v.keys.Loops):
		v.showLoops = !v.showLoops

	case key.Matches(msg, v.keys.Help):
		v.help.ShowAll = !v.help.ShowAll
	}

	return v, nil
}

// stopSearch cancels the search context of the current map, if any.
func (v *ViewerModel) stopSearch() {
	if v.cancel != nil {
		v.cancel()
	}
}

// Finished reports whether the animation has reached the end of the trail.
func (v ViewerModel) Finished() bool {
	return v.step >= len(v.trail)-1
}

// Step returns the index of the guard's current cell in the trail.
func (v ViewerModel) Step() int {
	return v.step
}

// TickRate returns the animation speed in cells per second.
func (v ViewerModel) TickRate() int {
	return v.tickRate
}

// Paused reports whether the animation is paused.
func (v ViewerModel) Paused() bool {
	return v.paused
}

// Report returns the loop search result, or nil while it is pending.
func (v ViewerModel) Report() *patrol.Report {
	return v.report
}

// IsQuitting returns true if user requested to quit entirely.
func (v ViewerModel) IsQuitting() bool {
	return v.quitting
}

// BackToMenu returns true if user requested to go back.
func (v ViewerModel) BackToMenu() bool {
	return v.backToMenu
}

// Frame draws the current state and returns it as plain text.
func (v ViewerModel) Frame() string {
	v.draw()
	return v.screen.String()
}

func (v ViewerModel) draw() {
	s := v.screen
	s.Clear()

	b := v.m.Bounds
	frame := core.NewRect(0, 0, b.Width+2, b.Height+2)
	s.DrawBox(frame, core.ColorFrame)
	if v.name != "" {
		s.DrawText(2, 0, " "+v.name+" ", core.ColorStatus)
	}

	var pos patrol.Position
	if len(v.trail) > 0 {
		pos = v.trail[v.step]
	}
	f := PatrolFrame{
		Map:     v.m,
		Trail:   v.trail[:v.step+1],
		Guard:   patrol.Guard{Pos: pos, Facing: v.facings[v.step]},
		Visible: !v.Finished() || v.looping,
	}
	if v.Finished() && v.showLoops && v.report != nil {
		f.Loops = v.report.Loops
	}
	inner := frame.Inset(1)
	DrawPatrol(s, inner.X, inner.Y, f)

	y := frame.Bottom()
	s.DrawText(0, y, v.progressLine(), core.ColorStatus)
	s.DrawText(0, y+1, v.loopLine(), v.loopLineColor())
}

func (v ViewerModel) progressLine() string {
	state := "patrolling"
	switch {
	case v.Finished() && v.looping:
		state = "stuck in a loop"
	case v.Finished():
		state = "left the grid"
	case v.paused:
		state = "paused"
	}
	return fmt.Sprintf("step %d/%d  visited %d  %d/s  %s",
		v.step, len(v.trail)-1, v.distinct[v.step], v.tickRate, state)
}

func (v ViewerModel) loopLine() string {
	switch {
	case v.loadErr != nil:
		return "reload failed: " + v.loadErr.Error()
	case v.searchErr != nil:
		return "loop search failed: " + v.searchErr.Error()
	case v.searching:
		return "searching loop placements..."
	case v.report != nil:
		hidden := ""
		if !v.showLoops {
			hidden = " (hidden)"
		}
		return fmt.Sprintf("loop placements %d of %d%s  [%s %s]",
			v.report.LoopObstacles, v.report.Candidates, hidden,
			v.report.Strategy, v.report.Elapsed.Round(time.Microsecond))
	default:
		return ""
	}
}

func (v ViewerModel) loopLineColor() core.Color {
	if v.loadErr != nil || v.searchErr != nil {
		return core.ColorRed
	}
	return core.ColorLoop
}

// View renders the current state to a string for display.
func (v ViewerModel) View() string {
	if v.quitting {
		return ""
	}

	v.draw()

	var b strings.Builder
	b.WriteString(RenderScreen(v.screen))
	b.WriteString("\n\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(v.help.View(v.keys)))
	return b.String()
}

// trailFacings returns the guard's facing on each trail cell: the start
// facing on the first cell and the direction of the last move after that.
func trailFacings(start patrol.Facing, trail []patrol.Position) []patrol.Facing {
	facings := make([]patrol.Facing, max(len(trail), 1))
	facings[0] = start
	for i := 1; i < len(trail); i++ {
		facings[i] = facingBetween(trail[i-1], trail[i], facings[i-1])
	}
	return facings
}

// facingBetween returns the facing that moves a onto its neighbour b,
// or fallback if b is not adjacent to a.
func facingBetween(a, b patrol.Position, fallback patrol.Facing) patrol.Facing {
	for _, f := range []patrol.Facing{patrol.Up, patrol.Right, patrol.Down, patrol.Left} {
		if a.Step(f) == b {
			return f
		}
	}
	return fallback
}

// distinctCounts returns, for every prefix of trail, how many distinct
// cells it covers.
func distinctCounts(trail []patrol.Position) []int {
	counts := make([]int, max(len(trail), 1))
	seen := make(patrol.CellSet, len(trail))
	for i, p := range trail {
		seen.Add(p)
		counts[i] = seen.Len()
	}
	return counts
}

// RunViewer runs the viewer as a full-screen program until the user quits.
func RunViewer(ctx context.Context, m patrol.Map, opts ViewerOptions) error {
	model := NewViewerModel(ctx, m, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
