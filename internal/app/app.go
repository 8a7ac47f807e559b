package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmacinski/vdiff/internal/config"
	"github.com/kmacinski/vdiff/internal/diff"
	"github.com/kmacinski/vdiff/internal/editor"
	"github.com/kmacinski/vdiff/internal/keys"
	"github.com/kmacinski/vdiff/internal/layout"
	"github.com/kmacinski/vdiff/internal/log"
	"github.com/kmacinski/vdiff/internal/ui"
	"github.com/kmacinski/vdiff/internal/viewport"
	"github.com/kmacinski/vdiff/internal/watcher"
	"github.com/kmacinski/vdiff/internal/window"
)

const jumpTimeout = 5 * time.Second

var errNoTarget = errors.New("line has no source location")

// Options configures a viewer session
type Options struct {
	// Name labels the input in the status bar
	Name string
	// Root is the directory relative source paths are joined with
	Root   string
	Layout config.LayoutConfig
	Scroll config.ScrollConfig
	Styles ui.Styles
	Jumper editor.Jumper
	// Clipboard writes yanked text; defaults to the system clipboard
	Clipboard func(string) error

	// ConfigFile is watched while the viewer runs; ReloadTheme is called
	// when it changes.
	ConfigFile  string
	ReloadTheme func() (ui.Styles, error)
}

// App is the main application model
type App struct {
	state  *State
	keys   keys.KeyMap
	layout *layout.Manager
	styles ui.Styles
	scroll config.ScrollConfig

	// Windows
	diffView *window.DiffView
	help     *window.Help

	jumper    editor.Jumper
	clipboard func(string) error

	// Dimensions
	width  int
	height int

	// Config watcher
	configFile  string
	reloadTheme func() (ui.Styles, error)
	watcher     *watcher.Watcher
	watchErr    error
	program     *tea.Program
	done        chan struct{}
}

// New creates a viewer session over doc
func New(doc *diff.Document, opts Options) *App {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Scroll.WheelLines <= 0 {
		opts.Scroll.WheelLines = config.Defaults().Scroll.WheelLines
	}
	if opts.Scroll.PanColumns <= 0 {
		opts.Scroll.PanColumns = config.Defaults().Scroll.PanColumns
	}
	if opts.Styles.Lines == nil {
		opts.Styles = ui.DefaultStyles
	}

	state := NewState(opts.Name, opts.Root)
	state.DiffAdded, state.DiffRemoved = doc.Stats()

	vp := viewport.New(doc, viewport.CellMetrics(opts.Layout.Margin))

	return &App{
		state:       state,
		keys:        keys.DefaultKeyMap,
		layout:      layout.NewManager(opts.Layout),
		styles:      opts.Styles,
		scroll:      opts.Scroll,
		diffView:    window.NewDiffView(opts.Styles, vp),
		help:        window.NewHelp(opts.Styles),
		jumper:      opts.Jumper,
		clipboard:   opts.Clipboard,
		configFile:  opts.ConfigFile,
		reloadTheme: opts.ReloadTheme,
		done:        make(chan struct{}),
	}
}

// SetProgram sets the tea.Program reference and starts the config watcher.
// A watcher failure is reported in the status bar once the program starts.
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
	if a.configFile == "" || a.reloadTheme == nil {
		return
	}

	w, err := watcher.New(watcher.DefaultConfig(a.configFile))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "creating watcher", err)
		a.watchErr = fmt.Errorf("watching config: %w", err)
		return
	}
	onChange, err := w.Start()
	if err != nil {
		log.ErrorErr(log.CatWatcher, "starting watcher", err)
		_ = w.Stop()
		a.watchErr = fmt.Errorf("watching config: %w", err)
		return
	}
	a.watcher = w

	go func() {
		for {
			select {
			case <-onChange:
				styles, err := a.reloadTheme()
				log.Info(log.CatConfig, "config changed, reloading theme", "path", a.configFile)
				a.program.Send(ThemeChangedMsg{Styles: styles, Err: err})
			case <-a.done:
				return
			}
		}
	}()
}

// Cleanup stops the watcher
func (a *App) Cleanup() {
	select {
	case <-a.done:
	default:
		close(a.done)
	}
	if a.watcher != nil {
		_ = a.watcher.Stop()
	}
}

// Viewport returns the viewport of the diff view
func (a *App) Viewport() *viewport.Viewport {
	return a.diffView.Viewport()
}

// State returns the session state
func (a *App) State() *State {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	title := tea.SetWindowTitle("vdiff: " + a.state.Name)
	if a.watchErr == nil {
		return title
	}
	err := a.watchErr
	return tea.Batch(title, func() tea.Msg {
		return ErrorMsg{Err: err}
	})
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.diffView.SetGeometry(a.layout.Resize(msg.Width, msg.Height))
		return a, nil

	case tea.KeyMsg:
		a.state.ClearStatus()
		if a.state.ActiveModal != "" {
			return a.handleModalKey(msg)
		}
		return a.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		a.state.ClearStatus()
		if a.state.ActiveModal != "" {
			return a, nil
		}
		return a, a.handleMouse(msg)

	case JumpedMsg:
		if msg.Err != nil {
			log.ErrorErr(log.CatEditor, "jump failed", msg.Err, "target", msg.Target.String())
			a.state.SetError(fmt.Errorf("open %s: %w", msg.Target, msg.Err))
			return a, nil
		}
		log.Debug(log.CatEditor, "jumped", "target", msg.Target.String())
		a.state.SetStatus("Opened " + msg.Target.String())
		return a, nil

	case YankedMsg:
		if msg.Err != nil {
			log.ErrorErr(log.CatUI, "yank failed", msg.Err)
			a.state.SetError(fmt.Errorf("copy: %w", msg.Err))
			return a, nil
		}
		a.state.SetStatus("Copied: " + msg.Text)
		return a, nil

	case ThemeChangedMsg:
		if msg.Err != nil {
			log.ErrorErr(log.CatConfig, "reloading theme", msg.Err)
			a.state.SetError(fmt.Errorf("reload config: %w", msg.Err))
			return a, nil
		}
		a.setStyles(msg.Styles)
		a.state.SetStatus("Theme reloaded")
		return a, nil

	case ErrorMsg:
		a.state.SetError(msg.Err)
		return a, nil
	}

	return a, nil
}

func (a *App) setStyles(styles ui.Styles) {
	a.styles = styles
	a.diffView.SetStyles(styles)
	a.help.SetStyles(styles)
}

func (a *App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow quit
	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}

	// Close modal on ? or Escape
	if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Escape) {
		a.state.CloseModal()
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vp := a.diffView.Viewport()

	switch {
	case key.Matches(msg, a.keys.Quit), key.Matches(msg, a.keys.Escape):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.state.ToggleModal("help")

	case key.Matches(msg, a.keys.Up):
		vp.ScrollBy(-1)
	case key.Matches(msg, a.keys.Down):
		vp.ScrollBy(1)
	case key.Matches(msg, a.keys.PageUp):
		vp.PageUp()
	case key.Matches(msg, a.keys.PageDown):
		vp.PageDown()
	case key.Matches(msg, a.keys.Home):
		vp.ScrollToTop()
	case key.Matches(msg, a.keys.End):
		vp.ScrollToBottom()
	case key.Matches(msg, a.keys.Left):
		vp.PanBy(-a.scroll.PanColumns)
	case key.Matches(msg, a.keys.Right):
		vp.PanBy(a.scroll.PanColumns)

	case key.Matches(msg, a.keys.Jump):
		if line, ok := a.currentLine(); ok {
			return a, a.jump(line)
		}
	case key.Matches(msg, a.keys.Yank):
		if line, ok := a.currentLine(); ok {
			return a, a.yank(line)
		}
	}

	return a, nil
}

// currentLine is the selected line, or the first visible one when nothing
// is selected.
func (a *App) currentLine() (diff.Line, bool) {
	if line, ok := a.diffView.SelectedLine(); ok {
		return line, true
	}
	rows := a.diffView.Viewport().VisibleSlice()
	if len(rows) == 0 {
		return diff.Line{}, false
	}
	return rows[0].Line, true
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	vp := a.diffView.Viewport()
	g := a.layout.Current()
	pt := image.Pt(msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		vp.ScrollBy(-a.scroll.WheelLines)
		return nil
	case tea.MouseButtonWheelDown:
		vp.ScrollBy(a.scroll.WheelLines)
		return nil
	}

	if pt.In(g.Scroll) {
		switch msg.Button {
		case tea.MouseButtonLeft:
			vp.ClickTrack(viewport.TrackUp, g.Scroll, msg.Y)
		case tea.MouseButtonRight:
			vp.ClickTrack(viewport.TrackDown, g.Scroll, msg.Y)
		case tea.MouseButtonMiddle:
			vp.ClickTrack(viewport.TrackJump, g.Scroll, msg.Y)
		}
		return nil
	}

	idx, ok := vp.LineIndexAtPoint(pt)
	if !ok {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		a.diffView.Select(idx)
	case tea.MouseButtonRight:
		a.diffView.Select(idx)
		return a.jump(vp.Document().Line(idx))
	}
	return nil
}

// resolve joins relative paths with the session root
func (a *App) resolve(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(a.state.Root, file)
}

func (a *App) jump(line diff.Line) tea.Cmd {
	target, ok := line.Target()
	if !ok {
		a.state.SetError(errNoTarget)
		return nil
	}
	if a.jumper == nil {
		a.state.SetError(editor.ErrNoEditor)
		return nil
	}

	file := a.resolve(target.File)
	log.Debug(log.CatEditor, "jump", "editor", editor.Describe(a.jumper), "file", file, "line", target.Line)

	if s, ok := a.jumper.(editor.Suspender); ok {
		return tea.ExecProcess(s.Cmd(file, target.Line), func(err error) tea.Msg {
			return JumpedMsg{Target: target, Err: err}
		})
	}

	j := a.jumper
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), jumpTimeout)
		defer cancel()
		return JumpedMsg{Target: target, Err: j.Jump(ctx, file, target.Line)}
	}
}

func (a *App) yank(line diff.Line) tea.Cmd {
	target, ok := line.Target()
	if !ok {
		a.state.SetError(errNoTarget)
		return nil
	}
	text := target.String()
	write := a.clipboard
	return func() tea.Msg {
		return YankedMsg{Text: text, Err: write(text)}
	}
}

// View renders the application
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	g := a.layout.Current()
	view := a.diffView.View(g.Screen.Dx(), g.List.Dy())
	if !g.Status.Empty() {
		view += "\n" + a.renderStatusBar(g.Status.Dx())
	}

	if a.state.ActiveModal == "help" {
		view = a.renderWithModal(a.help)
	}

	return view
}

// location describes the first visible line that belongs to a file
func (a *App) location() string {
	for _, row := range a.diffView.Viewport().VisibleSlice() {
		src := row.Line.Source
		if src == nil || src.File == "" {
			continue
		}
		if src.Line > 0 {
			return src.String()
		}
		return src.File
	}
	return ""
}

func (a *App) renderStatusBar(width int) string {
	vp := a.diffView.Viewport()
	item := a.styles.StatusBarItem

	left := []string{item.Render(a.state.Name)}
	if loc := a.location(); loc != "" {
		left = append(left, item.Render(loc))
	}
	if a.state.StatusMessage != "" {
		msg := a.state.StatusMessage
		if a.state.StatusIsError {
			left = append(left, a.styles.Error.Inherit(item).Render(msg))
		} else {
			left = append(left, item.Render(msg))
		}
	}

	right := []string{
		item.Render(fmt.Sprintf("+%d -%d", a.state.DiffAdded, a.state.DiffRemoved)),
		item.Render(fmt.Sprintf("%d/%d", vp.Offset(), vp.LineCount())),
	}
	if pan := vp.PanColumns(); pan > 0 {
		right = append(right, item.Render(fmt.Sprintf("col %d", pan)))
	}
	right = append(right, item.Render("? help"))

	l := lipgloss.JoinHorizontal(lipgloss.Top, left...)
	r := lipgloss.JoinHorizontal(lipgloss.Top, right...)
	padding := max(0, width-lipgloss.Width(l)-lipgloss.Width(r))

	return a.styles.StatusBar.
		MaxWidth(width).
		Render(l + a.styles.StatusBar.Render(strings.Repeat(" ", padding)) + r)
}

func (a *App) renderWithModal(modal window.Window) string {
	modalWidth := min(64, a.width-4)
	modalHeight := min(26, a.height-2)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.View(modalWidth, modalHeight),
	)
}
