package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"heropick/internal/config"
	"heropick/internal/eventbus"
	"heropick/internal/search"
	"heropick/internal/ui/input"
	inputtypes "heropick/internal/ui/input/types"
	"heropick/internal/ui/views"
)

// Client is what the model needs from the proxy
type Client interface {
	search.Searcher
	search.DetailFetcher
}

// Model represents the UI state. All search and detail state lives in the
// coordinator and detail loader; the model only routes messages to them.
type Model struct {
	config *config.Config
	logger *slog.Logger

	debouncer *search.Debouncer
	coord     *search.Coordinator
	detail    *search.DetailLoader

	width       int
	height      int
	cursor      int
	showHelp    bool
	inPagerMode bool
	status      string

	help         help.Model
	spinner      spinner.Model
	renderer     *views.Renderer
	inputHandler *input.Handler
	pager        Pager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. ctx bounds every request the model issues.
func NewModel(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, client Client, logger *slog.Logger) *Model {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := cfg.Search

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		config:    cfg,
		logger:    logger,
		debouncer: search.NewDebouncer(s.Quiet(), s.MinChars),
		coord: search.NewCoordinator(ctx, client, search.Options{
			MinChars: s.MinChars,
			Limit:    s.Limit,
			Timeout:  time.Duration(s.RequestTimeout),
		}, bus),
		detail:       search.NewDetailLoader(ctx, client, time.Duration(s.RequestTimeout), bus),
		help:         help.New(),
		spinner:      sp,
		renderer:     views.NewRenderer(),
		inputHandler: input.New(inputtypes.DefaultKeyMap()),
		pager:        NewPagerOps(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if ops, ok := m.pager.(*PagerOps); ok {
		ops.SetProgram(p)
	}
}

// SetPager replaces the pager used for the detail record
func (m *Model) SetPager(p Pager) {
	m.pager = p
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.inputHandler.Init(), m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "esc", "f1", "q":
				m.showHelp = false
				return m, nil
			}
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case search.SettledMsg:
		if !m.debouncer.Accept(msg) {
			return m, nil
		}
		m.cursor = 0
		return m, m.coord.Settle(msg.Value)

	case search.SearchResultMsg:
		if m.coord.Resolve(msg) {
			m.clampCursor()
		}
		return m, nil

	case search.DetailResultMsg:
		m.detail.Resolve(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerClosedMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", "error", msg.err)
			m.status = fmt.Sprintf("Pager failed: %v", msg.err)
			return m, clearStatusAfter(3 * time.Second)
		}
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	default:
		return m, m.inputHandler.Update(msg)
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		return m.debouncer.Push(a.Text)

	case inputtypes.NavigateAction:
		m.navigate(a.Direction)
		return nil

	case inputtypes.PickAction:
		return m.pick()

	case inputtypes.ClearAction:
		m.inputHandler.ResetQuery()
		m.debouncer.Cancel()
		m.coord.Clear()
		m.detail.Clear()
		m.cursor = 0
		return nil

	case inputtypes.RetryAction:
		if m.inputHandler.Mode() == inputtypes.ModeDetail {
			if sel := m.detail.State().Selection; sel != nil {
				return m.detail.Select(*sel)
			}
			return nil
		}
		return m.coord.Retry()

	case inputtypes.BackAction:
		m.detail.Clear()
		return nil

	case inputtypes.OpenPagerAction:
		data := m.detail.State().Data
		if data == nil {
			return nil
		}
		return m.openPager(views.PlainRecord(*data))

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp
		return nil

	case inputtypes.QuitAction:
		m.coord.Close()
		m.detail.Close()
		return tea.Quit
	}
	return nil
}

// pick selects the highlighted result, falling back to the top result. The
// query is replaced by the picked name, which settles like any other edit.
func (m *Model) pick() tea.Cmd {
	results := m.coord.State().Results
	c, ok := search.PickTop(results)
	if m.cursor > 0 && m.cursor < len(results) {
		c, ok = search.FindByID(results, results[m.cursor].ID)
	}
	if !ok {
		return nil
	}

	var cmds []tea.Cmd
	for _, action := range m.inputHandler.ChangeMode(inputtypes.ModeDetail, m) {
		cmds = append(cmds, m.processAction(action))
	}
	cmds = append(cmds, m.detail.Select(c))

	m.inputHandler.TextInput().SetValue(c.Name)
	cmds = append(cmds, m.debouncer.Push(c.Name))
	return tea.Batch(cmds...)
}

func (m *Model) navigate(direction string) {
	n := len(m.coord.State().Results)
	if n == 0 {
		m.cursor = 0
		return
	}
	switch direction {
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = n - 1
	}
}

func (m *Model) clampCursor() {
	n := len(m.coord.State().Results)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// openPager returns a command that shows content in the pager, pausing rendering
func (m *Model) openPager(content string) tea.Cmd {
	pager, program := m.pager, m.program
	return func() tea.Msg {
		if program != nil {
			program.Send(pauseRenderingMsg{})
		}
		err := pager.Show(content)
		if program != nil {
			program.Send(resumeRenderingMsg{})
		}
		return pagerClosedMsg{err: err}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// Cursor implements inputtypes.Context
func (m *Model) Cursor() int { return m.cursor }

// ResultCount implements inputtypes.Context
func (m *Model) ResultCount() int { return len(m.coord.State().Results) }

// HasSelection implements inputtypes.Context
func (m *Model) HasSelection() bool { return m.detail.State().Selection != nil }

// DetailLoaded implements inputtypes.Context
func (m *Model) DetailLoaded() bool { return m.detail.State().Data != nil }

// SearchState returns a snapshot of the search state
func (m *Model) SearchState() search.SearchState { return m.coord.State() }

// DetailState returns a snapshot of the detail state
func (m *Model) DetailState() search.DetailState { return m.detail.State() }

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	keys := m.inputHandler.Keys()
	helpView := m.help.ShortHelpView(keys.ShortHelp())
	if m.inputHandler.Mode() == inputtypes.ModeDetail {
		helpView = m.help.ShortHelpView(keys.DetailHelp())
	}

	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		InputView:     m.inputHandler.TextInput().View(),
		MinChars:      m.coord.MinChars(),
		Search:        m.coord.State(),
		Cursor:        m.cursor,
		Detail:        m.detail.State(),
		DetailOpen:    m.inputHandler.Mode() == inputtypes.ModeDetail,
		Spinner:       m.spinner.View(),
		ShowCallCount: m.config.UI.ShowCallCount,
		ShowHelp:      m.showHelp,
		HelpView:      helpView,
		FullHelpView:  m.help.FullHelpView(keys.FullHelp()),
		StatusMessage: m.status,
	})
}
