package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"heropick/internal/search"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	InputView     string
	MinChars      int
	Search        search.SearchState
	Cursor        int
	Detail        search.DetailState
	DetailOpen    bool
	Spinner       string
	ShowCallCount bool
	ShowHelp      bool
	HelpView      string
	FullHelpView  string
	StatusMessage string
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	resultsRender *ResultsRenderer
	detailRender  *DetailRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		resultsRender: NewResultsRenderer(styles),
		detailRender:  NewDetailRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")

	content.WriteString(r.styles.Prompt.Render("Search: "))
	content.WriteString(state.InputView)
	content.WriteString("\n\n")

	if state.ShowHelp {
		content.WriteString(r.styles.HelpBox.Render(state.FullHelpView))
		return r.styles.Main.Render(content.String())
	}

	content.WriteString(r.renderMain(state))

	if state.DetailOpen {
		content.WriteString("\n")
		content.WriteString(r.detailRender.RenderCard(state.Detail, state.Spinner, state.Width))
	}

	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}

	if state.HelpView != "" {
		content.WriteString("\n\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("heropick")

	var indicators []string
	if state.Search.Loading {
		indicators = append(indicators, fmt.Sprintf("%s Searching", state.Spinner))
	}
	if state.ShowCallCount {
		indicators = append(indicators, fmt.Sprintf("API calls made: %d", state.Search.CallCount))
	}
	if len(indicators) == 0 {
		return logo
	}

	right := r.styles.Dim.Render(strings.Join(indicators, " | "))
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

// renderMain renders the result list or the empty/error state that replaces it
func (r *Renderer) renderMain(state ViewState) string {
	s := state.Search
	switch {
	case s.Error != "":
		return r.styles.StatusError.Render(s.Error) + "\n" + r.styles.Dim.Render("Press ctrl+r to retry")
	case s.Request.Phase == search.PhaseIdle && len(s.Results) == 0:
		return r.styles.Dim.Render(fmt.Sprintf("Type at least %d characters to search", state.MinChars))
	case s.Loading && len(s.Results) == 0:
		return r.styles.StatusLoading.Render("Loading…")
	case len(s.Results) == 0 && s.Request.Phase == search.PhaseSettled:
		return r.styles.Dim.Render("No results")
	case len(s.Results) == 0:
		return ""
	}

	rows := 0
	if state.Height > 0 {
		rows = state.Height - 12
		if state.DetailOpen {
			rows -= 10
		}
		if rows < 3 {
			rows = 3
		}
	}
	return r.resultsRender.RenderList(s.Results, state.Cursor, s.Query, rows)
}
