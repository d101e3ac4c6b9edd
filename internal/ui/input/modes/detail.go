package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"heropick/internal/ui/input/types"
)

// DetailMode is active while the detail pane is open. The query is frozen;
// arrows and enter still move through the results so another pick supersedes
// the current fetch.
type DetailMode struct {
	keys types.KeyMap
}

func NewDetailMode(keys types.KeyMap) *DetailMode {
	return &DetailMode{keys: keys}
}

func (m *DetailMode) Enter(ctx types.Context) []types.Action { return nil }

func (m *DetailMode) Exit(ctx types.Context) []types.Action {
	return []types.Action{types.BackAction{}}
}

func (m *DetailMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQ):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.keys.Back):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, m.keys.Pick):
		return []types.Action{types.PickAction{}}, true
	case key.Matches(msg, m.keys.Pager):
		if !ctx.DetailLoaded() {
			return nil, true
		}
		return []types.Action{types.OpenPagerAction{}}, true
	case key.Matches(msg, m.keys.Retry):
		if !ctx.HasSelection() {
			return nil, true
		}
		return []types.Action{types.RetryAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	default:
		return nil, true
	}
}
