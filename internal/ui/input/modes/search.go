package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"heropick/internal/ui/input/types"
)

// SearchMode is the default mode: keystrokes edit the query, arrows move the
// result cursor and enter picks.
type SearchMode struct {
	keys types.KeyMap
}

func NewSearchMode(keys types.KeyMap) *SearchMode {
	return &SearchMode{keys: keys}
}

func (m *SearchMode) Enter(ctx types.Context) []types.Action { return nil }

func (m *SearchMode) Exit(ctx types.Context) []types.Action { return nil }

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQ):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, m.keys.Pick):
		if ctx.ResultCount() == 0 {
			return nil, true
		}
		return []types.Action{types.PickAction{}}, true
	case key.Matches(msg, m.keys.Clear):
		return []types.Action{types.ClearAction{}}, true
	case key.Matches(msg, m.keys.Retry):
		return []types.Action{types.RetryAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	default:
		// Let the handler feed the text input
		return nil, false
	}
}
