package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"heropick/internal/ui/input/modes"
	"heropick/internal/ui/input/types"
)

// Handler routes key presses to the active mode and owns the query input
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
	keys        types.KeyMap
}

func New(keys types.KeyMap) *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search characters (e.g. spider)"
	ti.CharLimit = 64
	ti.Focus()

	h := &Handler{
		currentMode: types.ModeSearch,
		textInput:   &ti,
		keys:        keys,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeSearch] = modes.NewSearchMode(keys)
	h.modes[types.ModeDetail] = modes.NewDetailMode(keys)

	return h
}

// HandleKey runs msg through the current mode. Keys the search mode does not
// consume edit the query; an UpdateTextAction is emitted when the value changes.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var allActions []types.Action
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode.Mode, ctx)...)
			continue
		}
		allActions = append(allActions, action)
	}

	if consumed || h.currentMode != types.ModeSearch {
		return allActions, nil
	}

	before := h.textInput.Value()
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	if after := h.textInput.Value(); after != before {
		allActions = append(allActions, types.UpdateTextAction{Text: after})
	}
	return allActions, cmd
}

// ChangeMode switches modes from outside the key path, e.g. after a pick
func (h *Handler) ChangeMode(mode types.Mode, ctx types.Context) []types.Action {
	return h.switchMode(mode, ctx)
}

func (h *Handler) switchMode(mode types.Mode, ctx types.Context) []types.Action {
	if mode == h.currentMode {
		return nil
	}
	var actions []types.Action
	if cur := h.modes[h.currentMode]; cur != nil {
		actions = append(actions, cur.Exit(ctx)...)
	}
	h.currentMode = mode
	if next := h.modes[h.currentMode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}

	if mode == types.ModeSearch {
		h.textInput.Focus()
	} else {
		h.textInput.Blur()
	}
	return actions
}

// Mode returns the current input mode
func (h *Handler) Mode() types.Mode {
	if h == nil {
		return types.ModeSearch
	}
	return h.currentMode
}

// Keys returns the key map the modes were built with
func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

// TextInput returns the query input
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// ResetQuery empties the query input
func (h *Handler) ResetQuery() {
	h.textInput.Reset()
}

// Update forwards non-key messages (cursor blink) to the text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModeSearch {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}
