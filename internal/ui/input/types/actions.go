package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// PickAction selects the highlighted result, or the top one when nothing is highlighted
type PickAction struct{}

func (a PickAction) Type() string { return "pick" }

// ClearAction empties the query and returns to idle
type ClearAction struct{}

func (a ClearAction) Type() string { return "clear" }

// RetryAction re-issues the last search or detail fetch
type RetryAction struct{}

func (a RetryAction) Type() string { return "retry" }

// BackAction closes the detail pane
type BackAction struct{}

func (a BackAction) Type() string { return "back" }

type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C
}

func (a QuitAction) Type() string { return "quit" }
