package ui

// pagerClosedMsg is sent when the external pager exits
type pagerClosedMsg struct {
	err error
}

// clearStatusMsg clears the transient status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
