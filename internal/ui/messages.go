package ui

// pagerClosedMsg is sent when the results pager exits
type pagerClosedMsg struct {
	err error
}
