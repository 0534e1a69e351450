package ui

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// Pager shows long text outside the form
type Pager interface {
	Open(content string) tea.Cmd
}

// ovPager pages content with the embedded ov viewer
type ovPager struct{}

// NewPager creates the default pager
func NewPager() Pager {
	return ovPager{}
}

// Open hands the terminal to ov and reports back with pagerClosedMsg
func (ovPager) Open(content string) tea.Cmd {
	return tea.Exec(&ovCommand{content: content}, func(err error) tea.Msg {
		return pagerClosedMsg{err: err}
	})
}

// ovCommand adapts oviewer to tea.ExecCommand. ov opens the terminal
// itself, so the provided stdio is unused.
type ovCommand struct {
	content string
}

func (c *ovCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

func (c *ovCommand) SetStdin(io.Reader)  {}
func (c *ovCommand) SetStdout(io.Writer) {}
func (c *ovCommand) SetStderr(io.Writer) {}
