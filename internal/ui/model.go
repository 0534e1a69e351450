package ui

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"usersearch/internal/config"
	"usersearch/internal/domain"
	"usersearch/internal/form"
	"usersearch/internal/ui/commands"
	"usersearch/internal/ui/state"
	"usersearch/internal/ui/views"
)

// emailCharLimit is the longest address RFC 5321 allows
const emailCharLimit = 254

// Model represents the UI state
type Model struct {
	config    *config.Config
	executor  *commands.Executor
	validator *form.Validator
	renderer  *views.Renderer
	pager     Pager

	email  textinput.Model
	number textinput.Model
	focus  views.Focus
	notice string

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width  int
	height int
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, executor *commands.Executor, pager Pager) *Model {
	email := textinput.New()
	email.Prompt = ""
	email.Placeholder = "user@example.com"
	email.CharLimit = emailCharLimit
	email.Focus()

	number := textinput.New()
	number.Prompt = ""
	number.Placeholder = "Format: xx-xx-xx"

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	if pager == nil {
		pager = NewPager()
	}

	return &Model{
		config:    cfg,
		executor:  executor,
		validator: form.NewValidator(),
		renderer:  views.NewRenderer(),
		pager:     pager,
		email:     email,
		number:    number,
		focus:     views.FocusEmail,
		spinner:   sp,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
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
		return m.handleKey(msg)

	case commands.SearchResultMsg:
		m.executor.Resolve(msg)
		m.syncKeys()
		return m, nil

	case spinner.TickMsg:
		if !m.executor.InFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerClosedMsg:
		if msg.err != nil {
			log.Printf("Pager exited with error: %v", msg.err)
			m.notice = "Could not open pager: " + msg.err.Error()
		}
		return m, nil
	}

	return m, m.updateFocusedInput(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.executor.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keys.Cancel):
		m.executor.Cancel()
		m.syncKeys()
		return m, nil

	case key.Matches(msg, m.keys.Pager):
		results := m.executor.State().Results()
		return m, m.pager.Open(views.PlainList(results))

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % 3)

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus + 2) % 3)
	}

	return m, m.updateFocusedInput(msg)
}

// submit starts a search while idle and cancels the outstanding one
// otherwise. Validation only applies to new searches.
func (m *Model) submit() tea.Cmd {
	defer m.syncKeys()

	if m.executor.InFlight() {
		m.notice = ""
		return m.executor.Submit(domain.SearchCriteria{})
	}

	criteria := form.Normalize(m.Criteria())
	if err := m.validator.Criteria(criteria); err != nil {
		m.notice = strings.TrimPrefix(err.Error(), form.ErrInvalidCriteria.Error()+": ")
		return nil
	}
	m.notice = ""

	return tea.Batch(m.executor.Submit(criteria), m.spinner.Tick)
}

// Criteria returns the current field values
func (m *Model) Criteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Email:  m.email.Value(),
		Number: m.number.Value(),
	}
}

// State returns the request state
func (m *Model) State() state.RequestState {
	return m.executor.State()
}

func (m *Model) setFocus(f views.Focus) tea.Cmd {
	m.focus = f
	m.email.Blur()
	m.number.Blur()
	switch f {
	case views.FocusEmail:
		return m.email.Focus()
	case views.FocusNumber:
		return m.number.Focus()
	}
	return nil
}

// updateFocusedInput forwards msg to the focused field. The number field
// is reformatted after every change.
func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case views.FocusEmail:
		m.email, cmd = m.email.Update(msg)
	case views.FocusNumber:
		before := m.number.Value()
		m.number, cmd = m.number.Update(msg)
		if raw := m.number.Value(); raw != before {
			formatted := form.FormatNumber(raw)
			if formatted != raw {
				m.number.SetValue(formatted)
				m.number.CursorEnd()
			}
		}
	}
	return cmd
}

func (m *Model) syncKeys() {
	st := m.executor.State()
	m.keys.sync(st.Loading(), st.Phase() == state.PhaseCompleted)
}

// View renders the UI
func (m *Model) View() string {
	vs := views.ViewState{
		Width:       m.width,
		Height:      m.height,
		EmailInput:  m.email.View(),
		NumberInput: m.number.View(),
		Focus:       m.focus,
		Request:     m.executor.State(),
		Notice:      m.notice,
	}
	if vs.Request.Loading() {
		vs.Spinner = m.spinner.View()
	}
	if m.config == nil || m.config.UISettings.ShowHelp {
		vs.HelpView = m.help.View(m.keys)
	}
	return m.renderer.Render(vs)
}
