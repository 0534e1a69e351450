package views

import (
	"fmt"
	"strings"

	"usersearch/internal/ui/state"
)

// Messages shown for each outcome
const (
	LoadingText   = "Loading..."
	NotFoundText  = "Not found"
	CancelledText = "Request was canceled"
	FailedPrefix  = "Search failed"
	SubmitLabel   = "Submit"
	CancelLabel   = "Cancel"
)

// Focus identifies the focused form control
type Focus int

const (
	FocusEmail Focus = iota
	FocusNumber
	FocusButton
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width       int
	Height      int
	EmailInput  string // rendered email textinput
	NumberInput string // rendered number textinput
	Focus       Focus
	Request     state.RequestState
	Notice      string // validation message, empty when none
	Spinner     string
	HelpView    string
}

// Renderer handles all view rendering
type Renderer struct {
	styles  *Styles
	results *ResultRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:  styles,
		results: NewResultRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.styles.Title.Render("usersearch"))
	content.WriteString("\n")

	content.WriteString(r.renderField("Email:", vs.EmailInput, vs.Focus == FocusEmail))
	content.WriteString("\n")
	content.WriteString(r.renderField("Number:", vs.NumberInput, vs.Focus == FocusNumber))
	content.WriteString("\n\n")
	content.WriteString(r.renderButton(vs))
	content.WriteString("\n\n")

	if vs.Notice != "" {
		content.WriteString(r.styles.Notice.Render(vs.Notice))
		content.WriteString("\n")
	}

	used := strings.Count(content.String(), "\n") + 4
	content.WriteString(r.renderStatus(vs, vs.Height-used))

	if vs.HelpView != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(vs.HelpView))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderField(label, input string, focused bool) string {
	style := r.styles.Label
	if focused {
		style = r.styles.FocusedLabel
	}
	return style.Render(label) + " " + input
}

// renderButton labels the button by what pressing it will do
func (r *Renderer) renderButton(vs ViewState) string {
	if vs.Request.Loading() {
		return r.styles.CancelButton.Render(CancelLabel)
	}
	if vs.Focus == FocusButton {
		return r.styles.FocusedButton.Render(SubmitLabel)
	}
	return r.styles.Button.Render(SubmitLabel)
}

func (r *Renderer) renderStatus(vs ViewState, maxLines int) string {
	req := vs.Request
	switch req.Phase() {
	case state.PhaseInFlight:
		line := LoadingText
		if vs.Spinner != "" {
			line = vs.Spinner + " " + line
		}
		return r.styles.Loading.Render(line) + "\n"
	case state.PhaseNotFound:
		return r.styles.NotFound.Render(NotFoundText) + "\n"
	case state.PhaseCancelled:
		return r.styles.Cancelled.Render(CancelledText) + "\n"
	case state.PhaseFailed:
		return r.styles.Error.Render(fmt.Sprintf("%s: %v", FailedPrefix, req.Err())) + "\n"
	case state.PhaseCompleted:
		return r.results.Render(req.Results(), maxLines)
	default:
		return ""
	}
}
