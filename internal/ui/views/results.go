package views

import (
	"fmt"
	"strings"

	"usersearch/internal/domain"
)

// ResultBullet prefixes each rendered record
const ResultBullet = "▸ "

// minVisibleResults is shown even on very short terminals
const minVisibleResults = 3

// ResultRenderer renders the list of matched users
type ResultRenderer struct {
	styles *Styles
}

// NewResultRenderer creates a new result renderer
func NewResultRenderer(styles *Styles) *ResultRenderer {
	return &ResultRenderer{styles: styles}
}

// FormatRecord is the plain text line for one record
func FormatRecord(rec domain.UserRecord) string {
	return fmt.Sprintf("Email: %s, Number: %s", rec.Email, rec.Number)
}

// PlainList renders records as plain text, one per line, for the pager
func PlainList(records []domain.UserRecord) string {
	var b strings.Builder
	for i, rec := range records {
		fmt.Fprintf(&b, "%3d. %s\n", i+1, FormatRecord(rec))
	}
	return b.String()
}

// Render lists records, truncating to maxLines when it is positive
func (rr *ResultRenderer) Render(records []domain.UserRecord, maxLines int) string {
	visible := len(records)
	if maxLines > 0 && visible > maxLines {
		visible = maxLines - 1
		if visible < minVisibleResults {
			visible = minVisibleResults
		}
		if visible > len(records) {
			visible = len(records)
		}
	}

	var b strings.Builder
	for _, rec := range records[:visible] {
		b.WriteString(ResultBullet)
		b.WriteString(rr.renderRecord(rec))
		b.WriteString("\n")
	}

	if hidden := len(records) - visible; hidden > 0 {
		b.WriteString(rr.styles.Dim.Render(fmt.Sprintf("… and %d more (ctrl+o to open all)", hidden)))
		b.WriteString("\n")
	}
	return b.String()
}

func (rr *ResultRenderer) renderRecord(rec domain.UserRecord) string {
	return rr.styles.ResultKey.Render("Email: ") +
		rr.styles.ResultValue.Render(rec.Email) +
		rr.styles.ResultKey.Render(", Number: ") +
		rr.styles.ResultValue.Render(rec.Number)
}
