package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/afariz/mediashelf/internal/domain"
	"github.com/afariz/mediashelf/internal/tui/styles"
)

const (
	reviewFieldAuthor = iota
	reviewFieldRating
	reviewFieldText
	reviewFieldCount
)

// ReviewForm collects a review for the open item.
type ReviewForm struct {
	inputs  [reviewFieldCount]textinput.Model
	focus   int
	errText string
	visible bool
	kind    domain.Kind
}

// NewReviewForm creates a hidden review form.
func NewReviewForm() ReviewForm {
	var f ReviewForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.PromptStyle = styles.AccentStyle
		f.inputs[i] = ti
	}
	f.inputs[reviewFieldAuthor].Placeholder = "your name"
	f.inputs[reviewFieldAuthor].CharLimit = 60
	f.inputs[reviewFieldRating].CharLimit = 4
	f.inputs[reviewFieldText].Placeholder = "what did you think?"
	f.inputs[reviewFieldText].CharLimit = 500
	return f
}

// Show opens the form for an item of the given kind, keeping the author
// name from the previous submission.
func (f *ReviewForm) Show(kind domain.Kind) {
	f.kind = kind
	f.visible = true
	f.errText = ""
	f.inputs[reviewFieldRating].SetValue("")
	f.inputs[reviewFieldRating].Placeholder = fmt.Sprintf("0-%.0f", kind.RatingBound())
	f.inputs[reviewFieldText].SetValue("")
	f.setFocus(reviewFieldAuthor)
}

// Hide closes the form.
func (f *ReviewForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// Visible reports whether the form is open.
func (f *ReviewForm) Visible() bool { return f.visible }

// SetError displays a rejection under the form.
func (f *ReviewForm) SetError(msg string) { f.errText = msg }

// Values parses the form into a submission payload. A malformed rating is
// reported in the form itself and ok is false.
func (f *ReviewForm) Values() (author string, rating float64, text string, ok bool) {
	author = strings.TrimSpace(f.inputs[reviewFieldAuthor].Value())
	text = strings.TrimSpace(f.inputs[reviewFieldText].Value())

	raw := strings.TrimSpace(f.inputs[reviewFieldRating].Value())
	if raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			f.errText = "rating must be a number"
			return "", 0, "", false
		}
		rating = parsed
	}
	return author, rating, text, true
}

// Update handles key input while the form is open.
func (f *ReviewForm) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.setFocus((f.focus + 1) % reviewFieldCount)
		return nil
	case "shift+tab", "up":
		f.setFocus((f.focus + reviewFieldCount - 1) % reviewFieldCount)
		return nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// View renders the form.
func (f *ReviewForm) View() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Write a review"))
	b.WriteString("\n")

	labels := [reviewFieldCount]string{"Name", "Rating", "Review"}
	for i, label := range labels {
		b.WriteString(styles.SubtitleStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}

	if f.errText != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(f.errText))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" submit  "))
	b.WriteString(styles.HelpKeyStyle.Render("tab") + styles.HelpDescStyle.Render(" next field  "))
	b.WriteString(styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" cancel"))

	return styles.ModalStyle.Render(lipgloss.NewStyle().Width(44).Render(b.String()))
}

func (f *ReviewForm) setFocus(idx int) {
	f.focus = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}
