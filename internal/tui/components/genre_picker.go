package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/afariz/mediashelf/internal/tui/styles"
)

// GenrePicker is a modal list of genre options with a fuzzy filter line.
type GenrePicker struct {
	input   textinput.Model
	options []string

	filteredIdx []int
	cursor      int
	visible     bool
}

// NewGenrePicker creates a hidden genre picker.
func NewGenrePicker() GenrePicker {
	ti := textinput.New()
	ti.Placeholder = "filter genres"
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.CharLimit = 40

	return GenrePicker{input: ti}
}

// Show opens the picker over the given options with the current choice
// pre-selected.
func (p *GenrePicker) Show(options []string, current string) {
	p.options = options
	p.visible = true
	p.input.SetValue("")
	p.input.Focus()
	p.resetFilter()
	for i, opt := range options {
		if opt == current {
			p.cursor = i
			break
		}
	}
}

// Hide closes the picker.
func (p *GenrePicker) Hide() {
	p.visible = false
	p.input.Blur()
}

// Visible reports whether the picker is open.
func (p *GenrePicker) Visible() bool { return p.visible }

// Selection returns the highlighted option, if any.
func (p *GenrePicker) Selection() (string, bool) {
	if len(p.filteredIdx) == 0 {
		return "", false
	}
	if p.cursor < 0 || p.cursor >= len(p.filteredIdx) {
		return "", false
	}
	return p.options[p.filteredIdx[p.cursor]], true
}

// Update handles key input while the picker is open. It returns true when
// the key was consumed.
func (p *GenrePicker) Update(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
		}
		return true
	case "down", "ctrl+n":
		if p.cursor < len(p.filteredIdx)-1 {
			p.cursor++
		}
		return true
	case "enter", "esc":
		// Owner decides what to do; not consumed here
		return false
	}

	p.input, _ = p.input.Update(msg)
	p.applyFilter()
	return true
}

// View renders the picker modal.
func (p *GenrePicker) View() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Genre"))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	if len(p.filteredIdx) == 0 {
		b.WriteString(styles.DimStyle.Render("no matching genres"))
	}
	for i, idx := range p.filteredIdx {
		line := p.options[idx]
		if i == p.cursor {
			b.WriteString(styles.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(line))
		}
		if i < len(p.filteredIdx)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" select  "))
	b.WriteString(styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" cancel"))

	return styles.ModalStyle.Render(lipgloss.NewStyle().Width(34).Render(b.String()))
}

func (p *GenrePicker) resetFilter() {
	p.filteredIdx = make([]int, len(p.options))
	for i := range p.options {
		p.filteredIdx[i] = i
	}
	p.cursor = 0
}

func (p *GenrePicker) applyFilter() {
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		p.resetFilter()
		return
	}

	lower := make([]string, len(p.options))
	for i, opt := range p.options {
		lower[i] = strings.ToLower(opt)
	}

	matches := fuzzy.Find(strings.ToLower(query), lower)
	p.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		p.filteredIdx[i] = match.Index
	}
	p.cursor = 0
}
