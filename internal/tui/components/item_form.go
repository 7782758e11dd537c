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
	itemFieldTitle = iota
	itemFieldCreator
	itemFieldGenre
	itemFieldRating
	itemFieldYear
	itemFieldExtent
	itemFieldDescription
	itemFieldImageURL
	itemFieldCount
)

// ItemForm is the admin create/edit form for a catalog item.
type ItemForm struct {
	inputs  [itemFieldCount]textinput.Model
	focus   int
	errText string
	visible bool

	kind   domain.Kind
	itemID string // Empty when creating
}

// NewItemForm creates a hidden item form.
func NewItemForm() ItemForm {
	var f ItemForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.PromptStyle = styles.AccentStyle
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[itemFieldRating].CharLimit = 4
	f.inputs[itemFieldYear].CharLimit = 4
	f.inputs[itemFieldExtent].CharLimit = 5
	return f
}

// ShowCreate opens an empty form for a new item of the given kind.
func (f *ItemForm) ShowCreate(kind domain.Kind) {
	f.kind = kind
	f.itemID = ""
	f.errText = ""
	f.visible = true
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.inputs[itemFieldRating].Placeholder = fmt.Sprintf("0-%.0f", kind.RatingBound())
	f.setFocus(itemFieldTitle)
}

// ShowEdit opens the form pre-filled from an existing item.
func (f *ItemForm) ShowEdit(item domain.Item) {
	f.kind = item.Kind
	f.itemID = item.ID
	f.errText = ""
	f.visible = true

	f.inputs[itemFieldTitle].SetValue(item.Title)
	f.inputs[itemFieldCreator].SetValue(item.Creator)
	f.inputs[itemFieldGenre].SetValue(item.Genre)
	f.inputs[itemFieldRating].SetValue(formatFloat(item.Rating))
	f.inputs[itemFieldRating].Placeholder = fmt.Sprintf("0-%.0f", item.Kind.RatingBound())
	f.inputs[itemFieldYear].SetValue(formatInt(item.ReleaseYear))
	if item.Kind == domain.KindBook {
		f.inputs[itemFieldExtent].SetValue(formatInt(item.Pages))
	} else {
		f.inputs[itemFieldExtent].SetValue(formatInt(item.DurationMin))
	}
	f.inputs[itemFieldDescription].SetValue(item.Description)
	f.inputs[itemFieldImageURL].SetValue(item.ImageURL)
	f.setFocus(itemFieldTitle)
}

// Hide closes the form.
func (f *ItemForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// Visible reports whether the form is open.
func (f *ItemForm) Visible() bool { return f.visible }

// Kind returns the kind the form is editing.
func (f *ItemForm) Kind() domain.Kind { return f.kind }

// ItemID returns the id being edited, empty for a create.
func (f *ItemForm) ItemID() string { return f.itemID }

// SetError displays a rejection under the form.
func (f *ItemForm) SetError(msg string) { f.errText = msg }

// Fields parses the form into a mutation payload. Malformed numbers are
// reported in the form itself and ok is false.
func (f *ItemForm) Fields() (fields domain.ItemFields, ok bool) {
	fields.Title = strings.TrimSpace(f.inputs[itemFieldTitle].Value())
	fields.Creator = strings.TrimSpace(f.inputs[itemFieldCreator].Value())
	fields.Genre = strings.TrimSpace(f.inputs[itemFieldGenre].Value())
	fields.Description = strings.TrimSpace(f.inputs[itemFieldDescription].Value())
	fields.ImageURL = strings.TrimSpace(f.inputs[itemFieldImageURL].Value())

	var err error
	if fields.Rating, err = parseFloat(f.inputs[itemFieldRating].Value()); err != nil {
		f.errText = "rating must be a number"
		return domain.ItemFields{}, false
	}
	if fields.ReleaseYear, err = parseInt(f.inputs[itemFieldYear].Value()); err != nil {
		f.errText = "year must be a number"
		return domain.ItemFields{}, false
	}

	extent, err := parseInt(f.inputs[itemFieldExtent].Value())
	if err != nil {
		f.errText = extentLabel(f.kind) + " must be a number"
		return domain.ItemFields{}, false
	}
	if f.kind == domain.KindBook {
		fields.Pages = extent
	} else {
		fields.DurationMin = extent
	}
	return fields, true
}

// Update handles key input while the form is open.
func (f *ItemForm) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.setFocus((f.focus + 1) % itemFieldCount)
		return nil
	case "shift+tab", "up":
		f.setFocus((f.focus + itemFieldCount - 1) % itemFieldCount)
		return nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// View renders the form.
func (f *ItemForm) View() string {
	title := "New " + f.kind.String()
	if f.itemID != "" {
		title = "Edit " + f.kind.String()
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(title))
	b.WriteString("\n")

	labels := [itemFieldCount]string{
		"Title", f.kind.CreatorLabel(), "Genre", "Rating", "Year",
		extentLabel(f.kind), "Description", "Image URL",
	}
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
	b.WriteString(styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" save  "))
	b.WriteString(styles.HelpKeyStyle.Render("tab") + styles.HelpDescStyle.Render(" next field  "))
	b.WriteString(styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" cancel"))

	return styles.ModalStyle.Render(lipgloss.NewStyle().Width(50).Render(b.String()))
}

func (f *ItemForm) setFocus(idx int) {
	f.focus = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func extentLabel(kind domain.Kind) string {
	if kind == domain.KindBook {
		return "Pages"
	}
	return "Duration (min)"
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func parseFloat(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func parseInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
