package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/afariz/mediashelf/internal/domain"
	"github.com/afariz/mediashelf/internal/query"
	"github.com/afariz/mediashelf/internal/tui/styles"
)

// View renders the whole screen.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	base := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.filterView(),
		m.contentView(),
		m.footerView(),
	)

	overlay := m.overlayView()
	if overlay == "" {
		return base
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
}

func (m Model) headerView() string {
	title := styles.TitleStyle.Render("MediaShelf")

	var tabs []string
	for i := TabMovies; i <= TabFavorites; i++ {
		label := fmt.Sprintf("%d %s", int(i)+1, i.title())
		if i == TabFavorites {
			count := 0
			for _, kind := range domain.AllKinds() {
				count += m.Favorites.Current().Count(kind)
			}
			label = fmt.Sprintf("%s (%d)", label, count)
		}
		if i == m.tab {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(label))
		}
	}

	user := styles.DimStyle.Render(m.User.Username)
	if m.User.IsAdmin() {
		user += " " + styles.AccentStyle.Render("[admin]")
	}

	left := title + "  " + strings.Join(tabs, " ")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(user) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + user
}

func (m Model) filterView() string {
	var parts []string
	if m.searching || m.searchInput.Value() != "" {
		parts = append(parts, m.searchInput.View())
	} else {
		parts = append(parts, styles.DimStyle.Render("/ to search"))
	}

	genre := m.q.Genre
	if genre == query.GenreAll {
		parts = append(parts, styles.DimStyle.Render("genre: all"))
	} else {
		parts = append(parts, styles.AccentStyle.Render("genre: "+genre))
	}

	if m.loading {
		parts = append(parts, m.spin.View()+styles.DimStyle.Render(" syncing"))
	}

	return " " + strings.Join(parts, "   ")
}

func (m Model) contentView() string {
	if m.Session.IsOpen() {
		return m.detailView()
	}
	return m.listView()
}

func (m Model) listView() string {
	items := m.pageItems()
	if len(items) == 0 {
		msg := "Nothing here"
		if m.q.SearchTerm != "" || m.q.Genre != query.GenreAll {
			msg = "No matches for the current filters"
		} else if m.tab == TabFavorites {
			msg = "No favorites yet: press f on any title"
		}
		return "\n " + styles.DimStyle.Render(msg) + "\n"
	}

	set := m.Favorites.Current()
	var rows []string
	for i, item := range items {
		rows = append(rows, m.cardView(item, i == m.cursor, set.Contains(item.Kind, item.ID)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) cardView(item domain.Item, selected, favorite bool) string {
	mark := styles.DimStyle.Render(styles.NotFavoriteChar)
	if favorite {
		mark = styles.FavoriteMark
	}

	title := styles.TitleStyle.Render(styles.Truncate(item.Title, 50))
	if m.tab == TabFavorites {
		title += styles.DimStyle.Render(" · " + item.Kind.String())
	}

	meta := fmt.Sprintf("%s · %d", item.CreatorOrUnknown(), item.ReleaseYear)
	if extent := item.Extent(); extent != "" {
		meta += " · " + extent
	}
	if item.Genre != "" {
		meta += " · " + item.Genre
	}

	rating := styles.RatingStars(item.Rating, item.Kind.RatingBound()) +
		"  " + styles.SubtitleStyle.Render(item.FormattedRating())

	body := lipgloss.JoinVertical(lipgloss.Left,
		mark+" "+title,
		"  "+styles.SubtitleStyle.Render(meta),
		"  "+rating,
	)

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	width := m.width - 4
	if width > 76 {
		width = 76
	}
	return style.Width(width).Render(body)
}

func (m Model) detailView() string {
	item, ok := m.Session.Item()
	if !ok {
		return ""
	}

	var b strings.Builder
	fav := ""
	if m.Favorites.Current().Contains(item.Kind, item.ID) {
		fav = " " + styles.FavoriteMark
	}
	b.WriteString(" " + styles.TitleStyle.Render(item.Title) + fav + "\n")

	meta := fmt.Sprintf("%s: %s · %d", item.Kind.CreatorLabel(), item.CreatorOrUnknown(), item.ReleaseYear)
	if extent := item.Extent(); extent != "" {
		meta += " · " + extent
	}
	if item.Genre != "" {
		meta += " · " + item.Genre
	}
	b.WriteString(" " + styles.SubtitleStyle.Render(meta) + "\n")
	b.WriteString(" " + styles.RatingStars(item.Rating, item.Kind.RatingBound()) +
		"  " + styles.SubtitleStyle.Render(item.FormattedRating()) + "\n")

	if item.Description != "" {
		b.WriteString("\n " + styles.SubtitleStyle.Render(wordWrap(item.Description, m.width-4)) + "\n")
	}

	b.WriteString("\n " + styles.AccentStyle.Render("Reviews") + "\n")
	switch {
	case m.Session.Loading():
		b.WriteString(" " + m.spin.View() + styles.DimStyle.Render(" loading reviews") + "\n")
	case len(m.Session.Thread()) == 0:
		b.WriteString(" " + styles.DimStyle.Render("No reviews yet: press w to write one") + "\n")
	default:
		for _, review := range m.Session.Thread() {
			head := styles.TitleStyle.Render(review.Author) +
				styles.DimStyle.Render(fmt.Sprintf("  %.1f/%.0f · %s",
					review.Rating, item.Kind.RatingBound(), review.CreatedAt.Format("Jan 2, 2006")))
			b.WriteString(" " + head + "\n")
			b.WriteString("   " + styles.SubtitleStyle.Render(wordWrap(review.Text, m.width-6)) + "\n")
		}
	}

	return b.String()
}

func (m Model) footerView() string {
	if m.statusMsg != "" {
		style := styles.SuccessStyle
		if m.statusIsErr {
			style = styles.ErrorStyle
		}
		return " " + style.Render(m.statusMsg)
	}

	if m.Session.IsOpen() {
		return " " + helpLine(
			"esc", "back", "w", "review", "f", "favorite", "q", "close",
		)
	}

	page, total := m.currentPage()
	pos := styles.DimStyle.Render(fmt.Sprintf("page %d/%d", page, total))
	keys := helpLine(
		"↑↓", "move", "←→", "page", "enter", "open", "f", "favorite",
		"g", "genre", "s", "jump", "r", "sync", "?", "help",
	)
	return " " + pos + "  " + keys
}

func (m Model) overlayView() string {
	switch {
	case m.itemForm.Visible():
		return m.itemForm.View()
	case m.reviewForm.Visible():
		return m.reviewForm.View()
	case m.confirmDelete:
		return m.confirmDeleteView()
	case m.genrePicker.Visible():
		return m.genrePicker.View()
	case m.quickOpen:
		return m.quickSearchView()
	case m.helpOpen:
		return m.helpView()
	}
	return ""
}

func (m Model) confirmDeleteView() string {
	body := styles.ModalTitleStyle.Render("Delete "+m.deleteTarget.Kind.String()) + "\n" +
		styles.SubtitleStyle.Render(m.deleteTarget.Title) + "\n\n" +
		styles.ErrorStyle.Render("This cannot be undone.") + "\n\n" +
		helpLine("y", "delete", "n", "cancel")
	return styles.ModalStyle.Render(body)
}

func (m Model) quickSearchView() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Quick search"))
	b.WriteString("\n")
	b.WriteString(m.quickInput.View())
	b.WriteString("\n\n")

	if len(m.quickResults) == 0 {
		b.WriteString(styles.DimStyle.Render("type to search movies and books"))
	}
	for i, result := range m.quickResults {
		line := fmt.Sprintf("%s  %s · %s",
			styles.Truncate(result.Item.Title, 38),
			result.Item.Kind.String(),
			result.Item.CreatorOrUnknown())
		if i == m.quickCursor {
			b.WriteString(styles.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(line))
		}
		if i < len(m.quickResults)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(helpLine("enter", "open", "esc", "cancel"))
	return styles.ModalStyle.Render(lipgloss.NewStyle().Width(56).Render(b.String()))
}

func (m Model) helpView() string {
	rows := [][2]string{
		{"1/2/3, tab", "switch between movies, books, favorites"},
		{"↑/↓, j/k", "move selection"},
		{"←/→, h/l", "previous / next page"},
		{"enter", "open detail view with reviews"},
		{"f, space", "toggle favorite"},
		{"/", "filter by title or creator"},
		{"g", "pick a genre filter"},
		{"s", "fuzzy quick search across everything"},
		{"w", "write a review (detail view)"},
		{"r", "re-sync from the server"},
		{"esc", "clear filters / close"},
		{"q, ctrl+c", "quit"},
	}
	if m.User.IsAdmin() {
		rows = append(rows,
			[2]string{"a", "add item (admin)"},
			[2]string{"e", "edit item (admin)"},
			[2]string{"x", "delete item (admin)"},
		)
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Keys"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(styles.HelpKeyStyle.Render(styles.Pad(row[0], 12)))
		b.WriteString(styles.HelpDescStyle.Render(row[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("press any key to close"))
	return styles.ModalStyle.Render(b.String())
}

// helpLine renders alternating key/description pairs.
func helpLine(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, styles.HelpKeyStyle.Render(pairs[i])+" "+styles.HelpDescStyle.Render(pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// wordWrap wraps text at word boundaries to the given width.
func wordWrap(text string, width int) string {
	if width < 10 {
		width = 10
	}
	words := strings.Fields(text)
	var lines []string
	var line string
	for _, word := range words {
		if line == "" {
			line = word
			continue
		}
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n ")
}
