package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/afariz/mediashelf/internal/domain"
	"github.com/afariz/mediashelf/internal/query"
)

// handleKey routes a key press to whichever layer currently owns input:
// modal overlays first, then the detail view, then the browse view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.itemForm.Visible():
		return m.handleItemFormKey(msg)
	case m.reviewForm.Visible():
		return m.handleReviewFormKey(msg)
	case m.confirmDelete:
		return m.handleConfirmDeleteKey(msg)
	case m.genrePicker.Visible():
		return m.handleGenrePickerKey(msg)
	case m.quickOpen:
		return m.handleQuickSearchKey(msg)
	case m.helpOpen:
		m.helpOpen = false
		return m, nil
	case m.searching:
		return m.handleSearchInputKey(msg)
	case m.Session.IsOpen():
		return m.handleDetailKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "1":
		m.tab = TabMovies
		m.cursor = 0
	case "2":
		m.tab = TabBooks
		m.cursor = 0
	case "3":
		m.tab = TabFavorites
		m.cursor = 0
	case "tab":
		m.tab = (m.tab + 1) % 3
		m.cursor = 0

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.pageItems())-1 {
			m.cursor++
		}

	case "left", "h":
		if page, _ := m.currentPage(); page > 1 {
			m.setCurrentPage(page - 1)
		}
	case "right", "l":
		if page, total := m.currentPage(); page < total {
			m.setCurrentPage(page + 1)
		}

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, nil

	case "g":
		m.genrePicker.Show(m.genreOptions(), m.q.Genre)
		return m, nil

	case "f", " ":
		if item, ok := m.selectedItem(); ok {
			m.Favorites.Toggle(item.Kind, item.ID)
			m.clampPages()
		}

	case "enter":
		if item, ok := m.selectedItem(); ok {
			token := m.Session.Select(item)
			return m, tea.Batch(LoadReviewsCmd(m.Reviews, token), m.spin.Tick)
		}

	case "r":
		m.loading = true
		return m, tea.Batch(RefreshAllCmd(m.Cache), m.spin.Tick)

	case "s":
		m.quickOpen = true
		m.quickInput.SetValue("")
		m.quickInput.Focus()
		m.quickResults = nil
		m.quickCursor = 0
		return m, nil

	case "a":
		if kind, ok := m.tab.kind(); ok && m.requireAdmin() {
			m.itemForm.ShowCreate(kind)
			return m, nil
		}
	case "e":
		if item, ok := m.selectedItem(); ok && m.requireAdmin() {
			m.itemForm.ShowEdit(item)
			return m, nil
		}
	case "x":
		if item, ok := m.selectedItem(); ok && m.requireAdmin() {
			m.confirmDelete = true
			m.deleteTarget = item
			return m, nil
		}

	case "esc":
		if m.q.SearchTerm != "" || m.q.Genre != query.GenreAll {
			m.resetFilters()
		}

	case "?":
		m.helpOpen = true
	}

	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.Session.Close()

	case "w":
		if item, ok := m.Session.Item(); ok {
			m.reviewForm.Show(item.Kind)
		}

	case "f", " ":
		if item, ok := m.Session.Item(); ok {
			m.Favorites.Toggle(item.Kind, item.ID)
		}

	case "e":
		if item, ok := m.Session.Item(); ok && m.requireAdmin() {
			m.itemForm.ShowEdit(item)
		}
	case "x":
		if item, ok := m.Session.Item(); ok && m.requireAdmin() {
			m.confirmDelete = true
			m.deleteTarget = item
		}
	}
	return m, nil
}

func (m Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.applySearchTerm("")
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applySearchTerm(m.searchInput.Value())
	return m, cmd
}

func (m Model) handleGenrePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if genre, ok := m.genrePicker.Selection(); ok {
			m.q.SetGenre(genre)
			m.favPage = 1
			m.cursor = 0
		}
		m.genrePicker.Hide()
		return m, nil
	case "esc":
		m.genrePicker.Hide()
		return m, nil
	}
	m.genrePicker.Update(msg)
	return m, nil
}

func (m Model) handleQuickSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.quickOpen = false
		m.quickInput.Blur()
		return m, nil
	case "up", "ctrl+p":
		if m.quickCursor > 0 {
			m.quickCursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.quickCursor < len(m.quickResults)-1 {
			m.quickCursor++
		}
		return m, nil
	case "enter":
		if m.quickCursor < len(m.quickResults) {
			item := m.quickResults[m.quickCursor].Item
			m.quickOpen = false
			m.quickInput.Blur()
			token := m.Session.Select(item)
			return m, tea.Batch(LoadReviewsCmd(m.Reviews, token), m.spin.Tick)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.quickInput, cmd = m.quickInput.Update(msg)
	m.quickResults = m.Quick.Search(m.quickInput.Value())
	if len(m.quickResults) > quickResultLimit {
		m.quickResults = m.quickResults[:quickResultLimit]
	}
	m.quickCursor = 0
	return m, cmd
}

func (m Model) handleReviewFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.reviewForm.Hide()
		return m, nil
	case "enter":
		item, ok := m.Session.Item()
		if !ok {
			m.reviewForm.Hide()
			return m, nil
		}
		author, rating, text, ok := m.reviewForm.Values()
		if !ok {
			return m, nil
		}
		return m, SubmitReviewCmd(m.Reviews, item.Kind, item.ID, author, rating, text)
	}
	return m, m.reviewForm.Update(msg)
}

func (m Model) handleItemFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.itemForm.Hide()
		return m, nil
	case "enter":
		fields, ok := m.itemForm.Fields()
		if !ok {
			return m, nil
		}
		return m, SaveItemCmd(m.Admin, m.itemForm.Kind(), m.itemForm.ItemID(), fields)
	}
	return m, m.itemForm.Update(msg)
}

func (m Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		target := m.deleteTarget
		return m, DeleteItemCmd(m.Admin, target.Kind, target.ID, target.Title)
	case "n", "esc":
		m.confirmDelete = false
	}
	return m, nil
}

const quickResultLimit = 10

// applySearchTerm installs a new search term and, when it actually
// changed, resets every page so the narrowed result set starts at page 1.
func (m *Model) applySearchTerm(term string) {
	if term == m.q.SearchTerm {
		return
	}
	m.q.SetSearchTerm(term)
	for _, kind := range domain.AllKinds() {
		m.q.SetPage(kind, 1)
	}
	m.favPage = 1
	m.cursor = 0
}

func (m *Model) resetFilters() {
	m.searchInput.SetValue("")
	m.applySearchTerm("")
	m.q.SetGenre(query.GenreAll)
	m.favPage = 1
	m.cursor = 0
}

// requireAdmin gates the mutation surface; non-admins get a status nudge.
func (m *Model) requireAdmin() bool {
	if m.User.IsAdmin() {
		return true
	}
	m.setStatus("Admin account required", true)
	return false
}
