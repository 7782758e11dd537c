// Package tui is the Bubble Tea front end: tabbed catalog browsing, the
// detail overlay with its review thread, favorites, quick search, and the
// admin mutation forms.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/afariz/mediashelf/internal/catalog"
	"github.com/afariz/mediashelf/internal/domain"
	"github.com/afariz/mediashelf/internal/favorites"
	"github.com/afariz/mediashelf/internal/query"
	"github.com/afariz/mediashelf/internal/reviews"
	"github.com/afariz/mediashelf/internal/search"
	"github.com/afariz/mediashelf/internal/session"
	"github.com/afariz/mediashelf/internal/tui/components"
	"github.com/afariz/mediashelf/internal/tui/styles"
)

const statusTimeout = 4 * time.Second

// Tab identifies the three browse views.
type Tab int

const (
	TabMovies Tab = iota
	TabBooks
	TabFavorites
)

func (t Tab) title() string {
	switch t {
	case TabMovies:
		return "Movies"
	case TabBooks:
		return "Books"
	default:
		return "Favorites"
	}
}

// kind returns the catalog kind behind a collection tab. The favorites tab
// spans both kinds and reports ok=false.
func (t Tab) kind() (domain.Kind, bool) {
	switch t {
	case TabMovies:
		return domain.KindMovie, true
	case TabBooks:
		return domain.KindBook, true
	default:
		return domain.KindMovie, false
	}
}

// Model is the main Bubble Tea model for the application.
type Model struct {
	// Services
	Cache     *catalog.Cache
	Admin     *catalog.Commands
	Reviews   *reviews.Loader
	Favorites *favorites.Store
	Session   *session.Controller
	Quick     *search.Service

	User     domain.User
	PageSize int
	logger   *slog.Logger

	// Browse state
	tab     Tab
	cursor  int // Index within the visible page
	q       *query.State
	favPage int // Favorites tab page, outside per-kind paging

	searchInput textinput.Model
	searching   bool

	// Overlays
	genrePicker   components.GenrePicker
	reviewForm    components.ReviewForm
	itemForm      components.ItemForm
	confirmDelete bool
	deleteTarget  domain.Item
	helpOpen      bool

	quickOpen    bool
	quickInput   textinput.Model
	quickResults []search.Result
	quickCursor  int

	// Chrome
	spin        spinner.Model
	loading     bool
	width       int
	height      int
	statusMsg   string
	statusIsErr bool
}

// NewModel wires the application model from its services.
func NewModel(
	cache *catalog.Cache,
	admin *catalog.Commands,
	loader *reviews.Loader,
	favs *favorites.Store,
	sess *session.Controller,
	quick *search.Service,
	user domain.User,
	pageSize int,
	logger *slog.Logger,
) Model {
	if pageSize < 1 {
		pageSize = query.DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	si := textinput.New()
	si.Placeholder = "search title or " + domain.KindMovie.CreatorLabel() + "/" + domain.KindBook.CreatorLabel()
	si.Prompt = "/ "
	si.PromptStyle = styles.AccentStyle
	si.CharLimit = 80

	qi := textinput.New()
	qi.Placeholder = "jump to anything"
	qi.Prompt = "» "
	qi.PromptStyle = styles.AccentStyle
	qi.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Model{
		Cache:       cache,
		Admin:       admin,
		Reviews:     loader,
		Favorites:   favs,
		Session:     sess,
		Quick:       quick,
		User:        user,
		PageSize:    pageSize,
		logger:      logger,
		q:           query.NewState(),
		favPage:     1,
		searchInput: si,
		quickInput:  qi,
		genrePicker: components.NewGenrePicker(),
		reviewForm:  components.NewReviewForm(),
		itemForm:    components.NewItemForm(),
		spin:        sp,
		loading:     true,
	}
}

// Init kicks off the initial full refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		RefreshAllCmd(m.Cache),
		m.spin.Tick,
	)
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading && !m.Session.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case SnapshotsRefreshedMsg:
		m.loading = false
		var cmds []tea.Cmd
		for _, kind := range domain.AllKinds() {
			if cmd := m.reconcile(kind); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		m.clampPages()
		return m, tea.Batch(cmds...)

	case SnapshotRefreshedMsg:
		m.loading = false
		cmd := m.reconcile(msg.Kind)
		m.clampPages()
		return m, cmd

	case ReviewsLoadedMsg:
		m.Session.ApplyThread(msg.Token, msg.Thread)
		return m, nil

	case ReviewSubmittedMsg:
		m.reviewForm.Hide()
		m.setStatus("Review submitted", false)
		var cmds []tea.Cmd
		cmds = append(cmds, ClearStatusCmd(statusTimeout))
		if token, ok := m.Session.ReloadToken(); ok {
			cmds = append(cmds, LoadReviewsCmd(m.Reviews, token), m.spin.Tick)
		}
		return m, tea.Batch(cmds...)

	case ReviewRejectedMsg:
		m.reviewForm.SetError(msg.Err.Message)
		return m, nil

	case ItemSavedMsg:
		m.itemForm.Hide()
		if msg.Created {
			m.setStatus("Added "+msg.Item.Title, false)
		} else {
			m.setStatus("Saved "+msg.Item.Title, false)
		}
		return m, tea.Batch(
			RefreshKindCmd(m.Cache, msg.Item.Kind),
			ClearStatusCmd(statusTimeout),
		)

	case ItemRejectedMsg:
		m.itemForm.SetError(msg.Err.Message)
		return m, nil

	case ItemDeletedMsg:
		m.confirmDelete = false
		m.setStatus("Deleted "+msg.Title, false)
		return m, tea.Batch(
			RefreshKindCmd(m.Cache, msg.Kind),
			ClearStatusCmd(statusTimeout),
		)

	case ErrMsg:
		m.loading = false
		m.setStatus(msg.Error(), true)
		return m, ClearStatusCmd(statusTimeout)

	case StatusMsg:
		m.setStatus(msg.Message, msg.IsError)
		return m, ClearStatusCmd(statusTimeout)

	case ClearStatusMsg:
		m.statusMsg = ""
		m.statusIsErr = false
		return m, nil
	}

	return m, nil
}

// reconcile re-resolves the open selection against the fresh snapshot of a
// kind and surfaces a closed selection in the status bar.
func (m *Model) reconcile(kind domain.Kind) tea.Cmd {
	switch m.Session.Reconcile(kind, m.Cache.Snapshot(kind)) {
	case session.ReconcileClosed:
		m.setStatus("The "+kind.String()+" you were viewing is no longer in the catalog", false)
		return ClearStatusCmd(statusTimeout)
	default:
		return nil
	}
}

// clampPages pulls every page number back into range after a snapshot or
// filter change shrank the result set.
func (m *Model) clampPages() {
	for _, kind := range domain.AllKinds() {
		total := query.TotalPages(len(m.filtered(kind)), m.PageSize)
		if m.q.Page(kind) > total {
			m.q.SetPage(kind, total)
		}
	}
	if total := query.TotalPages(len(m.favoriteItems()), m.PageSize); m.favPage > total {
		m.favPage = total
	}
	if m.cursor >= len(m.pageItems()) {
		m.cursor = 0
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsErr = isErr
}

// filtered applies the current search term and genre to a kind's snapshot.
func (m *Model) filtered(kind domain.Kind) []domain.Item {
	return query.Filter(m.Cache.Snapshot(kind), m.q.SearchTerm, m.q.Genre)
}

// favoriteItems returns the filtered favorites of both kinds, movies first.
func (m *Model) favoriteItems() []domain.Item {
	set := m.Favorites.Current()
	var out []domain.Item
	for _, kind := range domain.AllKinds() {
		for _, item := range m.filtered(kind) {
			if set.Contains(kind, item.ID) {
				out = append(out, item)
			}
		}
	}
	return out
}

// pageItems returns the rows visible on the current tab's current page.
func (m *Model) pageItems() []domain.Item {
	if kind, ok := m.tab.kind(); ok {
		return query.Paginate(m.filtered(kind), m.q.Page(kind), m.PageSize)
	}
	return query.Paginate(m.favoriteItems(), m.favPage, m.PageSize)
}

// currentPage returns the 1-based page and total pages for the active tab.
func (m *Model) currentPage() (page, total int) {
	if kind, ok := m.tab.kind(); ok {
		return m.q.Page(kind), query.TotalPages(len(m.filtered(kind)), m.PageSize)
	}
	return m.favPage, query.TotalPages(len(m.favoriteItems()), m.PageSize)
}

func (m *Model) setCurrentPage(page int) {
	if page < 1 {
		page = 1
	}
	if kind, ok := m.tab.kind(); ok {
		m.q.SetPage(kind, page)
	} else {
		m.favPage = page
	}
	m.cursor = 0
}

// selectedItem returns the highlighted row, if any.
func (m *Model) selectedItem() (domain.Item, bool) {
	items := m.pageItems()
	if m.cursor < 0 || m.cursor >= len(items) {
		return domain.Item{}, false
	}
	return items[m.cursor], true
}

// genreOptions collects the picker options for the active tab.
func (m *Model) genreOptions() []string {
	if kind, ok := m.tab.kind(); ok {
		return query.GenreOptions(m.Cache.Snapshot(kind))
	}
	var combined []domain.Item
	for _, kind := range domain.AllKinds() {
		combined = append(combined, m.Cache.Snapshot(kind)...)
	}
	return query.GenreOptions(combined)
}
