package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/discover/internal/formatter"
	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/session"
	"github.com/desertthunder/discover/internal/shared"
	"github.com/desertthunder/discover/internal/tasks"
	"github.com/mattn/go-runewidth"
)

const (
	noImage       = "(no image)"
	similarCell   = 20
	defaultWidth  = 80
	defaultHeight = 24
)

// focusArea is the section receiving key presses.
type focusArea int

const (
	focusSearch focusArea = iota
	focusSimilar
	focusTracks
)

// Lookuper runs one search. [tasks.LookupEngine] is the production implementation.
type Lookuper interface {
	Lookup(ctx context.Context, q models.SearchQuery) tasks.LookupResult
}

// ModelOpts configures [NewModel].
type ModelOpts struct {
	Engine      Lookuper
	Logger      *log.Logger
	DefaultTerm string             // searched once by Init; defaults to [models.DefaultSearchTerm]
	DemoUser    models.SessionUser // identity used by the login affordance
	OpenURL     func(string) error // defaults to [shared.OpenBrowser]
}

// Model is the results view: it owns the query, the loading flag and the last fetched artist.
type Model struct {
	ctx     context.Context
	logger  *log.Logger
	engine  Lookuper
	openURL func(string) error

	searchBar SearchBar
	spinner   spinner.Model
	tracks    list.Model
	help      help.Model
	keys      keyMap

	width      int
	height     int
	focus      focusArea
	similarIdx int
	status     string

	defaultQuery models.SearchQuery
	initialized  bool

	query   models.SearchQuery
	loading bool
	result  *models.ArtistResult
}

// NewModel creates the TUI model.
//
// The session store is resolved from ctx, so a model built outside of [session.NewContext] fails here with [session.ErrNoProvider].
func NewModel(ctx context.Context, opts ModelOpts) (*Model, error) {
	store, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("%w: lookup engine is required", shared.ErrMissingConfig)
	}

	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}
	q, ok := models.NewSearchQuery(opts.DefaultTerm)
	if !ok {
		q = models.DefaultSearchTerm
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.heading

	return &Model{
		ctx:          ctx,
		logger:       opts.Logger,
		engine:       opts.Engine,
		openURL:      opts.OpenURL,
		searchBar:    NewSearchBar(store, opts.DemoUser),
		spinner:      sp,
		tracks:       newTrackList(defaultWidth-4, 12),
		help:         newHelp(),
		keys:         newKeyMap(),
		width:        defaultWidth,
		height:       defaultHeight,
		defaultQuery: q,
	}, nil
}

// Init searches for the default term. Only the first call does anything.
func (m *Model) Init() tea.Cmd {
	if m.initialized {
		return nil
	}
	m.initialized = true
	return m.Search(m.defaultQuery.String())
}

// Search starts one lookup for term and marks the view as loading.
//
// Blank terms leave every field untouched and return nil. Earlier lookups are not cancelled;
// whichever response arrives last is the one displayed.
func (m *Model) Search(term string) tea.Cmd {
	q, ok := models.NewSearchQuery(term)
	if !ok {
		return nil
	}

	m.query = q
	m.loading = true
	m.status = ""

	ctx, engine := m.ctx, m.engine
	fetch := func() tea.Msg {
		return artistFetchedMsg{result: engine.Lookup(ctx, q)}
	}
	return tea.Batch(m.spinner.Tick, fetch)
}

// Query returns the most recently committed term.
func (m *Model) Query() models.SearchQuery { return m.query }

// Loading reports whether a lookup is outstanding.
func (m *Model) Loading() bool { return m.loading }

// Result returns the displayed artist, or nil.
func (m *Model) Result() *models.ArtistResult { return m.result }

// State derives the display state.
func (m *Model) State() models.ViewState { return models.StateOf(m.loading, m.result) }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchBar.SetWidth(msg.Width)
		m.tracks.SetSize(msg.Width-4, m.trackListHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case searchSubmittedMsg:
		return m, m.Search(msg.query.String())

	case artistFetchedMsg:
		m.applyResult(msg.result)
		return m, nil

	case browserOpenedMsg:
		if msg.err != nil {
			m.logger.Error("failed to open link", "url", msg.url, "error", msg.err)
			m.status = styles.err.Render("Could not open " + msg.url)
		} else {
			m.status = styles.muted.Render("Opened " + msg.url)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchBar, cmd = m.searchBar.Update(msg)
	return m, cmd
}

// applyResult replaces the displayed artist. Failures clear it.
func (m *Model) applyResult(res tasks.LookupResult) {
	m.loading = false

	if res.Error != nil {
		m.logger.Error("search failed", "term", res.Query, "error", res.Error)
		m.result = nil
	} else {
		m.result = res.Artist
	}

	m.similarIdx = 0
	m.tracks.SetItems(trackItems(m.result))
	m.tracks.Select(0)

	if !m.canFocus(m.focus) {
		m.setFocus(focusSearch)
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.auth):
		m.searchBar.ToggleAuth()
		return m, nil
	case key.Matches(msg, m.keys.more):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.next):
		return m, m.cycleFocus(1)
	case key.Matches(msg, m.keys.prev):
		return m, m.cycleFocus(-1)
	}

	switch m.focus {
	case focusSimilar:
		return m.handleSimilarKeys(msg)
	case focusTracks:
		return m.handleTrackKeys(msg)
	default:
		return m.handleSearchKeys(msg)
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.submit):
		return m, m.searchBar.Submit()
	case key.Matches(msg, m.keys.clear):
		m.searchBar.Clear()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchBar, cmd = m.searchBar.Update(msg)
	return m, cmd
}

func (m *Model) handleSimilarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.similarNames()

	switch {
	case key.Matches(msg, m.keys.left):
		if m.similarIdx > 0 {
			m.similarIdx--
		}
	case key.Matches(msg, m.keys.right):
		if m.similarIdx < len(names)-1 {
			m.similarIdx++
		}
	case key.Matches(msg, m.keys.up):
		if cols := m.similarColumns(); m.similarIdx-cols >= 0 {
			m.similarIdx -= cols
		}
	case key.Matches(msg, m.keys.down):
		if cols := m.similarColumns(); m.similarIdx+cols < len(names) {
			m.similarIdx += cols
		}
	case key.Matches(msg, m.keys.choose):
		if m.similarIdx < len(names) {
			return m, m.Search(names[m.similarIdx])
		}
	case key.Matches(msg, m.keys.open):
		return m, m.open(m.listenURL())
	case key.Matches(msg, m.keys.back):
		return m, m.setFocus(focusSearch)
	}
	return m, nil
}

func (m *Model) handleTrackKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.choose):
		if item, ok := m.tracks.SelectedItem().(trackItem); ok {
			return m, m.open(item.url)
		}
		return m, nil
	case key.Matches(msg, m.keys.open):
		return m, m.open(m.listenURL())
	case key.Matches(msg, m.keys.back):
		return m, m.setFocus(focusSearch)
	}

	var cmd tea.Cmd
	m.tracks, cmd = m.tracks.Update(msg)
	return m, cmd
}

func (m *Model) canFocus(f focusArea) bool {
	switch f {
	case focusSimilar:
		return len(m.similarNames()) > 0
	case focusTracks:
		return m.result != nil && len(m.result.TopTracks) > 0
	default:
		return true
	}
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.keys.focus = f
	if f == focusSearch {
		return m.searchBar.Focus()
	}
	m.searchBar.Blur()
	return nil
}

// cycleFocus moves focus by dir, skipping sections with nothing to select.
func (m *Model) cycleFocus(dir int) tea.Cmd {
	const n = 3
	f := m.focus
	for range n {
		f = focusArea((int(f) + dir + n) % n)
		if m.canFocus(f) {
			break
		}
	}
	return m.setFocus(f)
}

func (m *Model) open(url string) tea.Cmd {
	if url == "" {
		m.status = styles.warn.Render("No link available")
		return nil
	}
	open := m.openURL
	return func() tea.Msg {
		return browserOpenedMsg{url: url, err: open(url)}
	}
}

func (m *Model) listenURL() string {
	if m.result == nil {
		return ""
	}
	return m.result.ListenURL()
}

func (m *Model) similarNames() []string {
	if m.result == nil {
		return nil
	}
	return m.result.SimilarNames()
}

func (m *Model) similarColumns() int {
	cols := (m.width - 4) / (similarCell + 2)
	if cols < 1 {
		return 1
	}
	return cols
}

func (m *Model) trackListHeight() int {
	h := m.height / 2
	if h < 6 {
		return 6
	}
	return h
}

func newHelp() help.Model {
	h := help.New()
	h.Styles.ShortDesc = styles.help
	h.Styles.FullDesc = styles.help
	return h
}

// View renders the navigation bar, the results and the help line.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.navbar.Width(m.width).Render(m.searchBar.View()))
	b.WriteString("\n")

	switch m.State() {
	case models.Loading:
		b.WriteString(fmt.Sprintf("\n%s Loading artist…\n", m.spinner.View()))
	case models.Empty:
		b.WriteString("\n" + styles.heading.Render("No results yet.") + "\n")
		b.WriteString(styles.muted.Render("Try searching for an artist above.") + "\n")
	case models.Loaded:
		b.WriteString(m.renderArtist())
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderArtist() string {
	a := m.result
	var b strings.Builder

	title := a.Name
	if m.loading {
		title = fmt.Sprintf("%s  %s", a.Name, m.spinner.View())
	}
	b.WriteString("\n" + styles.title.Render(title) + "\n")

	image := a.ImageURL()
	if image == "" {
		image = noImage
	}
	listen := a.ListenURL()
	if listen == "" {
		listen = formatter.Placeholder
	} else {
		listen = styles.link.Render(listen)
	}

	b.WriteString(fmt.Sprintf("Image:      %s\n", image))
	b.WriteString(fmt.Sprintf("Followers:  %s (%s)\n", formatter.Count(a.FollowerCount()), formatter.Compact(a.FollowerCount())))
	b.WriteString(fmt.Sprintf("Popularity: %s\n", formatter.Count(a.Popularity)))
	b.WriteString(fmt.Sprintf("Listen:     %s\n", listen))

	b.WriteString("\n" + m.renderSimilar())
	b.WriteString("\n" + m.renderAlbums())
	b.WriteString("\n" + styles.panel(m.focus == focusTracks).Width(m.width-4).Render(m.tracks.View()))
	b.WriteString("\n")
	return b.String()
}

// renderSimilar lays similar artists out as a grid of fixed-width cells.
func (m *Model) renderSimilar() string {
	names := m.similarNames()
	heading := styles.heading.Render("Similar Artists")
	if len(names) == 0 {
		return styles.panel(false).Width(m.width-4).Render(heading + "\n" + styles.muted.Render(formatter.Placeholder))
	}

	cols := m.similarColumns()
	var rows []string
	var row []string
	for i, name := range names {
		cell := runewidth.FillRight(runewidth.Truncate(name, similarCell, "…"), similarCell)
		if m.focus == focusSimilar && i == m.similarIdx {
			row = append(row, styles.selected.Render(cell))
		} else {
			row = append(row, styles.cell.Render(cell))
		}
		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{heading}, rows...)...)
	return styles.panel(m.focus == focusSimilar).Width(m.width - 4).Render(body)
}

func (m *Model) renderAlbums() string {
	lines := []string{styles.heading.Render("Albums")}
	if len(m.result.Albums) == 0 {
		lines = append(lines, styles.muted.Render(formatter.Placeholder))
	}
	for _, album := range m.result.Albums {
		lines = append(lines, "• "+album)
	}
	return styles.panel(false).Width(m.width - 4).Render(strings.Join(lines, "\n"))
}
