package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/session"
)

// SearchBar owns the search input and the session affordances of the navigation bar.
//
// It never searches on its own: [SearchBar.Submit] emits a [searchSubmittedMsg] for the [Model] to act on.
type SearchBar struct {
	input textinput.Model
	store *session.Store
	demo  models.SessionUser
}

// NewSearchBar creates a focused, empty search bar bound to store.
//
// demo is the identity logged in by [SearchBar.Login]; a zero value falls back to [models.DemoUser].
func NewSearchBar(store *session.Store, demo models.SessionUser) SearchBar {
	if demo == (models.SessionUser{}) {
		demo = models.DemoUser
	}

	ti := textinput.New()
	ti.Placeholder = "Search for an artist..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 128
	ti.Width = 30
	ti.Focus()

	return SearchBar{input: ti, store: store, demo: demo}
}

// Draft returns the text currently typed, untrimmed.
func (s SearchBar) Draft() string { return s.input.Value() }

// SetDraft replaces the typed text.
func (s *SearchBar) SetDraft(text string) {
	s.input.SetValue(text)
	s.input.CursorEnd()
}

// Clear empties the draft.
func (s *SearchBar) Clear() { s.input.Reset() }

// Submit commits the trimmed draft. Blank drafts produce no command. The draft is kept.
func (s SearchBar) Submit() tea.Cmd {
	q, ok := models.NewSearchQuery(s.input.Value())
	if !ok {
		return nil
	}
	return func() tea.Msg { return searchSubmittedMsg{query: q} }
}

// Login signs in the demo identity.
func (s SearchBar) Login() { s.store.Login(s.demo) }

// Logout clears the session.
func (s SearchBar) Logout() { s.store.Logout() }

// ToggleAuth logs out when a user is present and logs in otherwise.
func (s SearchBar) ToggleAuth() {
	if s.store.LoggedIn() {
		s.Logout()
		return
	}
	s.Login()
}

func (s *SearchBar) Focus() tea.Cmd { return s.input.Focus() }
func (s *SearchBar) Blur()          { s.input.Blur() }

// SetWidth sizes the input to fit a terminal of the given width.
func (s *SearchBar) SetWidth(width int) {
	w := width - 50
	if w < 20 {
		w = 20
	}
	s.input.Width = w
}

// Update forwards typing to the text input.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the brand, the input and the session affordance on one line.
func (s SearchBar) View() string {
	brand := styles.heading.Render("♫ discover")
	return lipgloss.JoinHorizontal(lipgloss.Center, brand, "  ", s.input.View(), "  ", s.authView())
}

func (s SearchBar) authView() string {
	user, ok := s.store.User()
	if !ok {
		return styles.muted.Render("[ctrl+l] Login")
	}

	parts := []string{
		styles.avatar.Render(user.Initial()),
		styles.ok.Render(user.Name),
		styles.muted.Render("[ctrl+l] Logout"),
	}
	return strings.Join(parts, " ")
}
