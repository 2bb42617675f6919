package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeval/internal/ui/theme"
)

// SearchInput wraps bubbles/textinput as a one-line filter box.
type SearchInput struct {
	Model textinput.Model
}

// NewSearchInput creates an unfocused search box.
func NewSearchInput(placeholder string, maxLen int) SearchInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}
	return SearchInput{Model: ti}
}

// Focus starts capturing keys.
func (s *SearchInput) Focus() tea.Cmd {
	return s.Model.Focus()
}

// Blur stops capturing keys.
func (s *SearchInput) Blur() {
	s.Model.Blur()
}

// Focused reports whether the box is capturing keys.
func (s SearchInput) Focused() bool {
	return s.Model.Focused()
}

// Update handles messages.
func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the search box.
func (s SearchInput) View() string {
	if !s.Focused() && s.Value() == "" {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("/ search")
	}
	return s.Model.View()
}

// Value returns the current query.
func (s SearchInput) Value() string {
	return s.Model.Value()
}

// Reset clears the query.
func (s *SearchInput) Reset() {
	s.Model.SetValue("")
}
