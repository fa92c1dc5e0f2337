package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/blogposts/internal/view"
)

// LoadingState drives the loading spinner.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState returns a spinner labelled with the loading text.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = view.LoadingStyle
	return &LoadingState{spinner: s, message: view.LoadingText}
}

// Init starts the spinner animation.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on tick messages.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading returns the string to display for a loading screen.
// If loading is nil, it returns the plain loading text.
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return view.LoadingText
	}
	return fmt.Sprintf("\n %s %s\n\n", loading.spinner.View(), loading.message)
}
