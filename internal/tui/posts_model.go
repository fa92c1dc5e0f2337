package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/blogposts/internal/logging"
	"github.com/rshade/blogposts/internal/view"
)

// footerHeight is the number of rows reserved below the viewport.
const footerHeight = 2

// postsFetchedMsg carries the fetch task outcome back to the update loop.
type postsFetchedMsg struct {
	outcome view.Outcome
	err     error
}

// PostsModel is the Bubble Tea model for the blog post view.
// The Store is only touched from Update, which Bubble Tea runs on a single
// goroutine.
type PostsModel struct {
	ctx    context.Context
	cancel context.CancelFunc
	task   *view.Task
	store  *view.Store
	opts   view.Options

	loading  *LoadingState
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	width    int
	height   int
	quitting bool
}

// NewPostsModel creates a model that fetches posts with task on Init.
// Canceling ctx, or quitting the program, abandons the fetch.
func NewPostsModel(ctx context.Context, task *view.Task, opts view.Options) *PostsModel {
	ctx, cancel := context.WithCancel(ctx)
	m := &PostsModel{
		ctx:      ctx,
		cancel:   cancel,
		task:     task,
		store:    view.NewStore(),
		opts:     opts,
		loading:  NewLoadingState(),
		viewport: viewport.New(defaultWidth, defaultHeight-footerHeight),
		help:     help.New(),
		keys:     newKeyMap(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.opts.Styled = true
	return m
}

// Init starts the spinner and the one-shot fetch.
func (m *PostsModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchCmd())
}

// fetchCmd runs the task off the update loop.
func (m *PostsModel) fetchCmd() tea.Cmd {
	// Capture references before the command runs on another goroutine.
	ctx := m.ctx
	task := m.task
	return func() tea.Msg {
		out, err := task.Run(ctx)
		return postsFetchedMsg{outcome: out, err: err}
	}
}

// Update handles messages and updates the model state.
func (m *PostsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case postsFetchedMsg:
		return m.handleFetched(msg)

	case spinner.TickMsg:
		if m.store.IsLoading() {
			return m, m.loading.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}
	}

	if m.store.Phase() == view.PhaseLoaded {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *PostsModel) handleFetched(msg postsFetchedMsg) (tea.Model, tea.Cmd) {
	log := logging.FromContext(m.ctx)

	if msg.err != nil {
		log.Debug().Ctx(m.ctx).Str("component", "tui").Err(msg.err).Msg("ignoring duplicate fetch result")
		return m, nil
	}
	if err := m.store.Apply(msg.outcome); err != nil {
		log.Debug().Ctx(m.ctx).Str("component", "tui").Err(err).Msg("fetch outcome not applied")
		return m, nil
	}

	m.refreshContent()
	return m, nil
}

func (m *PostsModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-footerHeight, 1)
	m.help.Width = width
	m.refreshContent()
}

// refreshContent re-renders the post list into the viewport.
func (m *PostsModel) refreshContent() {
	if m.store.Phase() != view.PhaseLoaded {
		return
	}
	opts := m.opts
	opts.Width = m.width - borderPadding
	m.viewport.SetContent(view.Render(m.store.Snapshot(), opts))
}

// borderPadding keeps wrapped text off the terminal edge.
const borderPadding = 2

// View renders the current view.
func (m *PostsModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.store.Phase() {
	case view.PhaseLoading:
		return RenderLoading(m.loading)
	case view.PhaseError:
		return view.Render(m.store.Snapshot(), m.opts) + "\n" + m.help.View(quitOnlyKeys{m.keys})
	default:
		return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.renderFooter())
	}
}

// renderFooter shows the post count, scroll position and key help.
func (m *PostsModel) renderFooter() string {
	count := len(m.store.Posts())
	status := view.FormatCount(count)
	if count > 0 {
		status = fmt.Sprintf("%s · %3.f%%", status, m.viewport.ScrollPercent()*100) //nolint:mnd // Percentage.
	}
	return strings.Join([]string{
		view.MutedStyle.Render(status),
		m.help.View(m.keys),
	}, "\n")
}

// Snapshot returns the current view state.
func (m *PostsModel) Snapshot() view.Snapshot {
	return m.store.Snapshot()
}

// Phase returns the current view phase.
func (m *PostsModel) Phase() view.Phase {
	return m.store.Phase()
}
