package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/blogposts/internal/config"
	"github.com/rshade/blogposts/internal/posts"
	"github.com/rshade/blogposts/internal/tui"
	"github.com/rshade/blogposts/internal/view"
)

// Output formats.
const (
	outputText   = "text"
	outputJSON   = "json"
	outputNDJSON = "ndjson"
)

// postsFlags holds the flags of the posts command.
type postsFlags struct {
	url          string
	output       string
	title        string
	errorHeading string
	plain        bool
	noTUI        bool
}

// NewPostsCmd creates the "posts" command that fetches and displays posts.
func NewPostsCmd() *cobra.Command {
	var flags postsFlags

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Fetch and display blog posts",
		Long: `Fetches the list of blog posts once and displays it.

A loading view is shown until the request completes. On success the posts are
listed with their title and body; on any failure a fixed error message is
shown and the command exits with status 2. The failure cause is written to the
diagnostic log only.`,
		Example: `  # Interactive view on a terminal, plain text when piped
  blogposts posts

  # Styled output without the interactive view
  blogposts posts --no-tui

  # JSON document or one JSON object per post
  blogposts posts --output json
  blogposts posts --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPosts(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.url, "url", "", "posts endpoint (overrides source.url)")
	cmd.Flags().StringVar(&flags.output, "output", "", "output format: text, json, ndjson (overrides output.default_format)")
	cmd.Flags().StringVar(&flags.title, "title", "", "heading of the post list (overrides view.title)")
	cmd.Flags().StringVar(&flags.errorHeading, "error-heading", "",
		"heading of the error view (overrides view.error_heading)")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "plain text output, no styling or interactive view")
	cmd.Flags().BoolVar(&flags.noTUI, "no-tui", false, "styled output without the interactive view")

	return cmd
}

// postsRun is the resolved configuration of one posts invocation.
type postsRun struct {
	url    string
	format string
	opts   view.Options
}

// resolvePostsRun applies flag overrides on top of the global config and
// validates the result.
func resolvePostsRun(flags postsFlags) (postsRun, error) {
	cfg := config.GetGlobalConfig()

	run := postsRun{
		url:    cfg.Source.URL,
		format: config.GetOutputFormat(flags.output),
		opts: view.Options{
			Title:        cfg.View.Title,
			ErrorHeading: cfg.View.ErrorHeading,
		},
	}
	if flags.url != "" {
		run.url = flags.url
	}
	if flags.title != "" {
		run.opts.Title = flags.title
	}
	if flags.errorHeading != "" {
		run.opts.ErrorHeading = flags.errorHeading
	}

	if err := config.ValidateSourceURL(run.url); err != nil {
		return postsRun{}, err
	}
	if !config.IsValidOutputFormat(run.format) {
		return postsRun{}, fmt.Errorf("unsupported output format: %s", run.format)
	}
	return run, nil
}

func runPosts(cmd *cobra.Command, flags postsFlags) error {
	ctx := cmd.Context()

	run, err := resolvePostsRun(flags)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	task := view.NewTask(posts.NewClient(run.url))

	var snap view.Snapshot
	switch run.format {
	case outputJSON:
		snap, err = fetchOnce(ctx, task)
		if err == nil {
			err = view.RenderJSON(cmd.OutOrStdout(), snap, run.opts)
		}
	case outputNDJSON:
		snap, err = fetchOnce(ctx, task)
		if err == nil {
			err = view.RenderNDJSON(cmd.OutOrStdout(), snap, run.opts)
		}
	default:
		snap, err = renderText(ctx, cmd, task, run.opts, flags)
	}
	if err != nil {
		return err
	}

	if snap.Phase() == view.PhaseError {
		cmd.SilenceErrors = true
		return &FetchFailedError{ExitCode: ExitCodeFetchFailed}
	}
	return nil
}

// renderText routes to the interactive, styled or plain text renderer.
func renderText(
	ctx context.Context,
	cmd *cobra.Command,
	task *view.Task,
	opts view.Options,
	flags postsFlags,
) (view.Snapshot, error) {
	mode := tui.DetectOutputMode(cmd.OutOrStdout(), flags.plain, flags.noTUI, false)

	logger.Debug().Ctx(ctx).Str("mode", mode.String()).Msg("rendering posts")

	switch mode {
	case tui.OutputModeInteractive:
		return runInteractive(ctx, cmd, task, opts)
	case tui.OutputModeStyled:
		opts.Styled = true
		opts.Width = tui.TerminalWidth()
		return renderOnce(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), task, opts)
	default:
		return renderOnce(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), task, opts)
	}
}

// fetchOnce runs task against a fresh store and returns the final snapshot.
func fetchOnce(ctx context.Context, task *view.Task) (view.Snapshot, error) {
	store := view.NewStore()

	out, err := task.Run(ctx)
	if err != nil {
		return view.Snapshot{}, err
	}
	if err := store.Apply(out); err != nil {
		if errors.Is(err, view.ErrOutcomeCanceled) && ctx.Err() != nil {
			return view.Snapshot{}, ctx.Err()
		}
		return view.Snapshot{}, err
	}
	return store.Snapshot(), nil
}

// renderOnce writes the loading view to progress, then the final view to w.
func renderOnce(
	ctx context.Context,
	w io.Writer,
	progress io.Writer,
	task *view.Task,
	opts view.Options,
) (view.Snapshot, error) {
	_, _ = fmt.Fprint(progress, view.Render(view.NewStore().Snapshot(), opts))

	snap, err := fetchOnce(ctx, task)
	if err != nil {
		return view.Snapshot{}, err
	}
	if _, err := fmt.Fprint(w, view.Render(snap, opts)); err != nil {
		return view.Snapshot{}, fmt.Errorf("writing output: %w", err)
	}
	return snap, nil
}

// runInteractive runs the Bubble Tea program until the user quits.
func runInteractive(
	ctx context.Context,
	cmd *cobra.Command,
	task *view.Task,
	opts view.Options,
) (view.Snapshot, error) {
	// Log lines on the terminal would corrupt the view; keep them only when
	// they go to a file or debugging was requested.
	debug, _ := cmd.Flags().GetBool("debug")
	if config.GetLoggingConfig().File == "" && !debug {
		ctx = zerolog.Nop().WithContext(ctx)
	}

	model := tui.NewPostsModel(ctx, task, opts)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return view.Snapshot{}, ctx.Err()
		}
		return view.Snapshot{}, fmt.Errorf("failed to run interactive TUI: %w", err)
	}

	snap := model.Snapshot()
	if m, ok := final.(*tui.PostsModel); ok {
		snap = m.Snapshot()
	}
	printFinalView(cmd.OutOrStdout(), snap, opts)
	return snap, nil
}

// printFinalView writes the error view to w once the alt screen is gone, so
// the failure stays visible after the program exits. Other phases print
// nothing.
func printFinalView(w io.Writer, snap view.Snapshot, opts view.Options) {
	if snap.Phase() != view.PhaseError {
		return
	}
	opts.Styled = true
	_, _ = fmt.Fprint(w, view.Render(snap, opts))
}
