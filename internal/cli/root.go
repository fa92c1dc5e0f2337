package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/blogposts/internal/config"
	"github.com/rshade/blogposts/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the blogposts CLI.
// It loads configuration, wires up logging and registers the posts and config
// subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
	)

	cmd := &cobra.Command{
		Use:     "blogposts",
		Short:   "Fetch and display blog posts",
		Long:    "blogposts: fetch a list of blog posts from a REST endpoint and display them",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewWithOverlay(configPath)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			config.SetGlobalConfig(cfg)

			logResult = setupLogging(cmd)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"additional config file merged over ~/.blogposts/config.yaml")
	cmd.AddCommand(NewPostsCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Show posts interactively
  blogposts posts

  # Print posts as JSON
  blogposts posts --output json

  # Fetch from another endpoint with the alternate error heading
  blogposts posts --url http://localhost:8080/posts --error-heading "DATA FETCHING FAILED"

  # Initialize configuration
  blogposts config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
