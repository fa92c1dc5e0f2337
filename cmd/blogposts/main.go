// Command blogposts fetches a list of blog posts and displays it.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/blogposts/internal/cli"
	"github.com/rshade/blogposts/pkg/version"
)

func main() {
	os.Exit(cli.ExitCode(run()))
}

// run executes the root command. SIGINT and SIGTERM cancel the command
// context, which aborts an in-flight fetch.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(ctx)
}
