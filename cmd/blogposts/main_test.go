package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/blogposts/internal/cli"
	"github.com/rshade/blogposts/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "blogposts", root.Use)
		assert.Equal(t, version.GetVersion(), root.Version)
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{
			name: "fetch failed",
			err:  &cli.FetchFailedError{ExitCode: cli.ExitCodeFetchFailed},
			want: 2,
		},
		{
			name: "wrapped fetch failed",
			err:  fmt.Errorf("posts: %w", &cli.FetchFailedError{ExitCode: cli.ExitCodeFetchFailed}),
			want: 2,
		},
		{name: "generic error", err: errors.New("unknown flag: --bogus"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
