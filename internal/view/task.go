package view

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rshade/blogposts/internal/logging"
	"github.com/rshade/blogposts/internal/posts"
)

// ErrAlreadyStarted is returned by Task.Run after the first call.
var ErrAlreadyStarted = errors.New("fetch task already started")

// PostFetcher retrieves posts. *posts.Client implements it.
type PostFetcher interface {
	FetchPosts(ctx context.Context) ([]posts.Post, error)
}

// Outcome is the terminal result of a Task.
type Outcome struct {
	Posts []posts.Post
	// Err holds the failure cause for diagnostics. It is never rendered.
	Err error
	// Canceled is set when ctx ended before the fetch completed; the outcome
	// must be discarded.
	Canceled bool
}

// Task fetches posts exactly once.
type Task struct {
	fetcher PostFetcher
	once    sync.Once
	started atomic.Bool
}

// NewTask creates a Task backed by fetcher.
func NewTask(fetcher PostFetcher) *Task {
	return &Task{fetcher: fetcher}
}

// Started reports whether Run has been called.
func (t *Task) Started() bool {
	return t.started.Load()
}

// Run performs the fetch on the first call and returns its outcome. Every
// later call returns ErrAlreadyStarted without touching the network.
func (t *Task) Run(ctx context.Context) (Outcome, error) {
	var (
		out Outcome
		ran bool
	)
	t.once.Do(func() {
		ran = true
		t.started.Store(true)
		out = t.run(ctx)
	})
	if !ran {
		return Outcome{}, ErrAlreadyStarted
	}
	return out, nil
}

func (t *Task) run(ctx context.Context) Outcome {
	log := logging.FromContext(ctx)

	fetched, err := t.fetcher.FetchPosts(ctx)
	if ctx.Err() != nil {
		log.Debug().
			Ctx(ctx).
			Str("component", "view").
			Msg("fetch canceled, discarding outcome")
		return Outcome{Canceled: true}
	}

	if err != nil {
		event := log.Error().
			Ctx(ctx).
			Str("component", "view").
			Err(err)
		if code := posts.StatusCode(err); code != 0 {
			event = event.Int("status_code", code)
		}
		event.Msg("fetching posts failed")
		return Outcome{Err: err}
	}

	log.Info().
		Ctx(ctx).
		Str("component", "view").
		Int("count", len(fetched)).
		Msg("posts loaded")
	return Outcome{Posts: fetched}
}
