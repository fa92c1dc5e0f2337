package view

import (
	"errors"

	"github.com/rshade/blogposts/internal/posts"
)

// UserErrorMessage is the only failure text ever shown to the user.
const UserErrorMessage = "Something went wrong, please try again later."

var (
	// ErrAlreadyCompleted is returned when an outcome is applied to a Store
	// that has already left the loading phase.
	ErrAlreadyCompleted = errors.New("status store already completed")

	// ErrOutcomeCanceled is returned when a canceled outcome is applied.
	ErrOutcomeCanceled = errors.New("fetch outcome was canceled")
)

// Phase is the view state derived from a Store.
type Phase int

const (
	// PhaseLoading is the initial phase, before the fetch completes.
	PhaseLoading Phase = iota
	// PhaseError means the fetch failed.
	PhaseError
	// PhaseLoaded means the fetch succeeded, possibly with zero posts.
	PhaseLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of a Store's fields, the input to rendering.
type Snapshot struct {
	Posts     []posts.Post
	Error     string
	IsLoading bool
}

// Phase returns the phase the snapshot represents.
// Loading takes priority over error, error over content.
func (s Snapshot) Phase() Phase {
	switch {
	case s.IsLoading:
		return PhaseLoading
	case s.Error != "":
		return PhaseError
	default:
		return PhaseLoaded
	}
}

// Store holds the state of one view. The zero value is not ready for use;
// call NewStore.
type Store struct {
	posts     []posts.Post
	err       string
	isLoading bool
}

// NewStore returns a Store in the loading phase with no posts and no error.
func NewStore() *Store {
	return &Store{
		posts:     []posts.Post{},
		isLoading: true,
	}
}

// Apply records the outcome of the fetch. It succeeds at most once; later
// calls return ErrAlreadyCompleted and leave the Store untouched. A canceled
// outcome is discarded with ErrOutcomeCanceled and the Store stays loading.
func (s *Store) Apply(o Outcome) error {
	if !s.isLoading {
		return ErrAlreadyCompleted
	}
	if o.Canceled {
		return ErrOutcomeCanceled
	}
	defer func() { s.isLoading = false }()

	if o.Err != nil {
		s.err = UserErrorMessage
		return nil
	}

	s.posts = make([]posts.Post, len(o.Posts))
	copy(s.posts, o.Posts)
	return nil
}

// IsLoading reports whether the fetch has not completed yet.
func (s *Store) IsLoading() bool { return s.isLoading }

// Error returns the user-facing error message, or "".
func (s *Store) Error() string { return s.err }

// Posts returns a copy of the loaded posts.
func (s *Store) Posts() []posts.Post {
	out := make([]posts.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Phase returns the current phase.
func (s *Store) Phase() Phase { return s.Snapshot().Phase() }

// Snapshot returns a copy of the Store's state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Posts:     s.Posts(),
		Error:     s.err,
		IsLoading: s.isLoading,
	}
}
