package view

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/blogposts/internal/posts"
)

type fakeFetcher struct {
	calls atomic.Int32
	posts []posts.Post
	err   error
	// block, when set, waits for ctx to end before returning.
	block bool
}

func (f *fakeFetcher) FetchPosts(ctx context.Context) ([]posts.Post, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.posts, f.err
}

func TestTask_RunSuccess(t *testing.T) {
	fetcher := &fakeFetcher{posts: []posts.Post{{ID: "1", Title: "Hello", Body: "World"}}}
	task := NewTask(fetcher)
	assert.False(t, task.Started())

	out, err := task.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, task.Started())
	assert.NoError(t, out.Err)
	assert.False(t, out.Canceled)
	assert.Equal(t, fetcher.posts, out.Posts)
}

func TestTask_RunsOnlyOnce(t *testing.T) {
	fetcher := &fakeFetcher{}
	task := NewTask(fetcher)

	_, err := task.Run(context.Background())
	require.NoError(t, err)

	_, err = task.Run(context.Background())
	require.ErrorIs(t, err, ErrAlreadyStarted)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestTask_ConcurrentRunsFetchOnce(t *testing.T) {
	fetcher := &fakeFetcher{}
	task := NewTask(fetcher)

	const callers = 8
	var (
		wg      sync.WaitGroup
		succeed atomic.Int32
	)
	for n := 0; n < callers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := task.Run(context.Background()); err == nil {
				succeed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fetcher.calls.Load())
	assert.Equal(t, int32(1), succeed.Load())
}

func TestTask_FailureLogsCause(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())

	task := NewTask(&fakeFetcher{err: &posts.StatusError{Code: 404}})
	out, err := task.Run(ctx)
	require.NoError(t, err)

	require.Error(t, out.Err)
	assert.Equal(t, 404, posts.StatusCode(out.Err))
	assert.Contains(t, buf.String(), `"status_code":404`)
	assert.Contains(t, buf.String(), "fetching posts failed")

	s := NewStore()
	require.NoError(t, s.Apply(out))
	assert.Equal(t, UserErrorMessage, s.Error())
}

func TestTask_TransportFailureSameAsStatus(t *testing.T) {
	statusStore := NewStore()
	transportStore := NewStore()

	out, err := NewTask(&fakeFetcher{err: &posts.StatusError{Code: 500}}).Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, statusStore.Apply(out))

	out, err = NewTask(&fakeFetcher{err: errors.Join(posts.ErrTransport, errors.New("connection refused"))}).
		Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, transportStore.Apply(out))

	assert.Equal(t, statusStore.Snapshot(), transportStore.Snapshot())
}

func TestTask_CanceledOutcome(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := NewTask(&fakeFetcher{block: true})

	done := make(chan Outcome)
	go func() {
		out, _ := task.Run(ctx)
		done <- out
	}()
	cancel()
	out := <-done

	assert.True(t, out.Canceled)

	s := NewStore()
	require.ErrorIs(t, s.Apply(out), ErrOutcomeCanceled)
	assert.True(t, s.IsLoading())
}
