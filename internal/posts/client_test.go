package posts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL + "/posts")
	client.HTTPClient = server.Client()
	return client
}

func TestNewClient_DefaultURL(t *testing.T) {
	client := NewClient("")
	assert.Equal(t, DefaultURL, client.URL)
	assert.NotNil(t, client.HTTPClient)
	assert.Contains(t, client.UserAgent, "blogposts/")
}

func TestFetchPosts_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"userId":1,"id":1,"title":"Hello","body":"World"},
			{"userId":1,"id":2,"title":"Second","body":"Post"}
		]`))
	})

	got, err := client.FetchPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Post{
		{ID: "1", Title: "Hello", Body: "World"},
		{ID: "2", Title: "Second", Body: "Post"},
	}, got)
}

func TestFetchPosts_EmptyArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	got, err := client.FetchPosts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFetchPosts_TrailingWhitespace(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[{\"id\":1,\"title\":\"Hello\",\"body\":\"World\"}]\n\n"))
	})

	got, err := client.FetchPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Post{{ID: "1", Title: "Hello", Body: "World"}}, got)
}

func TestFetchPosts_StringIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"a1","title":"Hello","body":"World"},{"id":2.5,"title":"x","body":"y"}]`))
	})

	got, err := client.FetchPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Post{
		{ID: "a1", Title: "Hello", Body: "World"},
		{ID: "2.5", Title: "x", Body: "y"},
	}, got)
}

func TestFetchPosts_StatusErrors(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusNoContent + 100} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(code)
			})

			got, err := client.FetchPosts(context.Background())
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrUnexpectedStatus)
			assert.Equal(t, code, StatusCode(err))
		})
	}
}

func TestFetchPosts_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `[{"id":1,`},
		{"object instead of array", `{"id":1}`},
		{"null", `null`},
		{"wrong title type", `[{"id":1,"title":5,"body":"y"}]`},
		{"boolean id", `[{"id":true,"title":"x","body":"y"}]`},
		{"null id", `[{"id":null,"title":"x","body":"y"}]`},
		{"trailing data", `[{"id":1,"title":"Hello","body":"World"}] not json`},
		{"concatenated arrays", `[{"id":1,"title":"a","body":"b"}][{"id":2}]`},
		{"trailing close bracket", `[{"id":1,"title":"a","body":"b"}]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.FetchPosts(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
			assert.Zero(t, StatusCode(err))
		})
	}
}

func TestFetchPosts_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url)
	_, err := client.FetchPosts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetchPosts_BadURL(t *testing.T) {
	client := NewClient("://not a url")
	_, err := client.FetchPosts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetchPosts_Canceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchPosts(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrTransport))
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Code: 503}
	assert.Equal(t, "unexpected HTTP status: 503", err.Error())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, 0, StatusCode(errors.New("other")))
}
