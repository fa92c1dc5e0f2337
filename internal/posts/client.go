package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rshade/blogposts/internal/logging"
	"github.com/rshade/blogposts/pkg/version"
)

// DefaultURL is the public endpoint posts are fetched from.
const DefaultURL = "https://jsonplaceholder.typicode.com/posts"

// maxErrorBodyBytes bounds how much of a failed response is drained.
const maxErrorBodyBytes = 4 << 10

// Client fetches posts from a fixed URL.
type Client struct {
	URL        string
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient creates a Client for url using http.DefaultClient.
// An empty url selects DefaultURL.
func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		URL:        url,
		HTTPClient: http.DefaultClient,
		UserAgent:  "blogposts/" + version.GetVersion(),
	}
}

// FetchPosts performs one GET against the client URL and decodes the body.
// No retries or timeouts are applied beyond what ctx carries.
func (c *Client) FetchPosts(ctx context.Context) ([]Post, error) {
	log := logging.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "posts").
		Str("url", c.URL).
		Msg("fetching posts")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var posts []Post
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&posts); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	// The body must hold exactly one JSON value.
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: trailing data after posts array", ErrDecode)
	}
	if posts == nil {
		// A JSON null is not an array of posts.
		return nil, fmt.Errorf("%w: response body is null", ErrDecode)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "posts").
		Int("count", len(posts)).
		Msg("posts fetched")

	return posts, nil
}
