package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/blogposts/internal/posts"
)

// Fixed view text.
const (
	DefaultTitle        = "Blog Posts"
	DefaultErrorHeading = "An Error Occurred"
	// AltErrorHeading is the other error heading wording in use.
	AltErrorHeading = "DATA FETCHING FAILED"
	LoadingText     = "Loading posts..."
	EmptyText       = "No posts available."
)

// bodyIndent is the left padding applied to post bodies.
const bodyIndent = 4

// Options controls rendering. Zero values select the defaults.
type Options struct {
	Title        string
	ErrorHeading string
	// Styled enables lipgloss styling.
	Styled bool
	// Width wraps post bodies in styled output when positive.
	Width int
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

func (o Options) errorHeading() string {
	if o.ErrorHeading == "" {
		return DefaultErrorHeading
	}
	return o.ErrorHeading
}

// Render returns the text view for snap. Exactly one of the loading, error or
// content views is produced, chosen by snap.Phase.
func Render(snap Snapshot, opts Options) string {
	switch snap.Phase() {
	case PhaseLoading:
		return renderLoading(opts)
	case PhaseError:
		return renderError(snap.Error, opts)
	default:
		return renderContent(snap.Posts, opts)
	}
}

func renderLoading(opts Options) string {
	if opts.Styled {
		return LoadingStyle.Render(LoadingText) + "\n"
	}
	return LoadingText + "\n"
}

func renderError(msg string, opts Options) string {
	var b strings.Builder
	heading := opts.errorHeading()
	if opts.Styled {
		b.WriteString(ErrorHeadingStyle.Render(heading))
	} else {
		b.WriteString(heading)
	}
	b.WriteString("\n\n")
	b.WriteString(msg)
	b.WriteString("\n")
	return b.String()
}

func renderContent(list []posts.Post, opts Options) string {
	var b strings.Builder
	title := opts.title()
	if opts.Styled {
		b.WriteString(HeadingStyle.Render(title))
	} else {
		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("=", len([]rune(title))))
	}
	b.WriteString("\n\n")

	if len(list) == 0 {
		if opts.Styled {
			b.WriteString(MutedStyle.Render(EmptyText))
		} else {
			b.WriteString(EmptyText)
		}
		b.WriteString("\n")
		return b.String()
	}

	for i, p := range list {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(RenderPost(p, opts))
	}
	return b.String()
}

// RenderPost renders a single list entry, keyed by the post ID.
// Escape sequences in the remote fields are stripped before they reach the
// terminal.
func RenderPost(p posts.Post, opts Options) string {
	key := fmt.Sprintf("[%s]", ansi.Strip(p.ID.String()))
	title := ansi.Strip(p.Title)
	bodyText := ansi.Strip(p.Body)
	if !opts.Styled {
		body := indent(bodyText, strings.Repeat(" ", bodyIndent))
		return fmt.Sprintf("%s %s\n%s\n", key, title, body)
	}

	bodyStyle := PostBodyStyle
	if opts.Width > bodyIndent {
		bodyStyle = bodyStyle.Width(opts.Width)
	}
	return fmt.Sprintf("%s %s\n%s\n",
		KeyStyle.Render(key),
		PostTitleStyle.Render(title),
		bodyStyle.Render(bodyText),
	)
}

// indent prefixes every line of s with prefix.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// jsonDocument is the JSON form of a rendered view.
type jsonDocument struct {
	State   string       `json:"state"`
	Title   string       `json:"title,omitempty"`
	Posts   []posts.Post `json:"posts"`
	Message string       `json:"message,omitempty"`
	Heading string       `json:"heading,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// RenderJSON writes snap as a single indented JSON document.
func RenderJSON(w io.Writer, snap Snapshot, opts Options) error {
	doc := jsonDocument{
		State: snap.Phase().String(),
		Posts: snap.Posts,
	}
	if doc.Posts == nil {
		doc.Posts = []posts.Post{}
	}

	switch snap.Phase() {
	case PhaseLoading:
		doc.Message = LoadingText
	case PhaseError:
		doc.Heading = opts.errorHeading()
		doc.Error = snap.Error
	case PhaseLoaded:
		doc.Title = opts.title()
		if len(doc.Posts) == 0 {
			doc.Message = EmptyText
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding view: %w", err)
	}
	return nil
}

// RenderNDJSON writes one JSON object per post. Non-loaded phases, and a
// loaded view with no posts, produce a single status object instead.
func RenderNDJSON(w io.Writer, snap Snapshot, opts Options) error {
	enc := json.NewEncoder(w)

	switch snap.Phase() {
	case PhaseLoading:
		return enc.Encode(jsonDocument{State: PhaseLoading.String(), Posts: []posts.Post{}, Message: LoadingText})
	case PhaseError:
		return enc.Encode(jsonDocument{
			State:   PhaseError.String(),
			Posts:   []posts.Post{},
			Heading: opts.errorHeading(),
			Error:   snap.Error,
		})
	}

	if len(snap.Posts) == 0 {
		return enc.Encode(jsonDocument{
			State:   PhaseLoaded.String(),
			Title:   opts.title(),
			Posts:   []posts.Post{},
			Message: EmptyText,
		})
	}

	for _, p := range snap.Posts {
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encoding post %s: %w", p.ID, err)
		}
	}
	return nil
}

// printer formats counts with thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCount returns a human-readable post count, e.g. "1,024 posts".
func FormatCount(n int) string {
	if n == 1 {
		return "1 post"
	}
	return printer.Sprintf("%d posts", n)
}
