// Package tui renders the blog post view in the terminal.
//
// PostsModel is a Bubble Tea model that shows a spinner while the fetch task
// runs, then either the error view or a scrollable list of posts. The fetch
// is started from Init, which Bubble Tea calls once per program, and the
// task's own once-guard makes repeated starts a no-op. Quitting cancels the
// fetch context so an in-flight request is abandoned and its outcome is
// discarded.
//
// DetectOutputMode decides between the interactive model, a one-shot styled
// render, and plain text for pipes and redirects.
package tui
