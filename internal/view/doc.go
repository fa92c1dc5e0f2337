// Package view implements the blog post loading view independent of any
// terminal or output mode.
//
// A view is three pieces composed linearly:
//   - Store holds the view state: posts, an error message and a loading flag.
//   - Task fetches posts once and reports an Outcome.
//   - Render, RenderJSON and RenderNDJSON map a Snapshot of the Store to output.
//
// The Task never writes to the Store. Its Outcome is applied by whichever
// goroutine owns the Store, so the Store needs no locking. A Store moves from
// loading to exactly one of error or loaded and never leaves that state.
package view
