// Package posts fetches blog posts from a JSON REST endpoint.
//
// The Client performs a single GET and decodes a JSON array of posts. Failures
// are classified with sentinel errors (ErrUnexpectedStatus, ErrTransport,
// ErrDecode) so callers can log the cause while presenting a single generic
// message to the user.
package posts
