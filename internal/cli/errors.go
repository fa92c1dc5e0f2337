package cli

import "errors"

// ExitCodeFetchFailed is the process exit code after the error view is shown.
const ExitCodeFetchFailed = 2

// FetchFailedError is returned after the error view has been rendered. The
// view already told the user what happened, so it carries no further detail.
type FetchFailedError struct {
	ExitCode int
}

func (e *FetchFailedError) Error() string {
	return "blog posts could not be fetched"
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var fetchErr *FetchFailedError
	if errors.As(err, &fetchErr) {
		return fetchErr.ExitCode
	}
	return 1
}
