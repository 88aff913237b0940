package cli

import "errors"

var (
	// ErrAborted signals that the user declined a confirmation prompt.
	ErrAborted = errors.New("aborted by user")

	// ErrNoPackages signals a command that needs package arguments but
	// received none.
	ErrNoPackages = errors.New("no packages specified")
)
