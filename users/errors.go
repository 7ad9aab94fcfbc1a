package users

import "errors"

var (
	// ErrNotFound is returned when no user has the requested id
	ErrNotFound = errors.New("user not found")

	// ErrFetchFailed wraps failures of the data source itself
	ErrFetchFailed = errors.New("failed to fetch users")
)
