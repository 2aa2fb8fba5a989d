package domain

import "errors"

// Error kinds returned by the lookup pipeline. Callers check for them with
// errors.Is; wrapping with fmt.Errorf("%w: ...") attaches detail such as the
// provider's error message.
var (
	// ErrInvalidIdentifier is returned when an input string does not contain
	// at least two non-empty "/"-delimited segments.
	ErrInvalidIdentifier = errors.New("invalid repository identifier")

	// ErrFetchFailed is returned when the repository metadata endpoint
	// responds with a non-success status. It drops the whole identifier.
	ErrFetchFailed = errors.New("fetching repository failed")

	// ErrNoCommits is returned when the commit list is empty or unavailable.
	// It is absorbed into the NoCommitsSentinel rather than dropping the record.
	ErrNoCommits = errors.New("no commits found")

	// ErrReadmeUnavailable is returned when the README reference or its raw
	// content cannot be fetched. Absorbed into the NoReadmeSentinel.
	ErrReadmeUnavailable = errors.New("readme not available")

	// ErrNoData is returned by the output sink when a file write is requested
	// but no records were collected.
	ErrNoData = errors.New("no data to write")
)
