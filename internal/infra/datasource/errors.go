package datasource

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedURL         = errors.New("malformed database URL")
	ErrMissingConfiguration = errors.New("no valid database configuration found")
)

// URLError reports a DATABASE_URL value that could not be parsed.
// Value holds the original input; Error masks its credentials.
type URLError struct {
	Value string
	Err   error
}

func (e *URLError) Error() string {
	return fmt.Sprintf("failed to parse DATABASE_URL %s: %v", MaskURL(e.Value), e.Err)
}

func (e *URLError) Unwrap() []error {
	return []error{ErrMalformedURL, e.Err}
}
