package dataset

import "fmt"

// LoadError reports that the dataset could not be fetched or parsed. It is
// terminal: callers log it and render nothing.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("dataset: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(source string, err error) *LoadError {
	return &LoadError{Source: source, Err: err}
}
