package manifest

import "fmt"

// WriteError reports an I/O failure committing a manifest file. Callers
// treat it as fatal to the whole run: a desynchronized manifest would poison
// every subsequent invocation.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing manifest %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
