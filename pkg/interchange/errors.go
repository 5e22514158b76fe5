package interchange

import "fmt"

// InterchangeError reports a malformed value encountered while decoding
// back to an AST. Path locates the offending value from the root, e.g.
// "body.left.columns[0]".
type InterchangeError struct {
	Path    string
	Message string
}

func (e *InterchangeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("interchange error: %s", e.Message)
	}
	return fmt.Sprintf("interchange error at %s: %s", e.Path, e.Message)
}

func decodeErr(path, format string, args ...any) error {
	return &InterchangeError{Path: path, Message: fmt.Sprintf(format, args...)}
}
