package compile

import "fmt"

// BindError reports the node and attribute a binding failed on.
type BindError struct {
	Path string
	Attr string
	Err  error
}

func (e *BindError) Error() string {
	if e.Attr == "" {
		return fmt.Sprintf("bind %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("bind %s %s: %v", e.Path, e.Attr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}
