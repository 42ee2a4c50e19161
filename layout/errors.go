package layout

import "fmt"

// ValidationError is the fatal, pre-render error class: the request is
// rejected before any page is produced, so no partial output can leak.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// UnknownShapeError is returned by the registry when a shape has no
// registered handler. Lookup failure is surfaced loudly instead of silently
// substituting a default, because silent substitution makes back-ends drift.
type UnknownShapeError struct {
	Shape Shape
}

func (e *UnknownShapeError) Error() string {
	return fmt.Sprintf("no layout handler registered for shape %q", e.Shape)
}
