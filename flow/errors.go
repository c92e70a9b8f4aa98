package flow

import "fmt"

// FormatError reports content that could not be decoded as JSON or YAML.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed flow document %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("malformed flow document: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// SchemaError reports a well-formed document missing a required field.
type SchemaError struct {
	Path  string
	Field string
}

func (e *SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("flow document %s: missing required field %q", e.Path, e.Field)
	}
	return fmt.Sprintf("flow document: missing required field %q", e.Field)
}
