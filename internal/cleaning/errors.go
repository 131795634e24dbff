package cleaning

import (
	"errors"
	"fmt"
)

// SchemaError reports a required canonical column that is entirely absent
// from a raw input, as opposed to individual malformed cells, which are
// tolerated per row. It aborts the cleaning run for its institution only.
type SchemaError struct {
	Institution string
	Column      string
	Path        string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error for %s: required column %q missing in %s",
		e.Institution, e.Column, e.Path)
}

// IsSchemaError reports whether err is (or wraps) a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
