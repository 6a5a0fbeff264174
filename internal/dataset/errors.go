package dataset

import "fmt"

// SchemaError is returned when a raw table is missing a required column.
// Fatal: the run aborts naming the table and column so the upstream
// pipeline can be fixed (there is nothing to retry).
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s is missing required column %s", e.Table, e.Column)
}
