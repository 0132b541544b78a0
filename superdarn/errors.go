package superdarn

import (
	"fmt"
	"sort"

	"github.com/superdarn/godarn/dmap"
)

// FieldMissingError reports a record that lacks fields its file type
// requires.
type FieldMissingError struct {
	File   string
	Record int
	Fields []string
}

func (e *FieldMissingError) Error() string {
	sort.Strings(e.Fields)
	return fmt.Sprintf("superdarn: %s: record %d is missing fields %v",
		e.File, e.Record, e.Fields)
}

// ExtraFieldError reports a record carrying fields its file type does not
// allow.
type ExtraFieldError struct {
	File   string
	Record int
	Fields []string
}

func (e *ExtraFieldError) Error() string {
	sort.Strings(e.Fields)
	return fmt.Sprintf("superdarn: %s: record %d has fields not allowed by the format: %v",
		e.File, e.Record, e.Fields)
}

// FormatError reports fields stored with the wrong DMAP data type.
type FormatError struct {
	Record int
	Fields map[string]dmap.Type
}

func (e *FormatError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	s := fmt.Sprintf("superdarn: record %d has wrongly typed fields:", e.Record)
	for _, name := range names {
		s += fmt.Sprintf(" %s(want %s)", name, e.Fields[name])
	}
	return s
}

// NoDataError reports that a file or record set held none of the requested
// data.
type NoDataError struct {
	What string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("superdarn: no data found for %s", e.What)
}
