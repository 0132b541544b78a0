package dmap

import "fmt"

// EmptyError reports a DMAP file or stream with no bytes in it.
type EmptyError struct {
	File string
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("dmap: %s is empty", e.File)
}

// CursorError reports a read cursor that ended up somewhere it should
// never be, which means the data does not match its own bookkeeping.
type CursorError struct {
	File    string
	Cursor  int
	Message string
}

func (e *CursorError) Error() string {
	return fmt.Sprintf("dmap: %s: cursor %d: %s", e.File, e.Cursor, e.Message)
}

// DataError reports structurally corrupt DMAP data, such as a negative
// block size or an array that claims to be larger than its record.
type DataError struct {
	File    string
	Cursor  int
	Message string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("dmap: %s: cursor %d: %s", e.File, e.Cursor, e.Message)
}

// TypeError reports a type code that is not a DMAP data type, or a DMAP
// value used where it is not allowed.
type TypeError struct {
	File   string
	Field  string
	Type   byte
	Cursor int
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("dmap: %s: cursor %d: field %q has invalid type code %d",
		e.File, e.Cursor, e.Field, e.Type)
}
