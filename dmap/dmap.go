// Package dmap reads and writes the DataMap (DMAP) self-describing binary
// format used by SuperDARN radar data files (iqdat, rawacf, fitacf, grid
// and map files).
//
// A DMAP file is a plain concatenation of records. Each record starts with
// a 16 byte header (encoding identifier, record size in bytes, number of
// scalars, number of arrays) followed by the named scalar and array
// variables themselves. All numeric values are little-endian.
package dmap

import (
	"fmt"

	"github.com/spf13/cast"
)

// Type is a DMAP data type code as stored in the file.
type Type byte

// DMAP type codes.
const (
	TypeDmap   Type = 0
	TypeChar   Type = 1
	TypeShort  Type = 2
	TypeInt    Type = 3
	TypeFloat  Type = 4
	TypeDouble Type = 8
	TypeString Type = 9
	TypeLong   Type = 10
	TypeUchar  Type = 16
	TypeUshort Type = 17
	TypeUint   Type = 18
	TypeUlong  Type = 19
)

// typeSizes maps a type code to its size in bytes. Strings are
// NUL-terminated and have no fixed size; their entry is the size of one
// character.
var typeSizes = map[Type]int{
	TypeDmap:   0,
	TypeChar:   1,
	TypeShort:  2,
	TypeInt:    4,
	TypeFloat:  4,
	TypeDouble: 8,
	TypeString: 1,
	TypeLong:   8,
	TypeUchar:  1,
	TypeUshort: 2,
	TypeUint:   4,
	TypeUlong:  8,
}

var typeNames = map[Type]string{
	TypeDmap:   "dmap",
	TypeChar:   "char",
	TypeShort:  "short",
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeDouble: "double",
	TypeString: "string",
	TypeLong:   "long",
	TypeUchar:  "uchar",
	TypeUshort: "ushort",
	TypeUint:   "uint",
	TypeUlong:  "ulong",
}

// Size returns the number of bytes one value of t occupies in the file.
func (t Type) Size() int { return typeSizes[t] }

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "invalid"
}

func (t Type) valid() bool {
	_, ok := typeSizes[t]
	return ok
}

// Scalar is a single named value in a DMAP record. Value holds the Go
// representation of the stored type: int8, int16, int32, int64, uint8,
// uint16, uint32, uint64, float32, float64 or string.
type Scalar struct {
	Name  string
	Type  Type
	Value interface{}
}

// Float64 converts the scalar value to a float64.
func (s Scalar) Float64() (float64, error) { return cast.ToFloat64E(s.Value) }

// Int converts the scalar value to an int.
func (s Scalar) Int() (int, error) { return cast.ToIntE(s.Value) }

// Text converts the scalar value to its string form.
func (s Scalar) Text() string { return cast.ToString(s.Value) }

func (s Scalar) String() string {
	return fmt.Sprintf("%s(%s)=%v", s.Name, s.Type, s.Value)
}

// Array is a named N-dimensional array in a DMAP record. Dims holds the
// dimension sizes with the outermost dimension first. Data holds the cells
// as a typed slice ([]int16, []int32, []float32, []float64, []string, ...)
// in the order they appear in the file.
type Array struct {
	Name string
	Type Type
	Dims []int32
	Data interface{}
}

// Cells returns the total number of cells described by the array shape.
func (a Array) Cells() int {
	n := 1
	for _, d := range a.Dims {
		n *= int(d)
	}
	return n
}

// Float64s converts the array cells to a []float64. String arrays cannot
// be converted.
func (a Array) Float64s() ([]float64, error) {
	out, err := Float64s(a.Data)
	if err != nil {
		return nil, &TypeError{Field: a.Name, Type: byte(a.Type)}
	}
	return out, nil
}

// Float64s converts any numeric slice produced by the reader to a
// []float64.
func Float64s(data interface{}) ([]float64, error) {
	switch v := data.(type) {
	case []float64:
		out := make([]float64, len(v))
		copy(out, v)
		return out, nil
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int8:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int16:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int64:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []uint8:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []uint16:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []uint32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []uint64:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	}
	return nil, fmt.Errorf("dmap: cannot convert %T to []float64", data)
}

// Record is one DMAP record: an ordered set of named scalars and arrays.
// Iteration order matters when writing a record back out, so insertion
// order is preserved.
type Record struct {
	names   []string
	scalars map[string]Scalar
	arrays  map[string]Array
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{
		scalars: make(map[string]Scalar),
		arrays:  make(map[string]Array),
	}
}

// AddScalar adds or replaces a scalar in the record.
func (r *Record) AddScalar(s Scalar) {
	if !r.Has(s.Name) {
		r.names = append(r.names, s.Name)
	}
	delete(r.arrays, s.Name)
	r.scalars[s.Name] = s
}

// AddArray adds or replaces an array in the record.
func (r *Record) AddArray(a Array) {
	if !r.Has(a.Name) {
		r.names = append(r.names, a.Name)
	}
	delete(r.scalars, a.Name)
	r.arrays[a.Name] = a
}

// Scalar returns the named scalar.
func (r *Record) Scalar(name string) (Scalar, bool) {
	s, ok := r.scalars[name]
	return s, ok
}

// Array returns the named array.
func (r *Record) Array(name string) (Array, bool) {
	a, ok := r.arrays[name]
	return a, ok
}

// Has reports whether the record contains a variable with the given name.
func (r *Record) Has(name string) bool {
	if _, ok := r.scalars[name]; ok {
		return true
	}
	_, ok := r.arrays[name]
	return ok
}

// Names returns the variable names in insertion order.
func (r *Record) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// NumScalars returns the number of scalars in the record.
func (r *Record) NumScalars() int { return len(r.scalars) }

// NumArrays returns the number of arrays in the record.
func (r *Record) NumArrays() int { return len(r.arrays) }
