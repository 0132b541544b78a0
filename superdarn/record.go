package superdarn

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cast"

	"github.com/superdarn/godarn/dmap"
)

// Record is the flat view of a DMAP record: field name to value, scalars
// as single values and arrays as typed slices. It is the shape the
// plotting and analysis code works with.
type Record map[string]interface{}

// Has reports whether the field is present.
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Int returns the named scalar as an int.
func (r Record) Int(name string) (int, error) {
	v, ok := r[name]
	if !ok {
		return 0, fmt.Errorf("superdarn: record has no field %q", name)
	}
	return cast.ToIntE(v)
}

// Float64 returns the named scalar as a float64.
func (r Record) Float64(name string) (float64, error) {
	v, ok := r[name]
	if !ok {
		return 0, fmt.Errorf("superdarn: record has no field %q", name)
	}
	return cast.ToFloat64E(v)
}

// String returns the named scalar as a string.
func (r Record) String(name string) (string, error) {
	v, ok := r[name]
	if !ok {
		return "", fmt.Errorf("superdarn: record has no field %q", name)
	}
	return cast.ToStringE(v)
}

// Floats returns the named array as a []float64.
func (r Record) Floats(name string) ([]float64, error) {
	v, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("superdarn: record has no field %q", name)
	}
	return dmap.Float64s(v)
}

// Ints returns the named array as a []int.
func (r Record) Ints(name string) ([]int, error) {
	fs, err := r.Floats(name)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(fs))
	for i, f := range fs {
		out[i] = int(f)
	}
	return out, nil
}

// Time assembles the record timestamp from the time.yr .. time.us fields.
func (r Record) Time() (time.Time, error) {
	names := []string{"time.yr", "time.mo", "time.dy", "time.hr", "time.mt", "time.sc", "time.us"}
	parts := make([]int, len(names))
	for i, name := range names {
		v, err := r.Int(name)
		if err != nil {
			return time.Time{}, err
		}
		parts[i] = v
	}
	return time.Date(parts[0], time.Month(parts[1]), parts[2],
		parts[3], parts[4], parts[5], parts[6]*1000, time.UTC), nil
}

// FromDmap flattens a decoded DMAP record.
func FromDmap(rec *dmap.Record) Record {
	out := make(Record, len(rec.Names()))
	for _, name := range rec.Names() {
		if s, ok := rec.Scalar(name); ok {
			out[name] = s.Value
			continue
		}
		a, _ := rec.Array(name)
		out[name] = a.Data
	}
	return out
}

// ToDmap rebuilds a DMAP record from a flat record, inferring each DMAP
// type from the Go type of the value. Fields are emitted in sorted name
// order so the result is deterministic.
func ToDmap(r Record) (*dmap.Record, error) {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)

	rec := dmap.NewRecord()
	for _, name := range names {
		switch v := r[name].(type) {
		case int8:
			rec.AddScalar(dmap.Scalar{Name: name, Type: dmap.TypeChar, Value: v})
		case uint8:
			rec.AddScalar(dmap.Scalar{Name: name, Type: dmap.TypeUchar, Value: v})
		case int16:
			rec.AddScalar(dmap.Scalar{Name: name, Type: dmap.TypeShort, Value: v})
		case uint16:
			rec.AddScalar(dmap.Scalar{Name: name, Type: dmap.TypeUshort, Value: v})
		case int32:
			rec.AddScalar(dmap.Scalar{Name: name, Type: dmap.TypeInt, Value: v})
		case uint32:
			rec.AddScalar(dmap.Scalar{Name: name, Type: dmap.TypeUint, Value: v})
		case int64:
			rec.AddScalar(dmap.Scalar{Name: name, Type: dmap.TypeLong, Value: v})
		case uint64:
			rec.AddScalar(dmap.Scalar{Name: name, Type: dmap.TypeUlong, Value: v})
		case float32:
			rec.AddScalar(dmap.Scalar{Name: name, Type: dmap.TypeFloat, Value: v})
		case float64:
			rec.AddScalar(dmap.Scalar{Name: name, Type: dmap.TypeDouble, Value: v})
		case string:
			rec.AddScalar(dmap.Scalar{Name: name, Type: dmap.TypeString, Value: v})
		case []int8:
			rec.AddArray(arrayOf(name, dmap.TypeChar, len(v), v))
		case []uint8:
			rec.AddArray(arrayOf(name, dmap.TypeUchar, len(v), v))
		case []int16:
			rec.AddArray(arrayOf(name, dmap.TypeShort, len(v), v))
		case []uint16:
			rec.AddArray(arrayOf(name, dmap.TypeUshort, len(v), v))
		case []int32:
			rec.AddArray(arrayOf(name, dmap.TypeInt, len(v), v))
		case []uint32:
			rec.AddArray(arrayOf(name, dmap.TypeUint, len(v), v))
		case []int64:
			rec.AddArray(arrayOf(name, dmap.TypeLong, len(v), v))
		case []uint64:
			rec.AddArray(arrayOf(name, dmap.TypeUlong, len(v), v))
		case []float32:
			rec.AddArray(arrayOf(name, dmap.TypeFloat, len(v), v))
		case []float64:
			rec.AddArray(arrayOf(name, dmap.TypeDouble, len(v), v))
		case []string:
			rec.AddArray(arrayOf(name, dmap.TypeString, len(v), v))
		default:
			return nil, fmt.Errorf("superdarn: field %q has unsupported type %T", name, v)
		}
	}
	return rec, nil
}

// ToDmapAll converts a slice of flat records back to DMAP records.
func ToDmapAll(records []Record) ([]*dmap.Record, error) {
	out := make([]*dmap.Record, len(records))
	for i, r := range records {
		rec, err := ToDmap(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out[i] = rec
	}
	return out, nil
}

func arrayOf(name string, t dmap.Type, n int, data interface{}) dmap.Array {
	return dmap.Array{Name: name, Type: t, Dims: []int32{int32(n)}, Data: data}
}
