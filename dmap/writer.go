package dmap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// encodingIdentifier marks the DataMap block construction in every record
// header. RST has only ever emitted this value.
const encodingIdentifier int32 = 65537

func math32(bits uint32) float32 { return math.Float32frombits(bits) }
func math64(bits uint64) float64 { return math.Float64frombits(bits) }

// Writer encodes DMAP records back into the on-disk byte format. Scalar
// values are coerced to their declared type, so a record assembled from
// plain Go ints round-trips without manual conversion.
type Writer struct {
	records []*Record
}

// NewWriter returns a writer over the given records.
func NewWriter(records []*Record) *Writer {
	return &Writer{records: records}
}

// Stream encodes the records into a DMAP byte stream.
func (w *Writer) Stream() ([]byte, error) {
	if len(w.records) == 0 {
		return nil, &DataError{File: "stream", Message: "no records to write"}
	}
	var buf bytes.Buffer
	for i, rec := range w.records {
		if err := writeRecord(&buf, rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	log.Debugf("dmap: encoded %d records into %d bytes", len(w.records), buf.Len())
	return buf.Bytes(), nil
}

// WriteFile encodes the records and writes them to the named file.
func (w *Writer) WriteFile(path string) error {
	stream, err := w.Stream()
	if err != nil {
		return err
	}
	return os.WriteFile(path, stream, 0644)
}

func writeRecord(buf *bytes.Buffer, rec *Record) error {
	var data bytes.Buffer
	for _, name := range rec.names {
		if s, ok := rec.scalars[name]; ok {
			if err := writeScalar(&data, s); err != nil {
				return err
			}
			continue
		}
		if err := writeArray(&data, rec.arrays[name]); err != nil {
			return err
		}
	}

	writeInt32(buf, encodingIdentifier)
	writeInt32(buf, int32(data.Len()+headerSize))
	writeInt32(buf, int32(rec.NumScalars()))
	writeInt32(buf, int32(rec.NumArrays()))
	buf.Write(data.Bytes())
	return nil
}

func writeScalar(buf *bytes.Buffer, s Scalar) error {
	writeName(buf, s.Name)
	buf.WriteByte(byte(s.Type))
	return writeValue(buf, s.Type, s.Name, s.Value)
}

func writeArray(buf *bytes.Buffer, a Array) error {
	writeName(buf, a.Name)
	buf.WriteByte(byte(a.Type))
	writeInt32(buf, int32(len(a.Dims)))
	// Dimensions go back out innermost first, undoing the flip done on
	// read.
	for i := len(a.Dims) - 1; i >= 0; i-- {
		writeInt32(buf, a.Dims[i])
	}
	return writeCells(buf, a)
}

func writeCells(buf *bytes.Buffer, a Array) error {
	n, err := cellCount(a)
	if err != nil {
		return err
	}
	if n != a.Cells() {
		return &DataError{Message: fmt.Sprintf("array %q has %d cells but its shape %v describes %d",
			a.Name, n, a.Dims, a.Cells())}
	}
	switch v := a.Data.(type) {
	case []string:
		for _, s := range v {
			writeName(buf, s)
		}
	case []int8:
		for _, x := range v {
			buf.WriteByte(byte(x))
		}
	case []uint8:
		buf.Write(v)
	case []int16:
		for _, x := range v {
			writeUint16(buf, uint16(x))
		}
	case []uint16:
		for _, x := range v {
			writeUint16(buf, x)
		}
	case []int32:
		for _, x := range v {
			writeInt32(buf, x)
		}
	case []uint32:
		for _, x := range v {
			writeUint32(buf, x)
		}
	case []int64:
		for _, x := range v {
			writeUint64(buf, uint64(x))
		}
	case []uint64:
		for _, x := range v {
			writeUint64(buf, x)
		}
	case []float32:
		for _, x := range v {
			writeUint32(buf, math.Float32bits(x))
		}
	case []float64:
		for _, x := range v {
			writeUint64(buf, math.Float64bits(x))
		}
	default:
		return &TypeError{Field: a.Name, Type: byte(a.Type)}
	}
	return nil
}

func cellCount(a Array) (int, error) {
	switch v := a.Data.(type) {
	case []string:
		return len(v), nil
	case []int8:
		return len(v), nil
	case []uint8:
		return len(v), nil
	case []int16:
		return len(v), nil
	case []uint16:
		return len(v), nil
	case []int32:
		return len(v), nil
	case []uint32:
		return len(v), nil
	case []int64:
		return len(v), nil
	case []uint64:
		return len(v), nil
	case []float32:
		return len(v), nil
	case []float64:
		return len(v), nil
	}
	return 0, &TypeError{Field: a.Name, Type: byte(a.Type)}
}

func writeValue(buf *bytes.Buffer, t Type, name string, v interface{}) error {
	switch t {
	case TypeString:
		writeName(buf, cast.ToString(v))
		return nil
	case TypeChar:
		x, err := cast.ToInt8E(v)
		if err != nil {
			return scalarValueError(name, t, err)
		}
		buf.WriteByte(byte(x))
	case TypeUchar:
		x, err := cast.ToUint8E(v)
		if err != nil {
			return scalarValueError(name, t, err)
		}
		buf.WriteByte(x)
	case TypeShort:
		x, err := cast.ToInt16E(v)
		if err != nil {
			return scalarValueError(name, t, err)
		}
		writeUint16(buf, uint16(x))
	case TypeUshort:
		x, err := cast.ToUint16E(v)
		if err != nil {
			return scalarValueError(name, t, err)
		}
		writeUint16(buf, x)
	case TypeInt:
		x, err := cast.ToInt32E(v)
		if err != nil {
			return scalarValueError(name, t, err)
		}
		writeInt32(buf, x)
	case TypeUint:
		x, err := cast.ToUint32E(v)
		if err != nil {
			return scalarValueError(name, t, err)
		}
		writeUint32(buf, x)
	case TypeLong:
		x, err := cast.ToInt64E(v)
		if err != nil {
			return scalarValueError(name, t, err)
		}
		writeUint64(buf, uint64(x))
	case TypeUlong:
		x, err := cast.ToUint64E(v)
		if err != nil {
			return scalarValueError(name, t, err)
		}
		writeUint64(buf, x)
	case TypeFloat:
		x, err := cast.ToFloat32E(v)
		if err != nil {
			return scalarValueError(name, t, err)
		}
		writeUint32(buf, math.Float32bits(x))
	case TypeDouble:
		x, err := cast.ToFloat64E(v)
		if err != nil {
			return scalarValueError(name, t, err)
		}
		writeUint64(buf, math.Float64bits(x))
	default:
		return &TypeError{Field: name, Type: byte(t)}
	}
	return nil
}

func scalarValueError(name string, t Type, err error) error {
	return &DataError{Message: fmt.Sprintf("scalar %q is not a %s: %v", name, t, err)}
}

func writeName(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte(0)
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeInt32(buf *bytes.Buffer, v int32) {
	writeUint32(buf, uint32(v))
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}
