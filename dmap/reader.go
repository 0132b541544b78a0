package dmap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// headerSize is the fixed part of every record: encoding identifier,
// record size, scalar count and array count, all int32.
const headerSize = 16

// Reader decodes DMAP records from a file or byte stream. The whole file
// is held in memory; records reference it only during ReadRecords.
type Reader struct {
	file   string
	buf    []byte
	cursor int
}

// NewReader opens the named DMAP file and prepares it for reading.
func NewReader(path string) (*Reader, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(buf) == 0 {
		return nil, &EmptyError{File: path}
	}
	log.Debugf("dmap: read %d bytes from %s", len(buf), path)
	return &Reader{file: path, buf: buf}, nil
}

// NewStreamReader prepares an in-memory DMAP byte stream for reading.
func NewStreamReader(stream []byte) (*Reader, error) {
	if len(stream) == 0 {
		return nil, &EmptyError{File: "stream"}
	}
	return &Reader{file: "stream", buf: stream}, nil
}

// CheckIntegrity scans the record headers without decoding any variables
// and verifies that the record sizes exactly tile the buffer. It is a
// cheap way to detect truncation or byte offsets before a full read.
func (r *Reader) CheckIntegrity() error {
	if r.cursor != 0 {
		return &CursorError{File: r.file, Cursor: r.cursor, Message: "integrity check requires cursor at 0"}
	}
	total := 0
	for r.cursor < len(r.buf) {
		r.cursor += 4 // encoding identifier
		size, err := r.readInt32()
		if err != nil {
			r.cursor = 0
			return err
		}
		if size <= 0 {
			err := &DataError{File: r.file, Cursor: r.cursor,
				Message: fmt.Sprintf("record size %d must be positive", size)}
			r.cursor = 0
			return err
		}
		total += int(size)
		if total > len(r.buf) {
			err := &DataError{File: r.file, Cursor: r.cursor,
				Message: fmt.Sprintf("summed record sizes %d exceed the %d bytes in the file", total, len(r.buf))}
			r.cursor = 0
			return err
		}
		// The encoding identifier and size field are part of the
		// record size, so step back over them.
		r.cursor += int(size) - 8
	}
	r.cursor = 0
	if total != len(r.buf) {
		return &DataError{File: r.file, Cursor: 0,
			Message: fmt.Sprintf("summed record sizes %d do not match the %d bytes in the file", total, len(r.buf))}
	}
	return nil
}

// ReadRecords decodes every record in the buffer.
func (r *Reader) ReadRecords() ([]*Record, error) {
	var records []*Record
	for r.cursor < len(r.buf) {
		rec, err := r.readRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	log.Debugf("dmap: decoded %d records from %s", len(records), r.file)
	return records, nil
}

func (r *Reader) readRecord() (*Record, error) {
	start := r.cursor
	if err := r.need(headerSize); err != nil {
		return nil, err
	}
	r.cursor += 4 // encoding identifier, unused
	size, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, &DataError{File: r.file, Cursor: r.cursor,
			Message: fmt.Sprintf("record size %d must be positive", size)}
	}
	if int(size) > len(r.buf)-start {
		return nil, &DataError{File: r.file, Cursor: r.cursor,
			Message: fmt.Sprintf("record size %d exceeds the %d remaining bytes", size, len(r.buf)-start)}
	}

	nScalars, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	nArrays, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	if nScalars <= 0 {
		return nil, &DataError{File: r.file, Cursor: r.cursor,
			Message: fmt.Sprintf("scalar count %d must be positive", nScalars)}
	}
	if nArrays <= 0 {
		return nil, &DataError{File: r.file, Cursor: r.cursor,
			Message: fmt.Sprintf("array count %d must be positive", nArrays)}
	}
	if nScalars+nArrays > size {
		return nil, &DataError{File: r.file, Cursor: r.cursor,
			Message: fmt.Sprintf("%d variables cannot fit in a %d byte record", nScalars+nArrays, size)}
	}

	rec := NewRecord()
	for i := int32(0); i < nScalars; i++ {
		s, err := r.readScalar()
		if err != nil {
			return nil, err
		}
		rec.AddScalar(s)
	}
	for i := int32(0); i < nArrays; i++ {
		a, err := r.readArray(size)
		if err != nil {
			return nil, err
		}
		rec.AddArray(a)
	}

	if r.cursor-start != int(size) {
		return nil, &CursorError{File: r.file, Cursor: r.cursor,
			Message: fmt.Sprintf("record consumed %d bytes but its header claims %d", r.cursor-start, size)}
	}
	return rec, nil
}

func (r *Reader) readScalar() (Scalar, error) {
	name, err := r.readString()
	if err != nil {
		return Scalar{}, err
	}
	t, err := r.readType(name)
	if err != nil {
		return Scalar{}, err
	}
	if t == TypeDmap {
		// RST reserves nested DMAP values but no file in the wild
		// uses them for scalars.
		return Scalar{}, &TypeError{File: r.file, Field: name, Type: byte(t), Cursor: r.cursor}
	}
	v, err := r.readValue(t)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{Name: name, Type: t, Value: v}, nil
}

func (r *Reader) readArray(recordSize int32) (Array, error) {
	name, err := r.readString()
	if err != nil {
		return Array{}, err
	}
	t, err := r.readType(name)
	if err != nil {
		return Array{}, err
	}
	if t == TypeDmap {
		return Array{}, &TypeError{File: r.file, Field: name, Type: byte(t), Cursor: r.cursor}
	}

	nDims, err := r.readInt32()
	if err != nil {
		return Array{}, err
	}
	if nDims <= 0 {
		return Array{}, &DataError{File: r.file, Cursor: r.cursor,
			Message: fmt.Sprintf("array %q dimension count %d must be positive", name, nDims)}
	}
	if nDims > recordSize {
		return Array{}, &DataError{File: r.file, Cursor: r.cursor,
			Message: fmt.Sprintf("array %q dimension count %d exceeds record size %d", name, nDims, recordSize)}
	}

	dims := make([]int32, nDims)
	for i := range dims {
		d, err := r.readInt32()
		if err != nil {
			return Array{}, err
		}
		dims[i] = d
	}
	// Dimensions are stored innermost first; flip to outer-first order.
	for i, j := 0, len(dims)-1; i < j; i, j = i+1, j-1 {
		dims[i], dims[j] = dims[j], dims[i]
	}

	cells := 1
	for i, d := range dims {
		// slist holds the range gates with valid data and may be
		// empty when a record saw no backscatter at all. Negative
		// sizes are invalid everywhere: they would produce a negative
		// cell count that slips past the record-size bounds below.
		if d < 0 || (d == 0 && name != "slist") {
			return Array{}, &DataError{File: r.file, Cursor: r.cursor,
				Message: fmt.Sprintf("array %q dimension %d has size %d", name, i, d)}
		}
		if d >= recordSize {
			return Array{}, &DataError{File: r.file, Cursor: r.cursor,
				Message: fmt.Sprintf("array %q dimension %d size %d exceeds record size %d", name, i, d, recordSize)}
		}
		cells *= int(d)
		if cells > int(recordSize) {
			return Array{}, &DataError{File: r.file, Cursor: r.cursor,
				Message: fmt.Sprintf("array %q has %d cells which exceeds record size %d", name, cells, recordSize)}
		}
	}
	if cells*t.Size() > int(recordSize) {
		return Array{}, &DataError{File: r.file, Cursor: r.cursor,
			Message: fmt.Sprintf("array %q needs %d bytes which exceeds record size %d", name, cells*t.Size(), recordSize)}
	}

	data, err := r.readCells(t, cells)
	if err != nil {
		return Array{}, err
	}
	return Array{Name: name, Type: t, Dims: dims, Data: data}, nil
}

func (r *Reader) readType(field string) (Type, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	t := Type(r.buf[r.cursor])
	if !t.valid() {
		return 0, &TypeError{File: r.file, Field: field, Type: byte(t), Cursor: r.cursor}
	}
	r.cursor++
	return t, nil
}

func (r *Reader) readValue(t Type) (interface{}, error) {
	if t == TypeString {
		return r.readString()
	}
	if err := r.need(t.Size()); err != nil {
		return nil, err
	}
	b := r.buf[r.cursor:]
	r.cursor += t.Size()
	switch t {
	case TypeChar:
		return int8(b[0]), nil
	case TypeUchar:
		return b[0], nil
	case TypeShort:
		return int16(binary.LittleEndian.Uint16(b)), nil
	case TypeUshort:
		return binary.LittleEndian.Uint16(b), nil
	case TypeInt:
		return int32(binary.LittleEndian.Uint32(b)), nil
	case TypeUint:
		return binary.LittleEndian.Uint32(b), nil
	case TypeLong:
		return int64(binary.LittleEndian.Uint64(b)), nil
	case TypeUlong:
		return binary.LittleEndian.Uint64(b), nil
	case TypeFloat:
		return math32(binary.LittleEndian.Uint32(b)), nil
	case TypeDouble:
		return math64(binary.LittleEndian.Uint64(b)), nil
	}
	r.cursor -= t.Size()
	return nil, &TypeError{File: r.file, Type: byte(t), Cursor: r.cursor}
}

// readCells decodes a run of array cells into a typed slice.
func (r *Reader) readCells(t Type, cells int) (interface{}, error) {
	if t == TypeString {
		out := make([]string, cells)
		for i := range out {
			s, err := r.readString()
			if err != nil {
				return nil, err
			}
			out[i] = s
		}
		return out, nil
	}
	if err := r.need(cells * t.Size()); err != nil {
		return nil, err
	}
	switch t {
	case TypeChar:
		out := make([]int8, cells)
		for i := range out {
			out[i] = int8(r.buf[r.cursor])
			r.cursor++
		}
		return out, nil
	case TypeUchar:
		out := make([]uint8, cells)
		copy(out, r.buf[r.cursor:r.cursor+cells])
		r.cursor += cells
		return out, nil
	case TypeShort:
		out := make([]int16, cells)
		for i := range out {
			out[i] = int16(binary.LittleEndian.Uint16(r.buf[r.cursor:]))
			r.cursor += 2
		}
		return out, nil
	case TypeUshort:
		out := make([]uint16, cells)
		for i := range out {
			out[i] = binary.LittleEndian.Uint16(r.buf[r.cursor:])
			r.cursor += 2
		}
		return out, nil
	case TypeInt:
		out := make([]int32, cells)
		for i := range out {
			out[i] = int32(binary.LittleEndian.Uint32(r.buf[r.cursor:]))
			r.cursor += 4
		}
		return out, nil
	case TypeUint:
		out := make([]uint32, cells)
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(r.buf[r.cursor:])
			r.cursor += 4
		}
		return out, nil
	case TypeLong:
		out := make([]int64, cells)
		for i := range out {
			out[i] = int64(binary.LittleEndian.Uint64(r.buf[r.cursor:]))
			r.cursor += 8
		}
		return out, nil
	case TypeUlong:
		out := make([]uint64, cells)
		for i := range out {
			out[i] = binary.LittleEndian.Uint64(r.buf[r.cursor:])
			r.cursor += 8
		}
		return out, nil
	case TypeFloat:
		out := make([]float32, cells)
		for i := range out {
			out[i] = math32(binary.LittleEndian.Uint32(r.buf[r.cursor:]))
			r.cursor += 4
		}
		return out, nil
	case TypeDouble:
		out := make([]float64, cells)
		for i := range out {
			out[i] = math64(binary.LittleEndian.Uint64(r.buf[r.cursor:]))
			r.cursor += 8
		}
		return out, nil
	}
	return nil, &TypeError{File: r.file, Type: byte(t), Cursor: r.cursor}
}

func (r *Reader) readInt32() (int32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(r.buf[r.cursor:]))
	r.cursor += 4
	return v, nil
}

func (r *Reader) readString() (string, error) {
	i := bytes.IndexByte(r.buf[r.cursor:], 0)
	if i < 0 {
		return "", &CursorError{File: r.file, Cursor: r.cursor, Message: "unterminated string"}
	}
	s := string(r.buf[r.cursor : r.cursor+i])
	r.cursor += i + 1
	return s, nil
}

func (r *Reader) need(n int) error {
	if r.cursor+n > len(r.buf) {
		return &CursorError{File: r.file, Cursor: r.cursor,
			Message: fmt.Sprintf("need %d bytes but only %d remain", n, len(r.buf)-r.cursor)}
	}
	return nil
}
