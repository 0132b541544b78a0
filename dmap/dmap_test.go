package dmap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func sampleRecord() *Record {
	rec := NewRecord()
	rec.AddScalar(Scalar{Name: "radar.revision.major", Type: TypeChar, Value: int8(1)})
	rec.AddScalar(Scalar{Name: "cp", Type: TypeShort, Value: int16(3505)})
	rec.AddScalar(Scalar{Name: "stid", Type: TypeShort, Value: int16(5)})
	rec.AddScalar(Scalar{Name: "bmnum", Type: TypeShort, Value: int16(7)})
	rec.AddScalar(Scalar{Name: "tfreq", Type: TypeShort, Value: int16(10500)})
	rec.AddScalar(Scalar{Name: "noise.search", Type: TypeFloat, Value: float32(3.25)})
	rec.AddScalar(Scalar{Name: "noise.mean", Type: TypeDouble, Value: float64(2.5)})
	rec.AddScalar(Scalar{Name: "origin.command", Type: TypeString, Value: "make_fit"})
	rec.AddScalar(Scalar{Name: "intt.us", Type: TypeInt, Value: int32(250000)})
	rec.AddArray(Array{Name: "slist", Type: TypeShort, Dims: []int32{3}, Data: []int16{2, 5, 9}})
	rec.AddArray(Array{Name: "pwr0", Type: TypeFloat, Dims: []int32{3}, Data: []float32{10.5, 20.25, 0}})
	rec.AddArray(Array{Name: "ltab", Type: TypeShort, Dims: []int32{2, 3}, Data: []int16{0, 0, 26, 27, 20, 22}})
	return rec
}

func roundTrip(t *testing.T, in []*Record) []*Record {
	t.Helper()
	stream, err := NewWriter(in).Stream()
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	r, err := NewStreamReader(stream)
	if err != nil {
		t.Fatalf("NewStreamReader: %v", err)
	}
	if err := r.CheckIntegrity(); err != nil {
		t.Fatalf("CheckIntegrity: %v", err)
	}
	out, err := r.ReadRecords()
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	in := []*Record{sampleRecord(), sampleRecord()}
	out := roundTrip(t, in)
	if len(out) != len(in) {
		t.Fatalf("got %d records, want %d", len(out), len(in))
	}
	for i := range in {
		if !reflect.DeepEqual(in[i].Names(), out[i].Names()) {
			t.Errorf("record %d: names %v, want %v", i, out[i].Names(), in[i].Names())
		}
		for _, name := range in[i].Names() {
			if s, ok := in[i].Scalar(name); ok {
				got, ok := out[i].Scalar(name)
				if !ok || !reflect.DeepEqual(got, s) {
					t.Errorf("record %d scalar %q: got %+v, want %+v", i, name, got, s)
				}
				continue
			}
			a, _ := in[i].Array(name)
			got, ok := out[i].Array(name)
			if !ok || !reflect.DeepEqual(got, a) {
				t.Errorf("record %d array %q: got %+v, want %+v", i, name, got, a)
			}
		}
	}
}

func TestRoundTripEmptySlist(t *testing.T) {
	rec := NewRecord()
	rec.AddScalar(Scalar{Name: "stid", Type: TypeShort, Value: int16(65)})
	rec.AddArray(Array{Name: "slist", Type: TypeShort, Dims: []int32{0}, Data: []int16{}})
	out := roundTrip(t, []*Record{rec})
	a, ok := out[0].Array("slist")
	if !ok {
		t.Fatal("slist missing after round trip")
	}
	if a.Cells() != 0 || len(a.Data.([]int16)) != 0 {
		t.Errorf("empty slist came back with %d cells", a.Cells())
	}
}

func TestScalarCoercion(t *testing.T) {
	// Records assembled by hand use whatever Go types are convenient;
	// the writer must coerce them to the declared DMAP type.
	rec := NewRecord()
	rec.AddScalar(Scalar{Name: "cp", Type: TypeShort, Value: 3505})
	rec.AddScalar(Scalar{Name: "nave", Type: TypeInt, Value: 42})
	rec.AddScalar(Scalar{Name: "bmazm", Type: TypeFloat, Value: 12.5})
	rec.AddArray(Array{Name: "ptab", Type: TypeShort, Dims: []int32{2}, Data: []int16{0, 14}})
	out := roundTrip(t, []*Record{rec})

	cases := []struct {
		name string
		want interface{}
	}{
		{"cp", int16(3505)},
		{"nave", int32(42)},
		{"bmazm", float32(12.5)},
	}
	for _, c := range cases {
		s, ok := out[0].Scalar(c.name)
		if !ok {
			t.Fatalf("scalar %q missing", c.name)
		}
		if !reflect.DeepEqual(s.Value, c.want) {
			t.Errorf("scalar %q: got %T(%v), want %T(%v)", c.name, s.Value, s.Value, c.want, c.want)
		}
	}
}

func TestEmptyStream(t *testing.T) {
	_, err := NewStreamReader(nil)
	var empty *EmptyError
	if !errors.As(err, &empty) {
		t.Fatalf("got %v, want EmptyError", err)
	}
}

func TestNoRecordsToWrite(t *testing.T) {
	_, err := NewWriter(nil).Stream()
	var dataErr *DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("got %v, want DataError", err)
	}
}

func validStream(t *testing.T) []byte {
	t.Helper()
	stream, err := NewWriter([]*Record{sampleRecord()}).Stream()
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	return stream
}

func TestCorruptRecordSize(t *testing.T) {
	stream := validStream(t)
	// The record size lives in bytes 4..8 of the header.
	stream[4], stream[5], stream[6], stream[7] = 0xff, 0xff, 0xff, 0xff

	r, _ := NewStreamReader(stream)
	var dataErr *DataError
	if err := r.CheckIntegrity(); !errors.As(err, &dataErr) {
		t.Errorf("CheckIntegrity: got %v, want DataError", err)
	}
	r, _ = NewStreamReader(stream)
	if _, err := r.ReadRecords(); !errors.As(err, &dataErr) {
		t.Errorf("ReadRecords: got %v, want DataError", err)
	}
}

func TestOversizedRecord(t *testing.T) {
	stream := validStream(t)
	// Claim one byte more than the stream holds.
	stream[4]++
	r, _ := NewStreamReader(stream)
	var dataErr *DataError
	if err := r.CheckIntegrity(); !errors.As(err, &dataErr) {
		t.Errorf("CheckIntegrity: got %v, want DataError", err)
	}
}

func TestTruncatedStream(t *testing.T) {
	stream := validStream(t)
	r, _ := NewStreamReader(stream[:len(stream)-4])
	if _, err := r.ReadRecords(); err == nil {
		t.Error("ReadRecords on truncated stream did not fail")
	}
}

func TestInvalidTypeCode(t *testing.T) {
	stream := validStream(t)
	// First scalar: header, then "radar.revision.major\x00", then the
	// type code byte.
	pos := headerSize + len("radar.revision.major") + 1
	stream[pos] = 42

	r, _ := NewStreamReader(stream)
	_, err := r.ReadRecords()
	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("got %v, want TypeError", err)
	}
	if typeErr.Field != "radar.revision.major" || typeErr.Type != 42 {
		t.Errorf("TypeError = %+v, want field radar.revision.major code 42", typeErr)
	}
}

// arrayDimOffset finds the first dimension size of a named array in an
// encoded stream.
func arrayDimOffset(t *testing.T, stream []byte, name string) int {
	t.Helper()
	i := bytes.Index(stream, append([]byte(name), 0))
	if i < 0 {
		t.Fatalf("array %q not in stream", name)
	}
	// name NUL, type code, dimension count, then the first dimension.
	return i + len(name) + 1 + 1 + 4
}

func TestNegativeArrayDim(t *testing.T) {
	stream := validStream(t)
	// slist may be empty but never negative; a negative size must fail
	// cleanly instead of producing a negative cell count.
	pos := arrayDimOffset(t, stream, "slist")
	binary.LittleEndian.PutUint32(stream[pos:], 0xffffffff)

	r, _ := NewStreamReader(stream)
	var dataErr *DataError
	if _, err := r.ReadRecords(); !errors.As(err, &dataErr) {
		t.Errorf("negative slist dim: got %v, want DataError", err)
	}
}

func TestZeroArrayDim(t *testing.T) {
	stream := validStream(t)
	pos := arrayDimOffset(t, stream, "pwr0")
	binary.LittleEndian.PutUint32(stream[pos:], 0)

	r, _ := NewStreamReader(stream)
	var dataErr *DataError
	if _, err := r.ReadRecords(); !errors.As(err, &dataErr) {
		t.Errorf("zero pwr0 dim: got %v, want DataError", err)
	}
}

func TestScalarText(t *testing.T) {
	s := Scalar{Name: "cp", Type: TypeShort, Value: int16(3505)}
	if s.Text() != "3505" {
		t.Errorf("Text = %q, want 3505", s.Text())
	}
	if got := fmt.Sprintf("%v", s); got != "cp(short)=3505" {
		t.Errorf("String = %q, want cp(short)=3505", got)
	}
}

func TestWriteFile(t *testing.T) {
	path := t.TempDir() + "/out.dmap"
	if err := NewWriter([]*Record{sampleRecord()}).WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	recs, err := r.ReadRecords()
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
}
