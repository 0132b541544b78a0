package superdarn

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/superdarn/godarn/dmap"
)

// fitacfRecord builds a schema-complete FITACF record for one beam
// sounding. Fields named in skip are left out.
func fitacfRecord(beam, hour int, skip ...string) *dmap.Record {
	skipped := map[string]bool{}
	for _, name := range skip {
		skipped[name] = true
	}
	rec := dmap.NewRecord()
	addScalar := func(name string, t dmap.Type, v interface{}) {
		if !skipped[name] {
			rec.AddScalar(dmap.Scalar{Name: name, Type: t, Value: v})
		}
	}
	addArray := func(name string, t dmap.Type, dims []int32, data interface{}) {
		if !skipped[name] {
			rec.AddArray(dmap.Array{Name: name, Type: t, Dims: dims, Data: data})
		}
	}

	chars := []struct {
		name string
		v    int8
	}{
		{"radar.revision.major", 1}, {"radar.revision.minor", 17}, {"origin.code", 0},
	}
	for _, c := range chars {
		addScalar(c.name, dmap.TypeChar, c.v)
	}
	addScalar("origin.time", dmap.TypeString, "Thu Jan  2 06:00:00 2020")
	addScalar("origin.command", dmap.TypeString, "make_fit")
	addScalar("combf", dmap.TypeString, "politescan")

	shorts := []struct {
		name string
		v    int16
	}{
		{"cp", 3505}, {"stid", 65},
		{"time.yr", 2020}, {"time.mo", 1}, {"time.dy", 2},
		{"time.hr", int16(hour)}, {"time.mt", 30}, {"time.sc", 15},
		{"txpow", 9000}, {"nave", 33}, {"atten", 0}, {"lagfr", 1200},
		{"smsep", 300}, {"ercod", 0}, {"stat.agc", 0}, {"stat.lopwr", 0},
		{"channel", 0}, {"bmnum", int16(beam)}, {"scan", 0}, {"offset", 0},
		{"rxrise", 100}, {"intt.sc", 3}, {"txpl", 300}, {"mpinc", 2400},
		{"mppul", 8}, {"mplgs", 23}, {"nrang", 5}, {"frang", 180},
		{"rsep", 45}, {"xcf", 0}, {"tfreq", 10500},
	}
	for _, s := range shorts {
		addScalar(s.name, dmap.TypeShort, s.v)
	}

	ints := []struct {
		name string
		v    int32
	}{
		{"time.us", 0}, {"intt.us", 500000}, {"mxpwr", 1073741824},
		{"lvmax", 20000}, {"fitacf.revision.major", 2}, {"fitacf.revision.minor", 5},
	}
	for _, s := range ints {
		addScalar(s.name, dmap.TypeInt, s.v)
	}

	floats := []struct {
		name string
		v    float32
	}{
		{"noise.search", 4.5}, {"noise.mean", 32.1}, {"bmazm", -20.4},
		{"noise.sky", 4.5}, {"noise.lag0", 0}, {"noise.vel", 0},
	}
	for _, s := range floats {
		addScalar(s.name, dmap.TypeFloat, s.v)
	}

	addArray("ptab", dmap.TypeShort, []int32{8}, []int16{0, 14, 22, 24, 27, 31, 42, 43})
	addArray("ltab", dmap.TypeShort, []int32{3, 2}, []int16{0, 0, 42, 43, 22, 24})
	addArray("pwr0", dmap.TypeFloat, []int32{5}, []float32{12, 0.5, 30, 1.5, 8})
	addArray("slist", dmap.TypeShort, []int32{3}, []int16{0, 2, 4})
	addArray("nlag", dmap.TypeShort, []int32{3}, []int16{20, 23, 18})
	addArray("qflg", dmap.TypeChar, []int32{3}, []int8{1, 1, 1})
	addArray("gflg", dmap.TypeChar, []int32{3}, []int8{0, 1, 0})
	gateFloats := []string{
		"p_l", "p_l_e", "p_s", "p_s_e", "v", "v_e",
		"w_l", "w_l_e", "w_s", "w_s_e", "sd_l", "sd_s", "sd_phi",
	}
	for i, name := range gateFloats {
		base := float32(i + 1)
		addArray(name, dmap.TypeFloat, []int32{3}, []float32{base, base * 2, base * 3})
	}
	return rec
}

func TestWriteReadFitacf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fitacf")
	in := []*dmap.Record{
		fitacfRecord(0, 6), fitacfRecord(1, 6), fitacfRecord(2, 7),
	}
	if err := WriteFitacf(in, path); err != nil {
		t.Fatalf("WriteFitacf: %v", err)
	}
	records, err := ReadFitacf(path)
	if err != nil {
		t.Fatalf("ReadFitacf: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	stid, err := records[0].Int("stid")
	if err != nil || stid != 65 {
		t.Errorf("stid = %d (%v), want 65", stid, err)
	}
	ts, err := records[2].Time()
	if err != nil {
		t.Fatalf("Time: %v", err)
	}
	want := time.Date(2020, 1, 2, 7, 30, 15, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("time = %v, want %v", ts, want)
	}
	v, err := records[1].Floats("v")
	if err != nil || len(v) != 3 {
		t.Errorf("v = %v (%v), want 3 values", v, err)
	}
}

func TestWriteMissingField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.fitacf")
	err := WriteFitacf([]*dmap.Record{fitacfRecord(0, 6, "v", "tfreq")}, path)
	var missing *FieldMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want FieldMissingError", err)
	}
	got := map[string]bool{}
	for _, f := range missing.Fields {
		got[f] = true
	}
	if !got["v"] || !got["tfreq"] || len(missing.Fields) != 2 {
		t.Errorf("missing fields = %v, want [tfreq v]", missing.Fields)
	}
}

func TestWriteExtraField(t *testing.T) {
	rec := fitacfRecord(0, 6)
	rec.AddScalar(dmap.Scalar{Name: "bogus", Type: dmap.TypeShort, Value: int16(1)})
	err := WriteFitacf([]*dmap.Record{rec}, filepath.Join(t.TempDir(), "bad.fitacf"))
	var extra *ExtraFieldError
	if !errors.As(err, &extra) {
		t.Fatalf("got %v, want ExtraFieldError", err)
	}
	if len(extra.Fields) != 1 || extra.Fields[0] != "bogus" {
		t.Errorf("extra fields = %v, want [bogus]", extra.Fields)
	}
}

func TestWriteWrongType(t *testing.T) {
	rec := fitacfRecord(0, 6, "tfreq")
	rec.AddScalar(dmap.Scalar{Name: "tfreq", Type: dmap.TypeInt, Value: int32(10500)})
	err := WriteFitacf([]*dmap.Record{rec}, filepath.Join(t.TempDir(), "bad.fitacf"))
	var format *FormatError
	if !errors.As(err, &format) {
		t.Fatalf("got %v, want FormatError", err)
	}
	if want, ok := format.Fields["tfreq"]; !ok || want != dmap.TypeShort {
		t.Errorf("FormatError fields = %v, want tfreq->short", format.Fields)
	}
}

func TestOptionalGroupAllOrNothing(t *testing.T) {
	// A lone phi0 without the rest of the interferometer group must be
	// rejected.
	rec := fitacfRecord(0, 6)
	rec.AddArray(dmap.Array{Name: "phi0", Type: dmap.TypeFloat,
		Dims: []int32{3}, Data: []float32{0.1, 0.2, 0.3}})
	err := WriteFitacf([]*dmap.Record{rec}, filepath.Join(t.TempDir(), "bad.fitacf"))
	var missing *FieldMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want FieldMissingError", err)
	}
}

func TestReadValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.dmap")
	if err := WriteDmap([]*dmap.Record{fitacfRecord(0, 6, "p_l", "w_l")}, path); err != nil {
		t.Fatalf("WriteDmap: %v", err)
	}
	_, err := ReadFitacf(path)
	var missing *FieldMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want FieldMissingError", err)
	}
	if _, err := ReadDmap(path); err != nil {
		t.Errorf("ReadDmap should not validate, got %v", err)
	}
}

func TestRecordConversionRoundTrip(t *testing.T) {
	flat := FromDmap(fitacfRecord(3, 12))
	rec, err := ToDmap(flat)
	if err != nil {
		t.Fatalf("ToDmap: %v", err)
	}
	back := FromDmap(rec)
	if !reflect.DeepEqual(flat, back) {
		t.Error("flat -> dmap -> flat round trip changed the record")
	}
	// Inferred types must still satisfy the schema.
	if err := validateAll([]*dmap.Record{rec}, Fitacf, "mem"); err != nil {
		t.Errorf("rebuilt record fails schema validation: %v", err)
	}
}

func TestBuildScan(t *testing.T) {
	flags := []int16{1, 0, 0, 1, 0, -1, 0}
	records := make([]Record, len(flags))
	for i, f := range flags {
		records[i] = Record{"scan": f}
	}
	scans, err := BuildScan(records)
	if err != nil {
		t.Fatalf("BuildScan: %v", err)
	}
	want := []int{1, 1, 1, 2, 2, 3, 3}
	if !reflect.DeepEqual(scans, want) {
		t.Errorf("scans = %v, want %v", scans, want)
	}

	second, err := ScanRecords(records, 2)
	if err != nil {
		t.Fatalf("ScanRecords: %v", err)
	}
	if len(second) != 2 {
		t.Errorf("scan 2 has %d records, want 2", len(second))
	}
}
