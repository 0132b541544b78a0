package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/superdarn/godarn/superdarn"
)

func writeTestFile(t *testing.T) string {
	t.Helper()
	var records []superdarn.Record
	for minute := 0; minute < 2; minute++ {
		records = append(records, superdarn.Record{
			"stid":    int16(65),
			"bmnum":   int16(minute),
			"cp":      int16(3505),
			"time.yr": int16(2020),
			"time.mo": int16(1),
			"time.dy": int16(2),
			"time.hr": int16(6),
			"time.mt": int16(minute),
			"time.sc": int16(0),
			"time.us": int32(0),
			"slist":   []int16{0, 1},
			"pwr0":    []float32{10, 20},
		})
	}
	path := filepath.Join(t.TempDir(), "test.dmap")
	dmapRecords, err := superdarn.ToDmapAll(records)
	if err != nil {
		t.Fatal(err)
	}
	if err := superdarn.WriteDmap(dmapRecords, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("godarn %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestInfoCommand(t *testing.T) {
	path := writeTestFile(t)
	out := runCommand(t, "info", path, "--format", "dmap")
	if !strings.Contains(out, "records:  2") {
		t.Errorf("info output missing record count:\n%s", out)
	}
	if !strings.Contains(out, "Rankin Inlet") {
		t.Errorf("info output missing station name:\n%s", out)
	}
}

func TestJSONCommand(t *testing.T) {
	path := writeTestFile(t)
	out := filepath.Join(t.TempDir(), "out.json")
	runCommand(t, "json", path, "--format", "dmap", "-o", out)

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var records []map[string]interface{}
	if err := json.Unmarshal(b, &records); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("exported %d records, want 2", len(records))
	}
}

func TestUnknownFormat(t *testing.T) {
	path := writeTestFile(t)
	rootCmd.SetArgs([]string{"info", path, "--format", "nope"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("unknown format did not fail")
	}
}
