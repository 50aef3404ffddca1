package caspio

import (
	"testing"
	"time"
)

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		"first_name":     "  Pat ",
		"val_dep":        float64(500),
		"decision_ready": true,
		"legacy_flag":    "Y",
		"asgn_trv_dt":    "2026-06-18T00:00:00",
		"date_entered":   "2025-06-01",
		"blank_dt":       "",
	}

	if got := rec.Str("first_name"); got != "Pat" {
		t.Fatalf("Str trimmed = %q", got)
	}
	if got := rec.Str("missing"); got != "" {
		t.Fatalf("Str on missing field = %q", got)
	}
	if got := rec.Num("val_dep"); got != 500 {
		t.Fatalf("Num = %v", got)
	}
	if got := rec.Num("missing"); got != 0 {
		t.Fatalf("Num on missing field = %v", got)
	}
	if !rec.Bool("decision_ready") || !rec.Bool("legacy_flag") {
		t.Fatal("Bool should accept JSON booleans and legacy Y strings")
	}
	if rec.Bool("missing") {
		t.Fatal("Bool on missing field should be false")
	}

	d := rec.Date("asgn_trv_dt")
	if d == nil {
		t.Fatal("Date failed to parse ISO datetime")
	}
	want := time.Date(2026, time.June, 18, 0, 0, 0, 0, time.Local)
	if !d.Equal(want) {
		t.Fatalf("Date = %v, want %v", d, want)
	}
	if rec.Date("blank_dt") != nil || rec.Date("missing") != nil {
		t.Fatal("Date should be nil for blank or missing fields")
	}
	if rec.Date("date_entered") == nil {
		t.Fatal("Date should parse bare dates")
	}
}
