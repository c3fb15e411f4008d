package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-14")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 14 {
		t.Fatalf("unexpected date: %v", got)
	}

	if _, err := ParseDate("2026-03-14T09:30:00Z"); err != nil {
		t.Fatalf("RFC3339 should parse: %v", err)
	}

	if _, err := ParseDate("14/03/2026"); err == nil {
		t.Fatal("non-ISO date should fail")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatal("empty date should fail")
	}
}

func TestFormatTimestamp_UTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	ts := time.Date(2026, 3, 14, 21, 0, 0, 0, loc)
	if got := FormatTimestamp(ts); got != "2026-03-15T00:00:00Z" {
		t.Fatalf("expected UTC rendering, got %s", got)
	}
}
