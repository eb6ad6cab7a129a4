package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.June, 1)

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2025-06-01"` {
		t.Fatalf("unexpected encoding %s", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("expected %s got %s", d, back)
	}
}

func TestDateOfDropsTimeComponent(t *testing.T) {
	instant := time.Date(2025, time.June, 1, 23, 59, 59, 0, time.UTC)
	if got := DateOf(instant); got.String() != "2025-06-01" {
		t.Fatalf("expected 2025-06-01 got %s", got)
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2025, time.June, 1)
	b := a.AddDays(1)

	if !a.Before(b) || !b.After(a) {
		t.Fatalf("ordering broken: %s vs %s", a, b)
	}
	if a.Equal(b) {
		t.Fatalf("distinct days should not be equal")
	}
}

func TestDateScanVariants(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2025-06-02" {
		t.Fatalf("unexpected scan result %s", d)
	}

	if err := d.Scan("2025-06-03"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.String() != "2025-06-03" {
		t.Fatalf("unexpected scan result %s", d)
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !d.IsZero() {
		t.Fatalf("expected zero date after nil scan")
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("01/06/2025"); err == nil {
		t.Fatal("expected parse error")
	}
}
