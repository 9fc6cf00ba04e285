package model

import "testing"

func TestWeekdayLabelsAreTotal(t *testing.T) {
	want := map[Weekday]string{
		Monday: "Pazartesi", Tuesday: "Salı", Wednesday: "Çarşamba", Thursday: "Perşembe",
		Friday: "Cuma", Saturday: "Cumartesi", Sunday: "Pazar",
	}
	for _, d := range AllWeekdays {
		if d.Label() != want[d] {
			t.Fatalf("%s: expected %q, got %q", d, want[d], d.Label())
		}
	}
	if _, err := ParseWeekday("funday"); err == nil {
		t.Fatalf("expected unknown weekday error")
	}
}

func TestDefaultWorkingHours(t *testing.T) {
	wh := DefaultWorkingHours()
	if len(wh) != 7 {
		t.Fatalf("expected 7 days, got %d", len(wh))
	}
	for _, d := range AllWeekdays {
		h := wh[d]
		weekend := d == Saturday || d == Sunday
		if h.IsOpen == weekend {
			t.Fatalf("%s: unexpected isOpen %v", d, h.IsOpen)
		}
		if h.OpenTime != "09:00" || h.CloseTime != "18:00" {
			t.Fatalf("%s: unexpected times %+v", d, h)
		}
	}
	if !wh.AnyOpen() {
		t.Fatalf("expected default hours to have an open day")
	}
	for _, d := range AllWeekdays {
		h := wh[d]
		h.IsOpen = false
		wh[d] = h
	}
	if wh.AnyOpen() {
		t.Fatalf("expected no open day")
	}
}
