package plans

import "testing"

func TestForTypeFallsBackToTrial(t *testing.T) {
	for _, planType := range []string{"", "free", "enterprise"} {
		if got := ForType(planType); got.Type != TypeTrial || got.Limits.MaxMonthlyAppointments != 50 {
			t.Fatalf("%q: expected trial plan, got %+v", planType, got)
		}
	}
	if ForType(TypePro).Limits.MaxCalendars != 5 {
		t.Fatalf("expected pro to allow 5 calendars")
	}
}

func TestAllPlansOrderAndPopular(t *testing.T) {
	all := All()
	if len(all) != 3 || all[0].Type != TypeTrial || all[2].Type != TypePro {
		t.Fatalf("unexpected order %+v", all)
	}
	popular := 0
	for _, p := range all {
		if p.Popular {
			popular++
			if p.Type != TypeStandard {
				t.Fatalf("only standard is popular, got %s", p.Type)
			}
		}
		if !Known(p.Type) {
			t.Fatalf("%s must be known", p.Type)
		}
	}
	if popular != 1 {
		t.Fatalf("expected one popular plan, got %d", popular)
	}
}

func TestUsageFor(t *testing.T) {
	u := UsageFor(ForType(TypeTrial), 60)
	if u.Remaining != 0 || u.Limit != 50 || u.Unlimited {
		t.Fatalf("unexpected trial usage %+v", u)
	}
	u = UsageFor(ForType(TypeStandard), 60)
	if !u.Unlimited || u.Used != 60 {
		t.Fatalf("unexpected standard usage %+v", u)
	}
}
