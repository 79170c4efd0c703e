package ledger

import (
	"errors"
	"testing"
)

func TestEffectiveRate(t *testing.T) {
	s := &RateSchedule{}
	for _, r := range []InterestRule{
		{Date: "20230615", RuleID: "RULE03", Rate: dec("2.20")},
		{Date: "20230101", RuleID: "RULE01", Rate: dec("1.95")},
		{Date: "20230520", RuleID: "RULE02", Rate: dec("1.90")},
	} {
		if _, err := s.Upsert(r.Date, r.RuleID, r.Rate); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		day  string
		want string
		ok   bool
	}{
		{"20221231", "0", false},
		{"20230101", "1.95", true},
		{"20230519", "1.95", true},
		{"20230520", "1.90", true},
		{"20230614", "1.90", true},
		{"20230615", "2.20", true},
		{"20991231", "2.20", true},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			got, ok := s.EffectiveRate(tt.day)
			if ok != tt.ok || !got.Equal(dec(tt.want)) {
				t.Fatalf("EffectiveRate(%s)=%s,%t want %s,%t", tt.day, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestUpsertReplacesSameDate(t *testing.T) {
	s := &RateSchedule{}
	if _, err := s.Upsert("20230615", "rule03", dec("2.20")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Upsert("20230615", "rule04", dec("2.50")); err != nil {
		t.Fatal(err)
	}
	all := s.All()
	if len(all) != 1 {
		t.Fatalf("rules=%d want 1", len(all))
	}
	if all[0].RuleID != "RULE04" || !all[0].Rate.Equal(dec("2.50")) {
		t.Fatalf("rule=%+v want RULE04 2.50", all[0])
	}
}

func TestAllAscending(t *testing.T) {
	s := NewRateSchedule([]InterestRule{
		{Date: "20230615", RuleID: "C", Rate: dec("3")},
		{Date: "20230101", RuleID: "A", Rate: dec("1")},
		{Date: "20230301", RuleID: "B", Rate: dec("2")},
	})
	all := s.All()
	for i, want := range []string{"A", "B", "C"} {
		if all[i].RuleID != want {
			t.Fatalf("All()[%d]=%s want %s", i, all[i].RuleID, want)
		}
	}
	// mutating the copy leaves the schedule intact
	all[0].RuleID = "Z"
	if s.All()[0].RuleID != "A" {
		t.Fatal("All returned internal slice")
	}
}

func TestUpsertInvalid(t *testing.T) {
	cases := []struct {
		name, date, id, rate string
	}{
		{"zero rate", "20230101", "R1", "0"},
		{"negative rate", "20230101", "R1", "-1"},
		{"over 100", "20230101", "R1", "100.01"},
		{"empty date", "", "R1", "1"},
		{"empty id", "20230101", "  ", "1"},
		{"bad date", "2023-01-01", "R1", "1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := &RateSchedule{}
			if _, err := s.Upsert(c.date, c.id, dec(c.rate)); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
			if len(s.All()) != 0 {
				t.Fatal("invalid rule was stored")
			}
		})
	}
	if _, err := (&RateSchedule{}).Upsert("20230101", "R1", dec("100")); err != nil {
		t.Fatalf("rate 100 should be accepted: %v", err)
	}
}

func TestNilScheduleHasNoRate(t *testing.T) {
	var s *RateSchedule
	if rate, ok := s.EffectiveRate("20230101"); ok || !rate.IsZero() {
		t.Fatalf("nil schedule rate=%s ok=%t", rate, ok)
	}
}
