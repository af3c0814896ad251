package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func mustClock(t *testing.T, s string) MinuteOfDay {
	t.Helper()
	m, err := ParseClock(s)
	if err != nil {
		t.Fatalf("failed to parse clock %q: %v", s, err)
	}
	return m
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in       string
		expected int
		wantErr  bool
	}{
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", tc.in, err)
			continue
		}
		if int(got) != tc.expected {
			t.Errorf("ParseClock(%q) = %d, expected %d", tc.in, got, tc.expected)
		}
	}
}

func TestMinuteOfDay_JSONRoundTrip(t *testing.T) {
	// Arrange
	m := mustClock(t, "09:05")

	// Act
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back MinuteOfDay
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// Assert
	if string(data) != `"09:05"` {
		t.Errorf("expected \"09:05\", got %s", data)
	}
	if back != m {
		t.Errorf("expected %d, got %d", m, back)
	}
}

func TestPriceRule_OverlapsWith(t *testing.T) {
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)

	base := PriceRule{
		EffectiveFrom: from,
		EffectiveTo:   &to,
		StartMinute:   mustClock(t, "08:00"),
		EndMinute:     mustClock(t, "18:00"),
	}

	t.Run("same window overlaps", func(t *testing.T) {
		other := base
		if !base.OverlapsWith(&other) {
			t.Error("expected overlap")
		}
	})

	t.Run("adjacent daily windows do not overlap", func(t *testing.T) {
		other := base
		other.StartMinute = mustClock(t, "18:00")
		other.EndMinute = mustClock(t, "23:00")
		if base.OverlapsWith(&other) {
			t.Error("expected no overlap at the shared boundary minute")
		}
	})

	t.Run("disjoint date ranges do not overlap", func(t *testing.T) {
		other := base
		other.EffectiveFrom = time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
		other.EffectiveTo = nil
		if base.OverlapsWith(&other) {
			t.Error("expected no overlap for disjoint date ranges")
		}
	})

	t.Run("open-ended range overlaps everything after it", func(t *testing.T) {
		other := base
		other.EffectiveFrom = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		other.EffectiveTo = nil
		if !base.OverlapsWith(&other) {
			t.Error("expected overlap with open-ended range")
		}
	})

	t.Run("touching date boundary overlaps", func(t *testing.T) {
		// EffectiveTo is inclusive, so a range starting on that day collides.
		other := base
		other.EffectiveFrom = to
		other.EffectiveTo = nil
		if !base.OverlapsWith(&other) {
			t.Error("expected overlap on the shared effective day")
		}
	})
}

func TestPriceRule_ActiveAt(t *testing.T) {
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
	rule := PriceRule{
		EffectiveFrom: from,
		EffectiveTo:   &to,
		StartMinute:   mustClock(t, "08:00"),
		EndMinute:     mustClock(t, "18:00"),
	}

	cases := []struct {
		name     string
		at       time.Time
		expected bool
	}{
		{"inside window", time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC), true},
		{"window start is inclusive", time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC), true},
		{"window end is exclusive", time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC), false},
		{"before effective range", time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC), false},
		{"last effective day counts", time.Date(2026, time.June, 30, 12, 0, 0, 0, time.UTC), true},
		{"after effective range", time.Date(2026, time.July, 1, 12, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rule.ActiveAt(tc.at); got != tc.expected {
				t.Errorf("ActiveAt(%s) = %v, expected %v", tc.at, got, tc.expected)
			}
		})
	}
}

func TestPriceRule_ActiveAt_OpenEnded(t *testing.T) {
	rule := PriceRule{
		EffectiveFrom: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		StartMinute:   mustClock(t, "00:00"),
		EndMinute:     mustClock(t, "23:59"),
	}
	if !rule.ActiveAt(time.Date(2030, time.January, 1, 12, 0, 0, 0, time.UTC)) {
		t.Error("expected open-ended rule to stay active")
	}
}
