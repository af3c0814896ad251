package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type PriceName string

const (
	PriceNameCharging PriceName = "CHARGING"
	PriceNamePenalty  PriceName = "PENALTY"
)

// MinuteOfDay is a time of day expressed as minutes since midnight.
// It marshals to/from "HH:MM".
type MinuteOfDay int

func ParseClock(s string) (MinuteOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return MinuteOfDay(h*60 + m), nil
}

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

func (m MinuteOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *MinuteOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// PriceRule is a time-windowed rate on a pole. The date range
// [EffectiveFrom, EffectiveTo] is open-ended when EffectiveTo is nil; the
// daily window [StartMinute, EndMinute) is half-open.
type PriceRule struct {
	ID            string      `json:"id" gorm:"primaryKey"`
	PoleID        string      `json:"pole_id" gorm:"index"`
	Name          PriceName   `json:"name"`
	Price         float64     `json:"price"`
	EffectiveFrom time.Time   `json:"effective_from"`
	EffectiveTo   *time.Time  `json:"effective_to,omitempty"`
	StartMinute   MinuteOfDay `json:"start_time"`
	EndMinute     MinuteOfDay `json:"end_time"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OverlapsWith reports whether two rules collide: their date ranges
// intersect (nil EffectiveTo = +infinity) and their daily windows intersect
// as half-open intervals. Callers are expected to compare rules of the same
// pole and name only.
func (r *PriceRule) OverlapsWith(other *PriceRule) bool {
	if !datesOverlap(r.EffectiveFrom, r.EffectiveTo, other.EffectiveFrom, other.EffectiveTo) {
		return false
	}
	return r.StartMinute < other.EndMinute && other.StartMinute < r.EndMinute
}

// ActiveAt reports whether the rule applies at the given instant.
func (r *PriceRule) ActiveAt(t time.Time) bool {
	day := truncateToDay(t)
	if day.Before(truncateToDay(r.EffectiveFrom)) {
		return false
	}
	if r.EffectiveTo != nil && day.After(truncateToDay(*r.EffectiveTo)) {
		return false
	}
	minute := MinuteOfDay(t.Hour()*60 + t.Minute())
	return minute >= r.StartMinute && minute < r.EndMinute
}

func datesOverlap(fromA time.Time, toA *time.Time, fromB time.Time, toB *time.Time) bool {
	if toA != nil && truncateToDay(*toA).Before(truncateToDay(fromB)) {
		return false
	}
	if toB != nil && truncateToDay(*toB).Before(truncateToDay(fromA)) {
		return false
	}
	return true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
