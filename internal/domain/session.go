package domain

import (
	"time"
)

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "PENDING"
	SessionStatusCharging  SessionStatus = "CHARGING"
	SessionStatusCompleted SessionStatus = "COMPLETED"
	SessionStatusCancelled SessionStatus = "CANCELLED"
	SessionStatusFailed    SessionStatus = "FAILED"
)

// Active reports whether the status still holds a connector.
func (s SessionStatus) Active() bool {
	return s == SessionStatusPending || s == SessionStatusCharging
}

// Terminal reports whether the status can never change again.
func (s SessionStatus) Terminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusCancelled || s == SessionStatusFailed
}

var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionStatusPending:  {SessionStatusCharging, SessionStatusCancelled, SessionStatusFailed},
	SessionStatusCharging: {SessionStatusCompleted, SessionStatusCancelled, SessionStatusFailed},
}

// CanTransition reports whether from -> to is a legal lifecycle step.
func CanTransition(from, to SessionStatus) bool {
	for _, next := range sessionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ChargingSession is one charging event from plug-in to plug-out.
// CustomerID is denormalized from the vehicle so the one-active-session-
// per-customer check is a single indexed query.
type ChargingSession struct {
	ID          string        `json:"id" gorm:"primaryKey"`
	CustomerID  string        `json:"customer_id" gorm:"index"`
	VehicleID   string        `json:"vehicle_id" gorm:"index"`
	ConnectorID string        `json:"connector_id" gorm:"index"`
	Status      SessionStatus `json:"status"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     *time.Time    `json:"end_time,omitempty"`
	EnergyKwh   float64       `json:"energy_kwh"`
	Cost        float64       `json:"cost"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
