package domain

import (
	"time"
)

type ConnectorType string

const (
	ConnectorTypeCCS     ConnectorType = "CCS"
	ConnectorTypeCHAdeMO ConnectorType = "CHAdeMO"
	ConnectorTypeType2   ConnectorType = "Type2"
	ConnectorTypeAC      ConnectorType = "AC"
)

type ConnectorStatus string

const (
	ConnectorStatusAvailable    ConnectorStatus = "AVAILABLE"
	ConnectorStatusInUse        ConnectorStatus = "IN_USE"
	ConnectorStatusOutOfService ConnectorStatus = "OUT_OF_SERVICE"
)

// Connector is a single physical outlet on a pole. Its MaxPowerKW never
// exceeds the parent pole's MaxPowerKW.
type Connector struct {
	ID         string          `json:"id" gorm:"primaryKey"`
	PoleID     string          `json:"pole_id" gorm:"index"`
	Type       ConnectorType   `json:"type"`
	Status     ConnectorStatus `json:"status"`
	MaxPowerKW float64         `json:"max_power_kw"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Retired reports whether the connector has been soft-deleted. Retired
// connectors keep their session history but no longer count against the
// pole's capacity and never appear as available.
func (c *Connector) Retired() bool {
	return c.Status == ConnectorStatusOutOfService
}
