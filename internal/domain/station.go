package domain

import (
	"time"
)

type StationStatus string

const (
	StationStatusActive   StationStatus = "Active"
	StationStatusInactive StationStatus = "Inactive"
)

// Station is the top of the ownership chain: everything under it (poles,
// connectors, price rules) belongs to the station's vendor.
type Station struct {
	ID        string        `json:"id" gorm:"primaryKey"`
	VendorID  string        `json:"vendor_id" gorm:"index"`
	Name      string        `json:"name"`
	Address   string        `json:"address"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Status    StationStatus `json:"status"`
	Poles     []Pole        `json:"poles,omitempty" gorm:"foreignKey:StationID"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Pole is a physical charging stand. ConnectorCount caches the number of
// non-retired connectors and is only ever written in the same transaction
// as the connector row it accounts for.
type Pole struct {
	ID             string      `json:"id" gorm:"primaryKey"`
	StationID      string      `json:"station_id" gorm:"index"`
	Manufacturer   string      `json:"manufacturer"`
	MaxPowerKW     float64     `json:"max_power_kw"`
	ConnectorCount int         `json:"connector_count"`
	InstallDate    time.Time   `json:"install_date"`
	Connectors     []Connector `json:"connectors,omitempty" gorm:"foreignKey:PoleID"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
