package domain

import (
	"time"
)

type Vehicle struct {
	ID                 string    `json:"id" gorm:"primaryKey"`
	CustomerID         string    `json:"customer_id" gorm:"index"`
	Plate              string    `json:"plate" gorm:"uniqueIndex"`
	Brand              string    `json:"brand"`
	Model              string    `json:"model"`
	BatteryCapacityKwh float64   `json:"battery_capacity_kwh"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
