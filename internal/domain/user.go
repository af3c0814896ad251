package domain

import (
	"time"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleVendor   UserRole = "vendor"
	UserRoleCustomer UserRole = "customer"
)

// User is modelled as a tagged union: Role discriminates, and exactly one of
// the role payloads is populated for vendor/customer accounts.
type User struct {
	ID        string           `json:"id" gorm:"primaryKey"`
	Name      string           `json:"name"`
	Email     string           `json:"email" gorm:"uniqueIndex"`
	Phone     string           `json:"phone,omitempty" gorm:"index"`
	Password  string           `json:"-"` // Hashed password
	Role      UserRole         `json:"role"`
	Status    string           `json:"status"` // Active, Inactive, Blocked
	Vendor    *VendorProfile   `json:"vendor,omitempty" gorm:"foreignKey:UserID"`
	Customer  *CustomerProfile `json:"customer,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// VendorProfile carries the vendor-specific payload of a User.
type VendorProfile struct {
	ID          string `json:"id" gorm:"primaryKey"`
	UserID      string `json:"user_id" gorm:"uniqueIndex"`
	CompanyName string `json:"company_name"`
	TaxCode     string `json:"tax_code,omitempty"`
}

// CustomerProfile carries the customer-specific payload of a User.
type CustomerProfile struct {
	ID      string `json:"id" gorm:"primaryKey"`
	UserID  string `json:"user_id" gorm:"uniqueIndex"`
	Address string `json:"address,omitempty"`
}

func (u *User) IsAdmin() bool    { return u.Role == UserRoleAdmin }
func (u *User) IsVendor() bool   { return u.Role == UserRoleVendor }
func (u *User) IsCustomer() bool { return u.Role == UserRoleCustomer }
