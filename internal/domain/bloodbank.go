package domain

import "time"

// InventoryItem records stocked units for one blood group.
type InventoryItem struct {
	BloodGroup  BloodGroup `json:"bloodGroup"`
	Units       int        `json:"units"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

// OperatingHours describes when a bank is open.
type OperatingHours struct {
	Open  string   `json:"open"`
	Close string   `json:"close"`
	Days  []string `json:"days,omitempty"`
}

// BloodBank is a licensed blood-bank account. It is a separate identity
// table from users; email uniqueness is enforced per table only.
type BloodBank struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Phone          string
	LicenseNumber  string
	Address        Address
	Location       GeoPoint
	Inventory      []InventoryItem
	OperatingHours OperatingHours
	ContactPerson  *EmergencyContact
	IsActive       bool
	IsVerified     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
