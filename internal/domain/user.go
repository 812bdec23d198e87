package domain

import "time"

// UserRole enumerates individual account roles.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleDonor UserRole = "donor"
	UserRoleAdmin UserRole = "admin"
)

// Address is a free-form postal address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// GeoPoint holds a longitude/latitude pair.
type GeoPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// DonorProfile captures the medical questionnaire filled in when a user
// signs up as a donor.
type DonorProfile struct {
	Weight           float64           `json:"weight"`
	Height           float64           `json:"height"`
	DateOfBirth      *time.Time        `json:"dateOfBirth,omitempty"`
	Gender           string            `json:"gender"`
	LastDonationDate *time.Time        `json:"lastDonationDate,omitempty"`
	DonationCount    int               `json:"donationCount"`
	BloodPressure    string            `json:"bloodPressure"`
	HemoglobinLevel  float64           `json:"hemoglobinLevel"`
	Diseases         map[string]bool   `json:"diseases,omitempty"`
	RecentConditions map[string]bool   `json:"recentConditions,omitempty"`
	Lifestyle        map[string]string `json:"lifestyle,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
	Consent          bool              `json:"consent"`
	IsEligible       bool              `json:"isEligible"`
	LastUpdated      *time.Time        `json:"lastUpdated,omitempty"`
}

// EmergencyContact is the donor's emergency contact person.
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// User is an individual account: a patient, donor or administrator.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	BloodGroup   BloodGroup
	GoogleID     *string
	PhotoURL     string
	Role         UserRole
	IsDonor      bool
	IsAvailable  bool
	Address      Address
	Location     GeoPoint
	DonorProfile *DonorProfile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
