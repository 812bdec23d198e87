package domain

import "time"

// CampStatus enumerates lifecycle states for donation camps.
type CampStatus string

const (
	CampStatusUpcoming  CampStatus = "upcoming"
	CampStatusOngoing   CampStatus = "ongoing"
	CampStatusCompleted CampStatus = "completed"
	CampStatusCancelled CampStatus = "cancelled"
)

// Valid reports whether the status is a known camp state.
func (s CampStatus) Valid() bool {
	switch s {
	case CampStatusUpcoming, CampStatusOngoing, CampStatusCompleted, CampStatusCancelled:
		return true
	}
	return false
}

// BloodCamp is a donation drive organized by a blood bank.
type BloodCamp struct {
	ID             string
	BloodBankID    string
	Name           string
	Description    string
	Venue          string
	Address        Address
	Location       GeoPoint
	Date           time.Time
	StartTime      string
	EndTime        string
	TargetUnits    int
	CollectedUnits int
	Status         CampStatus
	ContactPhone   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CampRegistration links a user to a camp they signed up for.
type CampRegistration struct {
	ID           string
	CampID       string
	UserID       string
	UserName     string
	UserPhone    string
	BloodGroup   BloodGroup
	RegisteredAt time.Time
}
