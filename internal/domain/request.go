package domain

import "time"

// RequestStatus enumerates lifecycle states for blood requests.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusDeclined  RequestStatus = "declined"
	RequestStatusCancelled RequestStatus = "cancelled"
	RequestStatusFulfilled RequestStatus = "fulfilled"
)

// Valid reports whether the status is a known lifecycle state.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusDeclined,
		RequestStatusCancelled, RequestStatusFulfilled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is defined from s.
func (s RequestStatus) Terminal() bool {
	return s.Valid() && s != RequestStatusPending
}

// RequestUrgency enumerates how soon the blood is needed.
type RequestUrgency string

const (
	UrgencyCritical RequestUrgency = "critical"
	UrgencyUrgent   RequestUrgency = "urgent"
	UrgencyNormal   RequestUrgency = "normal"
)

// Valid reports whether the urgency is one of the known levels.
func (u RequestUrgency) Valid() bool {
	switch u {
	case UrgencyCritical, UrgencyUrgent, UrgencyNormal:
		return true
	}
	return false
}

// BankResponse is populated once a blood bank acts on a request.
type BankResponse struct {
	Status      RequestStatus `json:"status"`
	RespondedAt time.Time     `json:"respondedAt"`
	RespondedBy string        `json:"respondedBy"`
	Note        string        `json:"note,omitempty"`
}

// RequesterContact is the joined contact snapshot of the requesting user,
// populated on listings so responders can reach the requester directly.
type RequesterContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BloodRequest is the aggregate for a single patient's need for blood.
// The requester reference is immutable after creation and is the sole
// basis for ownership checks; a responding bank gains transition rights
// but never ownership.
type BloodRequest struct {
	ID            string
	RequesterID   string
	PatientName   string
	BloodGroup    BloodGroup
	Units         int
	Urgency       RequestUrgency
	Hospital      string
	ContactNumber string
	RequiredBy    *time.Time
	Description   string
	BloodBankID   *string
	Status        RequestStatus
	BankResponse  *BankResponse
	Requester     *RequesterContact
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
