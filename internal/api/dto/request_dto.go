package dto

import (
	"time"

	"github.com/spec-kit/bloodlink-service/internal/domain"
)

// CreateRequestRequest payload.
type CreateRequestRequest struct {
	PatientName   string                `json:"patientName"`
	BloodGroup    domain.BloodGroup     `json:"bloodGroup"`
	Units         int                   `json:"units"`
	Urgency       domain.RequestUrgency `json:"urgency"`
	Hospital      string                `json:"hospital"`
	ContactNumber string                `json:"contactNumber"`
	RequiredBy    *time.Time            `json:"requiredBy"`
	Description   string                `json:"description"`
}

// UpdateStatusRequest payload for PATCH /requests/:id/status.
type UpdateStatusRequest struct {
	Status domain.RequestStatus `json:"status"`
	Note   string               `json:"note"`
}

// RequestResponse is the public shape of a blood request.
type RequestResponse struct {
	ID            string                   `json:"id"`
	RequesterID   string                   `json:"requestedBy"`
	PatientName   string                   `json:"patientName"`
	BloodGroup    domain.BloodGroup        `json:"bloodGroup"`
	Units         int                      `json:"units"`
	Urgency       domain.RequestUrgency    `json:"urgency"`
	Hospital      string                   `json:"hospital"`
	ContactNumber string                   `json:"contactNumber"`
	RequiredBy    *time.Time               `json:"requiredBy,omitempty"`
	Description   string                   `json:"description,omitempty"`
	BloodBankID   *string                  `json:"bloodBank,omitempty"`
	Status        domain.RequestStatus     `json:"status"`
	BankResponse  *domain.BankResponse     `json:"bloodBankResponse,omitempty"`
	Requester     *domain.RequesterContact `json:"requester,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// NewRequestResponse maps a domain blood request.
func NewRequestResponse(request *domain.BloodRequest) RequestResponse {
	return RequestResponse{
		ID:            request.ID,
		RequesterID:   request.RequesterID,
		PatientName:   request.PatientName,
		BloodGroup:    request.BloodGroup,
		Units:         request.Units,
		Urgency:       request.Urgency,
		Hospital:      request.Hospital,
		ContactNumber: request.ContactNumber,
		RequiredBy:    request.RequiredBy,
		Description:   request.Description,
		BloodBankID:   request.BloodBankID,
		Status:        request.Status,
		BankResponse:  request.BankResponse,
		Requester:     request.Requester,
		CreatedAt:     request.CreatedAt,
		UpdatedAt:     request.UpdatedAt,
	}
}
