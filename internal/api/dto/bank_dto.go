package dto

import (
	"time"

	"github.com/spec-kit/bloodlink-service/internal/domain"
)

// BloodBankResponse is the public shape of a blood bank. The password hash
// is never serialized.
type BloodBankResponse struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Email          string                 `json:"email"`
	Phone          string                 `json:"phone"`
	LicenseNumber  string                 `json:"licenseNumber"`
	Address        domain.Address         `json:"address"`
	Location       domain.GeoPoint        `json:"location"`
	Inventory      []domain.InventoryItem `json:"inventory"`
	OperatingHours domain.OperatingHours  `json:"operatingHours"`
	IsVerified     bool                   `json:"isVerified"`
	CreatedAt      time.Time              `json:"created_at"`
}

// NewBloodBankResponse maps a domain blood bank.
func NewBloodBankResponse(bank *domain.BloodBank) BloodBankResponse {
	return BloodBankResponse{
		ID:             bank.ID,
		Name:           bank.Name,
		Email:          bank.Email,
		Phone:          bank.Phone,
		LicenseNumber:  bank.LicenseNumber,
		Address:        bank.Address,
		Location:       bank.Location,
		Inventory:      bank.Inventory,
		OperatingHours: bank.OperatingHours,
		IsVerified:     bank.IsVerified,
		CreatedAt:      bank.CreatedAt,
	}
}

// UpdateInventoryRequest payload.
type UpdateInventoryRequest struct {
	Inventory []domain.InventoryItem `json:"inventory"`
}
