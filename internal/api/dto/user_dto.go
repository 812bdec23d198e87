package dto

import (
	"time"

	"github.com/spec-kit/bloodlink-service/internal/domain"
)

// UserResponse is the public shape of an individual account. The password
// hash is never serialized.
type UserResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	BloodGroup   domain.BloodGroup    `json:"bloodGroup"`
	PhotoURL     string               `json:"photoURL,omitempty"`
	Role         domain.UserRole      `json:"role"`
	IsDonor      bool                 `json:"isDonor"`
	IsAvailable  bool                 `json:"isAvailable"`
	Address      domain.Address       `json:"address"`
	DonorProfile *domain.DonorProfile `json:"donorInfo,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		BloodGroup:   user.BloodGroup,
		PhotoURL:     user.PhotoURL,
		Role:         user.Role,
		IsDonor:      user.IsDonor,
		IsAvailable:  user.IsAvailable,
		Address:      user.Address,
		DonorProfile: user.DonorProfile,
		CreatedAt:    user.CreatedAt,
	}
}

// UpdateProfileRequest carries partial profile updates.
type UpdateProfileRequest struct {
	Name        *string            `json:"name"`
	Phone       *string            `json:"phone"`
	BloodGroup  *domain.BloodGroup `json:"bloodGroup"`
	IsDonor     *bool              `json:"isDonor"`
	IsAvailable *bool              `json:"isAvailable"`
	Address     *domain.Address    `json:"address"`
	Location    *domain.GeoPoint   `json:"location"`
}

// DonorResponse is the donor-search shape: contact info plus distance-free
// profile data.
type DonorResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Phone      string            `json:"phone"`
	BloodGroup domain.BloodGroup `json:"bloodGroup"`
	Address    domain.Address    `json:"address"`
	Location   domain.GeoPoint   `json:"location"`
}

// NewDonorResponse maps a domain user for donor listings.
func NewDonorResponse(user *domain.User) DonorResponse {
	return DonorResponse{
		ID:         user.ID,
		Name:       user.Name,
		Phone:      user.Phone,
		BloodGroup: user.BloodGroup,
		Address:    user.Address,
		Location:   user.Location,
	}
}
