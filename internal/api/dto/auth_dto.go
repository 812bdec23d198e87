package dto

import (
	"time"

	"github.com/spec-kit/bloodlink-service/internal/domain"
)

// RegisterRequest payload for new individual accounts.
type RegisterRequest struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Password   string            `json:"password"`
	Phone      string            `json:"phone"`
	BloodGroup domain.BloodGroup `json:"bloodGroup"`
	IsDonor    bool              `json:"isDonor"`
	Address    domain.Address    `json:"address"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleLoginRequest payload for federated login.
type GoogleLoginRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	GoogleID string `json:"googleId"`
	PhotoURL string `json:"photoURL"`
}

// BloodBankRegisterRequest payload for new blood-bank accounts.
type BloodBankRegisterRequest struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Password      string          `json:"password"`
	Phone         string          `json:"phone"`
	LicenseNumber string          `json:"licenseNumber"`
	Address       domain.Address  `json:"address"`
	Location      domain.GeoPoint `json:"location"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
