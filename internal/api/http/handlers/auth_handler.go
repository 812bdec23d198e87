package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodlink-service/internal/api/dto"
	"github.com/spec-kit/bloodlink-service/internal/service"
	apperrors "github.com/spec-kit/bloodlink-service/pkg/util"
)

// AuthHandler exposes registration and login endpoints for both identity
// kinds.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}
	if len(req.Password) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	if !strings.Contains(req.Email, "@") {
		return apperrors.NewValidationError("invalid email", nil)
	}
	if req.BloodGroup != "" && !req.BloodGroup.Valid() {
		return apperrors.NewValidationError("invalid blood group", nil)
	}

	user, token, exp, err := h.auth.RegisterUser(c.Context(), service.RegisterUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		BloodGroup: req.BloodGroup,
		IsDonor:    req.IsDonor,
		Address:    req.Address,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.LoginUser(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// GoogleLogin handles POST /auth/google.
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Name == "" || req.GoogleID == "" {
		return apperrors.NewValidationError("missing required Google user data", nil)
	}

	user, token, exp, err := h.auth.GoogleLogin(c.Context(), req.Email, req.Name, req.GoogleID, req.PhotoURL)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// RegisterBloodBank handles POST /auth/bloodbank/register.
func (h *AuthHandler) RegisterBloodBank(c *fiber.Ctx) error {
	var req dto.BloodBankRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.LicenseNumber == "" {
		return apperrors.NewValidationError("name, email, password, licenseNumber required", nil)
	}
	if len(req.Password) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}

	bank, token, exp, err := h.auth.RegisterBloodBank(c.Context(), service.RegisterBloodBankInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		Address:       req.Address,
		Location:      req.Location,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"bloodBank": dto.NewBloodBankResponse(bank),
			"auth":      dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// LoginBloodBank handles POST /auth/bloodbank/login.
func (h *AuthHandler) LoginBloodBank(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	bank, token, exp, err := h.auth.LoginBloodBank(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"bloodBank": dto.NewBloodBankResponse(bank),
			"auth":      dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
