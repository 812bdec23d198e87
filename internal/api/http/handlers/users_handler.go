package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodlink-service/internal/api/dto"
	"github.com/spec-kit/bloodlink-service/internal/auth"
	"github.com/spec-kit/bloodlink-service/internal/domain"
	"github.com/spec-kit/bloodlink-service/internal/repository"
	"github.com/spec-kit/bloodlink-service/internal/service"
	apperrors "github.com/spec-kit/bloodlink-service/pkg/util"
)

// UsersHandler exposes profile and donor-search endpoints.
type UsersHandler struct {
	donors *service.DonorService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(donorService *service.DonorService) *UsersHandler {
	return &UsersHandler{donors: donorService}
}

// GetProfile handles GET /users/profile.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewWrongActorKind("not authorized as user")
	}
	user, err := h.donors.GetProfile(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdateProfile handles PUT /users/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewWrongActorKind("not authorized as user")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.donors.UpdateProfile(c.Context(), principal.User.ID, service.ProfileUpdateInput{
		Name:        req.Name,
		Phone:       req.Phone,
		BloodGroup:  req.BloodGroup,
		IsDonor:     req.IsDonor,
		IsAvailable: req.IsAvailable,
		Address:     req.Address,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdateDonorInfo handles PUT /users/donor-info.
func (h *UsersHandler) UpdateDonorInfo(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewWrongActorKind("not authorized as user")
	}
	var profile domain.DonorProfile
	if err := c.BodyParser(&profile); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.donors.UpdateDonorProfile(c.Context(), principal.User.ID, profile)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// SearchDonors handles GET /users/donors.
func (h *UsersHandler) SearchDonors(c *fiber.Ctx) error {
	filter := repository.DonorFilter{}

	if bg := c.Query("bloodGroup"); bg != "" {
		group := domain.BloodGroup(bg)
		filter.BloodGroup = &group
	}
	if lat := c.Query("latitude"); lat != "" {
		parsed, err := strconv.ParseFloat(lat, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid latitude", nil)
		}
		filter.Latitude = &parsed
	}
	if lng := c.Query("longitude"); lng != "" {
		parsed, err := strconv.ParseFloat(lng, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid longitude", nil)
		}
		filter.Longitude = &parsed
	}
	if dist := c.Query("maxDistance"); dist != "" {
		parsed, err := strconv.Atoi(dist)
		if err != nil || parsed <= 0 {
			return apperrors.NewValidationError("invalid maxDistance", nil)
		}
		filter.MaxDistanceMeters = parsed
	}

	donors, err := h.donors.SearchDonors(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.DonorResponse, 0, len(donors))
	for i := range donors {
		items = append(items, dto.NewDonorResponse(&donors[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
