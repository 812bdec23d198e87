package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodlink-service/internal/api/dto"
	"github.com/spec-kit/bloodlink-service/internal/auth"
	"github.com/spec-kit/bloodlink-service/internal/domain"
	"github.com/spec-kit/bloodlink-service/internal/repository"
	"github.com/spec-kit/bloodlink-service/internal/service"
	apperrors "github.com/spec-kit/bloodlink-service/pkg/util"
)

// CampsHandler manages donation-camp endpoints.
type CampsHandler struct {
	camps   *service.CampService
	exports *service.ExportService
}

// NewCampsHandler constructs handler.
func NewCampsHandler(campService *service.CampService, exportService *service.ExportService) *CampsHandler {
	return &CampsHandler{camps: campService, exports: exportService}
}

// List handles GET /camps (public).
func (h *CampsHandler) List(c *fiber.Ctx) error {
	filter := repository.CampFilter{}
	if status := c.Query("status"); status != "" {
		parsed := domain.CampStatus(status)
		if !parsed.Valid() {
			return apperrors.NewValidationError("invalid status", nil)
		}
		filter.Status = &parsed
	}
	if c.Query("upcoming") == "true" {
		filter.UpcomingOnly = true
	}

	camps, err := h.camps.ListCamps(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": campResponses(camps)})
}

// Get handles GET /camps/:id.
func (h *CampsHandler) Get(c *fiber.Ctx) error {
	camp, err := h.camps.GetCamp(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCampResponse(camp)})
}

// Create handles POST /camps for the acting bank.
func (h *CampsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Bank == nil {
		return apperrors.NewWrongActorKind("not authorized as blood bank")
	}
	var req dto.CampRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	camp, err := h.camps.CreateCamp(c.Context(), principal.Bank.ID, campInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCampResponse(camp)})
}

// Update handles PUT /camps/:id for the owning bank.
func (h *CampsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Bank == nil {
		return apperrors.NewWrongActorKind("not authorized as blood bank")
	}
	var req dto.CampRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	camp, err := h.camps.UpdateCamp(c.Context(), principal.Bank.ID, c.Params("id"), campInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCampResponse(camp)})
}

// Delete handles DELETE /camps/:id for the owning bank.
func (h *CampsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Bank == nil {
		return apperrors.NewWrongActorKind("not authorized as blood bank")
	}
	if err := h.camps.DeleteCamp(c.Context(), principal.Bank.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListMine handles GET /camps/my-camps for the acting bank.
func (h *CampsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Bank == nil {
		return apperrors.NewWrongActorKind("not authorized as blood bank")
	}
	camps, err := h.camps.ListBankCamps(c.Context(), principal.Bank.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": campResponses(camps)})
}

// Register handles POST /camps/:id/register for users.
func (h *CampsHandler) Register(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewWrongActorKind("not authorized as user")
	}
	if err := h.camps.RegisterForCamp(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"registered": true}})
}

// RecordCollected handles PATCH /camps/:id/collected for the owning bank.
func (h *CampsHandler) RecordCollected(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Bank == nil {
		return apperrors.NewWrongActorKind("not authorized as blood bank")
	}
	var req dto.CollectedUnitsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	camp, err := h.camps.RecordCollectedUnits(c.Context(), principal.Bank.ID, c.Params("id"), req.CollectedUnits)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCampResponse(camp)})
}

// ListRegistrations handles GET /camps/:id/registrations for the owning bank.
func (h *CampsHandler) ListRegistrations(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Bank == nil {
		return apperrors.NewWrongActorKind("not authorized as blood bank")
	}
	registrations, err := h.camps.ListRegistrations(c.Context(), principal.Bank.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": registrations})
}

// ExportRegistrations handles GET /camps/:id/registrations/export,
// streaming the sign-up list as a spreadsheet to the owning bank.
func (h *CampsHandler) ExportRegistrations(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Bank == nil {
		return apperrors.NewWrongActorKind("not authorized as blood bank")
	}
	registrations, err := h.camps.ListRegistrations(c.Context(), principal.Bank.ID, c.Params("id"))
	if err != nil {
		return err
	}
	content, err := h.exports.ExportCampRegistrations(c.Context(), registrations)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, spreadsheetContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="camp-registrations.xlsx"`)
	return c.Send(content)
}

func campInput(req dto.CampRequest) service.CampInput {
	return service.CampInput{
		Name:         req.Name,
		Description:  req.Description,
		Venue:        req.Venue,
		Address:      req.Address,
		Location:     req.Location,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		TargetUnits:  req.TargetUnits,
		ContactPhone: req.ContactPhone,
	}
}

func campResponses(camps []domain.BloodCamp) []dto.CampResponse {
	items := make([]dto.CampResponse, 0, len(camps))
	for i := range camps {
		items = append(items, dto.NewCampResponse(&camps[i]))
	}
	return items
}
