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

// RequestsHandler manages blood-request endpoints.
type RequestsHandler struct {
	requests *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{requests: requestService}
}

// List handles GET /requests (public).
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	filter := repository.RequestFilter{}
	if status := c.Query("status"); status != "" {
		parsed := domain.RequestStatus(status)
		if !parsed.Valid() {
			return apperrors.NewValidationError("invalid status", nil)
		}
		filter.Status = &parsed
	}
	if bg := c.Query("bloodGroup"); bg != "" {
		group := domain.BloodGroup(bg)
		if !group.Valid() {
			return apperrors.NewValidationError("invalid blood group", nil)
		}
		filter.BloodGroup = &group
	}

	requests, err := h.requests.ListRequests(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponses(requests)})
}

// ListMine handles GET /requests/my-requests.
func (h *RequestsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewWrongActorKind("not authorized as user")
	}
	requests, err := h.requests.ListUserRequests(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponses(requests)})
}

// Create handles POST /requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewWrongActorKind("not authorized as user")
	}
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PatientName == "" || req.Hospital == "" || req.ContactNumber == "" {
		return apperrors.NewValidationError("patientName, hospital, contactNumber required", nil)
	}

	request, err := h.requests.CreateRequest(c.Context(), principal.User.ID, service.RequestCreateInput{
		PatientName:   req.PatientName,
		BloodGroup:    req.BloodGroup,
		Units:         req.Units,
		Urgency:       req.Urgency,
		Hospital:      req.Hospital,
		ContactNumber: req.ContactNumber,
		RequiredBy:    req.RequiredBy,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewRequestResponse(request)})
}

// UpdateStatus handles PATCH /requests/:id/status for both actor kinds.
// The actor is taken from the gate-decided principal, never re-derived
// from the token here.
func (h *RequestsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no authentication token, access denied")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	updated, err := h.requests.ApplyStatusChange(c.Context(), principal.Actor(), c.Params("id"), req.Status, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(updated)})
}

func requestResponses(requests []domain.BloodRequest) []dto.RequestResponse {
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, dto.NewRequestResponse(&requests[i]))
	}
	return items
}
