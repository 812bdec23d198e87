package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodlink-service/internal/service"
)

const spreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler serves administrative spreadsheet exports.
type AdminHandler struct {
	exports *service.ExportService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(exportService *service.ExportService) *AdminHandler {
	return &AdminHandler{exports: exportService}
}

// ExportUsers handles GET /admin/export/users.
func (h *AdminHandler) ExportUsers(c *fiber.Ctx) error {
	content, err := h.exports.ExportUsers(c.Context())
	if err != nil {
		return err
	}
	return sendSpreadsheet(c, "users.xlsx", content)
}

// ExportRequests handles GET /admin/export/requests.
func (h *AdminHandler) ExportRequests(c *fiber.Ctx) error {
	content, err := h.exports.ExportRequests(c.Context())
	if err != nil {
		return err
	}
	return sendSpreadsheet(c, "blood-requests.xlsx", content)
}

// ExportBloodBanks handles GET /admin/export/bloodbanks.
func (h *AdminHandler) ExportBloodBanks(c *fiber.Ctx) error {
	content, err := h.exports.ExportBloodBanks(c.Context())
	if err != nil {
		return err
	}
	return sendSpreadsheet(c, "blood-banks.xlsx", content)
}

// ExportCamps handles GET /admin/export/camps.
func (h *AdminHandler) ExportCamps(c *fiber.Ctx) error {
	content, err := h.exports.ExportCamps(c.Context())
	if err != nil {
		return err
	}
	return sendSpreadsheet(c, "donation-camps.xlsx", content)
}

// ExportEvents handles GET /admin/export/events.
func (h *AdminHandler) ExportEvents(c *fiber.Ctx) error {
	content, err := h.exports.ExportEvents(c.Context())
	if err != nil {
		return err
	}
	return sendSpreadsheet(c, "community-events.xlsx", content)
}

func sendSpreadsheet(c *fiber.Ctx, filename string, content []byte) error {
	c.Set(fiber.HeaderContentType, spreadsheetContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}
