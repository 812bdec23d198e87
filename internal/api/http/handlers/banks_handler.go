package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodlink-service/internal/api/dto"
	"github.com/spec-kit/bloodlink-service/internal/auth"
	"github.com/spec-kit/bloodlink-service/internal/service"
	apperrors "github.com/spec-kit/bloodlink-service/pkg/util"
)

// BanksHandler exposes the blood-bank directory and inventory endpoints.
type BanksHandler struct {
	banks *service.BankService
}

// NewBanksHandler constructs handler.
func NewBanksHandler(bankService *service.BankService) *BanksHandler {
	return &BanksHandler{banks: bankService}
}

// List handles GET /bloodbanks (public, verified banks only).
func (h *BanksHandler) List(c *fiber.Ctx) error {
	banks, err := h.banks.ListBanks(c.Context(), true)
	if err != nil {
		return err
	}
	items := make([]dto.BloodBankResponse, 0, len(banks))
	for i := range banks {
		items = append(items, dto.NewBloodBankResponse(&banks[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /bloodbanks/:id.
func (h *BanksHandler) Get(c *fiber.Ctx) error {
	bank, err := h.banks.GetBank(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBloodBankResponse(bank)})
}

// UpdateInventory handles PUT /bloodbanks/inventory for the acting bank.
func (h *BanksHandler) UpdateInventory(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Bank == nil {
		return apperrors.NewWrongActorKind("not authorized as blood bank")
	}
	var req dto.UpdateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	bank, err := h.banks.UpdateInventory(c.Context(), principal.Bank.ID, req.Inventory)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBloodBankResponse(bank)})
}
