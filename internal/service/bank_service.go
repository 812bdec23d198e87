package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloodlink-service/internal/domain"
	"github.com/spec-kit/bloodlink-service/internal/repository"
	apperrors "github.com/spec-kit/bloodlink-service/pkg/util"
)

// BankService covers blood-bank directory reads and inventory updates.
type BankService struct {
	banks repository.BloodBankRepository
}

// NewBankService constructs the service.
func NewBankService(banks repository.BloodBankRepository) *BankService {
	return &BankService{banks: banks}
}

// ListBanks lists active banks; the public directory shows verified ones.
func (s *BankService) ListBanks(ctx context.Context, verifiedOnly bool) ([]domain.BloodBank, error) {
	return s.banks.List(ctx, verifiedOnly)
}

// GetBank fetches a single blood bank.
func (s *BankService) GetBank(ctx context.Context, id string) (*domain.BloodBank, error) {
	bank, err := s.banks.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("blood bank", nil)
		}
		return nil, err
	}
	return bank, nil
}

// UpdateInventory replaces the acting bank's stock levels.
func (s *BankService) UpdateInventory(ctx context.Context, bankID string, inventory []domain.InventoryItem) (*domain.BloodBank, error) {
	for _, item := range inventory {
		if !item.BloodGroup.Valid() {
			return nil, apperrors.NewValidationError("invalid blood group in inventory", nil)
		}
		if item.Units < 0 {
			return nil, apperrors.NewValidationError("inventory units cannot be negative", nil)
		}
	}
	if err := s.banks.UpdateInventory(ctx, bankID, inventory); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("blood bank", nil)
		}
		return nil, err
	}
	return s.GetBank(ctx, bankID)
}
