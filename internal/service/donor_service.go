package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloodlink-service/internal/domain"
	"github.com/spec-kit/bloodlink-service/internal/repository"
	apperrors "github.com/spec-kit/bloodlink-service/pkg/util"
)

// DonorService covers profile management and donor lookups.
type DonorService struct {
	users repository.UserRepository
}

// NewDonorService constructs the service.
func NewDonorService(users repository.UserRepository) *DonorService {
	return &DonorService{users: users}
}

// GetProfile returns the user's own profile.
func (s *DonorService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// ProfileUpdateInput carries optional profile fields; nil means unchanged.
type ProfileUpdateInput struct {
	Name        *string
	Phone       *string
	BloodGroup  *domain.BloodGroup
	IsDonor     *bool
	IsAvailable *bool
	Address     *domain.Address
	Location    *domain.GeoPoint
}

// UpdateProfile applies partial updates to the user's own profile.
func (s *DonorService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.BloodGroup != nil {
		if !input.BloodGroup.Valid() {
			return nil, apperrors.NewValidationError("invalid blood group", nil)
		}
		user.BloodGroup = *input.BloodGroup
	}
	if input.IsDonor != nil {
		user.IsDonor = *input.IsDonor
	}
	if input.IsAvailable != nil {
		user.IsAvailable = *input.IsAvailable
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Location != nil {
		user.Location = *input.Location
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateDonorProfile stores the donor medical questionnaire and marks the
// user as a donor.
func (s *DonorService) UpdateDonorProfile(ctx context.Context, userID string, profile domain.DonorProfile) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile.LastUpdated = &now
	user.DonorProfile = &profile
	user.IsDonor = true
	if user.Role == domain.UserRoleUser {
		user.Role = domain.UserRoleDonor
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SearchDonors finds available donors, optionally narrowed by blood group
// and proximity.
func (s *DonorService) SearchDonors(ctx context.Context, filter repository.DonorFilter) ([]domain.User, error) {
	if filter.BloodGroup != nil && !filter.BloodGroup.Valid() {
		return nil, apperrors.NewValidationError("invalid blood group", nil)
	}
	if (filter.Latitude == nil) != (filter.Longitude == nil) {
		return nil, apperrors.NewValidationError("latitude and longitude must be provided together", nil)
	}
	return s.users.ListDonors(ctx, filter)
}
