package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloodlink-service/internal/auth"
	"github.com/spec-kit/bloodlink-service/internal/config"
	"github.com/spec-kit/bloodlink-service/internal/domain"
	"github.com/spec-kit/bloodlink-service/internal/repository"
	apperrors "github.com/spec-kit/bloodlink-service/pkg/util"
)

// AuthService coordinates registration, login and token issuance for both
// identity kinds. Email uniqueness is enforced per table: an individual and
// a blood bank may share an email.
type AuthService struct {
	users      repository.UserRepository
	banks      repository.BloodBankRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo      repository.UserRepository
	BloodBankRepo repository.BloodBankRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		banks:      deps.BloodBankRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLDays),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterUserInput is the payload for individual registration.
type RegisterUserInput struct {
	Name       string
	Email      string
	Password   string
	Phone      string
	BloodGroup domain.BloodGroup
	IsDonor    bool
	Address    domain.Address
}

// RegisterUser creates a new individual account and issues a token.
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, string, time.Time, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewDuplicateIdentity("user already exists")
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        input.Phone,
		BloodGroup:   input.BloodGroup,
		Role:         domain.UserRoleUser,
		IsDonor:      input.IsDonor,
		IsAvailable:  true,
		Address:      input.Address,
	}
	if user.IsDonor {
		user.Role = domain.UserRoleDonor
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, domain.ActorKindUser, &user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// LoginUser authenticates an individual. Unknown email and wrong password
// yield the identical error.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, domain.ActorKindUser, &user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// GoogleLogin finds or creates an individual from externally verified
// Google profile data. New accounts get a random internal password hash so
// they stay login-capable only after a reset.
func (s *AuthService) GoogleLogin(ctx context.Context, email, name, googleID, photoURL string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == pgx.ErrNoRows:
		hash, hashErr := auth.HashPassword(uuid.NewString(), s.bcryptCost)
		if hashErr != nil {
			return nil, "", time.Time{}, hashErr
		}
		user = &domain.User{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			GoogleID:     &googleID,
			PhotoURL:     photoURL,
			BloodGroup:   domain.BloodGroupOPositive,
			Role:         domain.UserRoleUser,
			IsAvailable:  true,
		}
		if createErr := s.users.Create(ctx, user); createErr != nil {
			return nil, "", time.Time{}, createErr
		}
	case err != nil:
		return nil, "", time.Time{}, err
	default:
		if user.GoogleID == nil {
			user.GoogleID = &googleID
			user.PhotoURL = photoURL
			if updateErr := s.users.Update(ctx, user); updateErr != nil {
				return nil, "", time.Time{}, updateErr
			}
		}
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, domain.ActorKindUser, &user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// RegisterBloodBankInput is the payload for blood-bank registration.
type RegisterBloodBankInput struct {
	Name          string
	Email         string
	Password      string
	Phone         string
	LicenseNumber string
	Address       domain.Address
	Location      domain.GeoPoint
}

// RegisterBloodBank creates a new unverified blood-bank account.
func (s *AuthService) RegisterBloodBank(ctx context.Context, input RegisterBloodBankInput) (*domain.BloodBank, string, time.Time, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.banks.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewDuplicateIdentity("blood bank already exists")
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}
	if _, err := s.banks.GetByLicense(ctx, input.LicenseNumber); err == nil {
		return nil, "", time.Time{}, apperrors.NewDuplicateIdentity("license number already registered")
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	bank := &domain.BloodBank{
		Name:          strings.TrimSpace(input.Name),
		Email:         email,
		PasswordHash:  hash,
		Phone:         input.Phone,
		LicenseNumber: input.LicenseNumber,
		Address:       input.Address,
		Location:      input.Location,
		Inventory:     emptyInventory(),
		IsActive:      true,
	}
	if err := s.banks.Create(ctx, bank); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(bank.ID, bank.Email, domain.ActorKindBloodBank, nil)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return bank, token, exp, nil
}

// LoginBloodBank authenticates a blood-bank account.
func (s *AuthService) LoginBloodBank(ctx context.Context, email, password string) (*domain.BloodBank, string, time.Time, error) {
	bank, err := s.banks.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(bank.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	token, exp, err := s.tokenMgr.GenerateToken(bank.ID, bank.Email, domain.ActorKindBloodBank, nil)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return bank, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func emptyInventory() []domain.InventoryItem {
	now := time.Now()
	items := make([]domain.InventoryItem, 0, len(domain.BloodGroups))
	for _, bg := range domain.BloodGroups {
		items = append(items, domain.InventoryItem{BloodGroup: bg, Units: 0, LastUpdated: now})
	}
	return items
}
