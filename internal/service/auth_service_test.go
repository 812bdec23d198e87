package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bloodlink-service/internal/config"
	"github.com/spec-kit/bloodlink-service/internal/domain"
	"github.com/spec-kit/bloodlink-service/internal/repository"
)

type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) ListDonors(_ context.Context, _ repository.DonorFilter) ([]domain.User, error) {
	out := make([]domain.User, 0)
	for _, user := range r.byID {
		if user.IsDonor {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.byID))
	for _, user := range r.byID {
		out = append(out, *user)
	}
	return out, nil
}

type fakeBankRepo struct {
	byID      map[string]*domain.BloodBank
	byEmail   map[string]*domain.BloodBank
	byLicense map[string]*domain.BloodBank
}

func newFakeBankRepo() *fakeBankRepo {
	return &fakeBankRepo{
		byID:      map[string]*domain.BloodBank{},
		byEmail:   map[string]*domain.BloodBank{},
		byLicense: map[string]*domain.BloodBank{},
	}
}

func (r *fakeBankRepo) Create(_ context.Context, bank *domain.BloodBank) error {
	if bank.ID == "" {
		bank.ID = uuid.NewString()
	}
	clone := *bank
	r.byID[bank.ID] = &clone
	r.byEmail[bank.Email] = &clone
	r.byLicense[bank.LicenseNumber] = &clone
	return nil
}

func (r *fakeBankRepo) Update(_ context.Context, bank *domain.BloodBank) error {
	clone := *bank
	r.byID[bank.ID] = &clone
	r.byEmail[bank.Email] = &clone
	r.byLicense[bank.LicenseNumber] = &clone
	return nil
}

func (r *fakeBankRepo) GetByID(_ context.Context, id string) (*domain.BloodBank, error) {
	bank, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *bank
	return &clone, nil
}

func (r *fakeBankRepo) GetByEmail(_ context.Context, email string) (*domain.BloodBank, error) {
	bank, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *bank
	return &clone, nil
}

func (r *fakeBankRepo) GetByLicense(_ context.Context, licenseNumber string) (*domain.BloodBank, error) {
	bank, ok := r.byLicense[licenseNumber]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *bank
	return &clone, nil
}

func (r *fakeBankRepo) List(_ context.Context, verifiedOnly bool) ([]domain.BloodBank, error) {
	out := make([]domain.BloodBank, 0, len(r.byID))
	for _, bank := range r.byID {
		if verifiedOnly && !bank.IsVerified {
			continue
		}
		out = append(out, *bank)
	}
	return out, nil
}

func (r *fakeBankRepo) UpdateInventory(_ context.Context, bankID string, inventory []domain.InventoryItem) error {
	bank, ok := r.byID[bankID]
	if !ok {
		return pgx.ErrNoRows
	}
	bank.Inventory = inventory
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, *fakeBankRepo) {
	t.Helper()
	users := newFakeUserRepo()
	banks := newFakeBankRepo()
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:          "test-secret",
		AccessTokenTTLDays: 7,
		BcryptCost:         4,
	}}
	return NewAuthService(cfg, AuthDependencies{UserRepo: users, BloodBankRepo: banks}), users, banks
}

func TestRegisterAndLoginUser(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	user, token, _, err := svc.RegisterUser(context.Background(), RegisterUserInput{
		Name:       "Asha",
		Email:      "Asha@Example.com",
		Password:   "secret123",
		BloodGroup: domain.BloodGroupBPositive,
		IsDonor:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, domain.UserRoleDonor, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.SubjectID)
	assert.Equal(t, domain.ActorKindUser, claims.Kind)

	loggedIn, loginToken, _, err := svc.LoginUser(context.Background(), "asha@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, _, _, err := svc.RegisterUser(context.Background(), RegisterUserInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, _, _, err = svc.RegisterUser(context.Background(), RegisterUserInput{
		Name: "Other", Email: "ASHA@example.com", Password: "different",
	})
	assert.Equal(t, "DUPLICATE_IDENTITY", domainCode(t, err))
}

func TestLoginUserIdenticalErrorForUnknownAndWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, _, _, err := svc.RegisterUser(context.Background(), RegisterUserInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, _, _, unknownErr := svc.LoginUser(context.Background(), "nobody@example.com", "secret123")
	_, _, _, wrongErr := svc.LoginUser(context.Background(), "asha@example.com", "bad-password")

	assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, unknownErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, wrongErr))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestGoogleLoginCreatesThenLinks(t *testing.T) {
	svc, users, _ := newAuthFixture(t)

	created, _, _, err := svc.GoogleLogin(context.Background(), "g@example.com", "G User", "google-1", "http://photo")
	require.NoError(t, err)
	require.NotNil(t, created.GoogleID)
	assert.Equal(t, "google-1", *created.GoogleID)

	// Second login finds the same account instead of creating another.
	again, _, _, err := svc.GoogleLogin(context.Background(), "g@example.com", "G User", "google-1", "http://photo")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Len(t, users.byID, 1)
}

func TestRegisterBloodBank(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	bank, token, _, err := svc.RegisterBloodBank(context.Background(), RegisterBloodBankInput{
		Name:          "Central Blood Bank",
		Email:         "bank@example.com",
		Password:      "secret123",
		LicenseNumber: "LIC-001",
	})
	require.NoError(t, err)
	assert.False(t, bank.IsVerified)
	assert.Len(t, bank.Inventory, len(domain.BloodGroups))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.ActorKindBloodBank, claims.Kind)
	assert.Equal(t, bank.ID, claims.SubjectID)

	_, _, _, err = svc.RegisterBloodBank(context.Background(), RegisterBloodBankInput{
		Name: "Copy", Email: "other@example.com", Password: "secret123", LicenseNumber: "LIC-001",
	})
	assert.Equal(t, "DUPLICATE_IDENTITY", domainCode(t, err))
}

func TestUserAndBankMayShareEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, _, _, err := svc.RegisterUser(context.Background(), RegisterUserInput{
		Name: "Asha", Email: "shared@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, _, _, err = svc.RegisterBloodBank(context.Background(), RegisterBloodBankInput{
		Name: "Bank", Email: "shared@example.com", Password: "secret123", LicenseNumber: "LIC-002",
	})
	assert.NoError(t, err)
}
