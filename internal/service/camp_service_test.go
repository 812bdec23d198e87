package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bloodlink-service/internal/domain"
	"github.com/spec-kit/bloodlink-service/internal/repository"
)

type fakeCampRepo struct {
	byID          map[string]*domain.BloodCamp
	registrations map[string]map[string]bool
}

func newFakeCampRepo() *fakeCampRepo {
	return &fakeCampRepo{
		byID:          map[string]*domain.BloodCamp{},
		registrations: map[string]map[string]bool{},
	}
}

func (r *fakeCampRepo) Create(_ context.Context, camp *domain.BloodCamp) error {
	if camp.ID == "" {
		camp.ID = uuid.NewString()
	}
	camp.CreatedAt = time.Now()
	clone := *camp
	r.byID[camp.ID] = &clone
	return nil
}

func (r *fakeCampRepo) Update(_ context.Context, camp *domain.BloodCamp) error {
	if _, ok := r.byID[camp.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *camp
	r.byID[camp.ID] = &clone
	return nil
}

func (r *fakeCampRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeCampRepo) GetByID(_ context.Context, id string) (*domain.BloodCamp, error) {
	camp, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *camp
	return &clone, nil
}

func (r *fakeCampRepo) List(_ context.Context, filter repository.CampFilter) ([]domain.BloodCamp, error) {
	out := make([]domain.BloodCamp, 0, len(r.byID))
	for _, camp := range r.byID {
		if filter.BloodBankID != nil && camp.BloodBankID != *filter.BloodBankID {
			continue
		}
		if filter.Status != nil && camp.Status != *filter.Status {
			continue
		}
		out = append(out, *camp)
	}
	return out, nil
}

func (r *fakeCampRepo) Register(_ context.Context, campID, userID string) error {
	if r.registrations[campID] == nil {
		r.registrations[campID] = map[string]bool{}
	}
	r.registrations[campID][userID] = true
	return nil
}

func (r *fakeCampRepo) IsRegistered(_ context.Context, campID, userID string) (bool, error) {
	return r.registrations[campID][userID], nil
}

func (r *fakeCampRepo) ListRegistrations(_ context.Context, campID string) ([]domain.CampRegistration, error) {
	out := make([]domain.CampRegistration, 0)
	for userID := range r.registrations[campID] {
		out = append(out, domain.CampRegistration{CampID: campID, UserID: userID})
	}
	return out, nil
}

func newCampFixture(t *testing.T) (*CampService, *fakeCampRepo) {
	t.Helper()
	repo := newFakeCampRepo()
	return NewCampService(repo, &recordingDispatcher{}), repo
}

func createCamp(t *testing.T, svc *CampService, bankID string) *domain.BloodCamp {
	t.Helper()
	camp, err := svc.CreateCamp(context.Background(), bankID, CampInput{
		Name:  "Annual Drive",
		Venue: "Community Hall",
		Date:  time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	return camp
}

func TestCreateCampDefaults(t *testing.T) {
	svc, _ := newCampFixture(t)

	camp := createCamp(t, svc, "bank-1")
	assert.Equal(t, domain.CampStatusUpcoming, camp.Status)
	assert.Equal(t, "09:00", camp.StartTime)
	assert.Equal(t, "18:00", camp.EndTime)
}

func TestCreateCampRequiresNameAndVenue(t *testing.T) {
	svc, _ := newCampFixture(t)

	_, err := svc.CreateCamp(context.Background(), "bank-1", CampInput{Venue: "Hall", Date: time.Now()})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, err = svc.CreateCamp(context.Background(), "bank-1", CampInput{Name: "Drive", Venue: "Hall"})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestUpdateCampOwnershipEnforced(t *testing.T) {
	svc, _ := newCampFixture(t)
	camp := createCamp(t, svc, "bank-1")

	_, err := svc.UpdateCamp(context.Background(), "bank-2", camp.ID, CampInput{Name: "Hijacked"})
	assert.Equal(t, "FORBIDDEN_NOT_OWNER", domainCode(t, err))

	updated, err := svc.UpdateCamp(context.Background(), "bank-1", camp.ID, CampInput{Name: "Renamed Drive"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Drive", updated.Name)
}

func TestDeleteCampOwnershipEnforced(t *testing.T) {
	svc, repo := newCampFixture(t)
	camp := createCamp(t, svc, "bank-1")

	err := svc.DeleteCamp(context.Background(), "bank-2", camp.ID)
	assert.Equal(t, "FORBIDDEN_NOT_OWNER", domainCode(t, err))

	require.NoError(t, svc.DeleteCamp(context.Background(), "bank-1", camp.ID))
	assert.Empty(t, repo.byID)
}

func TestRegisterForCampRejectsDuplicates(t *testing.T) {
	svc, _ := newCampFixture(t)
	camp := createCamp(t, svc, "bank-1")

	require.NoError(t, svc.RegisterForCamp(context.Background(), "user-1", camp.ID))

	err := svc.RegisterForCamp(context.Background(), "user-1", camp.ID)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestRegisterForClosedCamp(t *testing.T) {
	svc, repo := newCampFixture(t)
	camp := createCamp(t, svc, "bank-1")

	repo.byID[camp.ID].Status = domain.CampStatusCancelled

	err := svc.RegisterForCamp(context.Background(), "user-1", camp.ID)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestRecordCollectedUnitsMarksCompleted(t *testing.T) {
	svc, repo := newCampFixture(t)
	camp := createCamp(t, svc, "bank-1")

	repo.byID[camp.ID].Date = time.Now().Add(-24 * time.Hour)

	updated, err := svc.RecordCollectedUnits(context.Background(), "bank-1", camp.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, updated.CollectedUnits)
	assert.Equal(t, domain.CampStatusCompleted, updated.Status)

	_, err = svc.RecordCollectedUnits(context.Background(), "bank-1", camp.ID, -1)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestListRegistrationsOwnerOnly(t *testing.T) {
	svc, _ := newCampFixture(t)
	camp := createCamp(t, svc, "bank-1")
	require.NoError(t, svc.RegisterForCamp(context.Background(), "user-1", camp.ID))

	_, err := svc.ListRegistrations(context.Background(), "bank-2", camp.ID)
	assert.Equal(t, "FORBIDDEN_NOT_OWNER", domainCode(t, err))

	registrations, err := svc.ListRegistrations(context.Background(), "bank-1", camp.ID)
	require.NoError(t, err)
	assert.Len(t, registrations, 1)
}
