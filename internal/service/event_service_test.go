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
)

type fakeEventRepo struct {
	byID map[string]*domain.CommunityEvent
	// vanishOnAdd simulates the event being deleted between the existence
	// check and the participant update.
	vanishOnAdd bool
	// conflictOnAdd simulates a concurrent duplicate registration winning
	// the guarded update.
	conflictOnAdd bool
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: map[string]*domain.CommunityEvent{}}
}

func (r *fakeEventRepo) Create(_ context.Context, event *domain.CommunityEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.CreatedAt = time.Now()
	clone := *event
	r.byID[event.ID] = &clone
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.CommunityEvent, error) {
	event, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *event
	clone.Participants = append([]string(nil), event.Participants...)
	return &clone, nil
}

func (r *fakeEventRepo) List(_ context.Context) ([]domain.CommunityEvent, error) {
	out := make([]domain.CommunityEvent, 0, len(r.byID))
	for _, event := range r.byID {
		out = append(out, *event)
	}
	return out, nil
}

func (r *fakeEventRepo) AddParticipant(_ context.Context, eventID, userID string) error {
	if r.vanishOnAdd {
		delete(r.byID, eventID)
		return pgx.ErrNoRows
	}
	event, ok := r.byID[eventID]
	if !ok {
		return pgx.ErrNoRows
	}
	if r.conflictOnAdd {
		event.Participants = append(event.Participants, userID)
		return pgx.ErrNoRows
	}
	for _, id := range event.Participants {
		if id == userID {
			return pgx.ErrNoRows
		}
	}
	event.Participants = append(event.Participants, userID)
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func newEventFixture(t *testing.T) (*EventService, *fakeEventRepo) {
	t.Helper()
	repo := newFakeEventRepo()
	return NewEventService(repo), repo
}

func createEvent(t *testing.T, svc *EventService, organizerID string) *domain.CommunityEvent {
	t.Helper()
	event, err := svc.CreateEvent(context.Background(), organizerID, EventCreateInput{
		Title: "Donation Awareness Walk",
		Venue: "Riverside Park",
		Date:  time.Now().Add(72 * time.Hour),
	})
	require.NoError(t, err)
	return event
}

func TestCreateEventValidation(t *testing.T) {
	svc, _ := newEventFixture(t)

	_, err := svc.CreateEvent(context.Background(), "user-1", EventCreateInput{Date: time.Now()})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, err = svc.CreateEvent(context.Background(), "user-1", EventCreateInput{Title: "Walk"})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestRegisterForEvent(t *testing.T) {
	svc, _ := newEventFixture(t)
	event := createEvent(t, svc, "user-1")

	updated, err := svc.RegisterForEvent(context.Background(), "user-2", event.ID)
	require.NoError(t, err)
	assert.Contains(t, updated.Participants, "user-2")

	_, err = svc.RegisterForEvent(context.Background(), "user-2", event.ID)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestRegisterForEventDeletedConcurrently(t *testing.T) {
	svc, repo := newEventFixture(t)
	event := createEvent(t, svc, "user-1")

	// The pre-check sees the event, then the guarded update affects zero
	// rows because the event was deleted in between.
	repo.vanishOnAdd = true

	_, err := svc.RegisterForEvent(context.Background(), "user-2", event.ID)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestRegisterForEventConcurrentDuplicate(t *testing.T) {
	svc, repo := newEventFixture(t)
	event := createEvent(t, svc, "user-1")

	repo.conflictOnAdd = true

	_, err := svc.RegisterForEvent(context.Background(), "user-2", event.ID)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestDeleteEventOrganizerOnly(t *testing.T) {
	svc, repo := newEventFixture(t)
	event := createEvent(t, svc, "user-1")

	err := svc.DeleteEvent(context.Background(), "user-2", event.ID)
	assert.Equal(t, "FORBIDDEN_NOT_OWNER", domainCode(t, err))

	require.NoError(t, svc.DeleteEvent(context.Background(), "user-1", event.ID))
	assert.Empty(t, repo.byID)
}
