package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloodlink-service/internal/domain"
	"github.com/spec-kit/bloodlink-service/internal/repository"
	apperrors "github.com/spec-kit/bloodlink-service/pkg/util"
)

// EventService coordinates community awareness events.
type EventService struct {
	eventsRepo repository.EventRepository
}

// NewEventService constructs the service.
func NewEventService(eventsRepo repository.EventRepository) *EventService {
	return &EventService{eventsRepo: eventsRepo}
}

// EventCreateInput describes community-event creation payload.
type EventCreateInput struct {
	Title       string
	Description string
	Venue       string
	Date        time.Time
}

// CreateEvent creates an event organized by the user.
func (s *EventService) CreateEvent(ctx context.Context, organizerID string, input EventCreateInput) (*domain.CommunityEvent, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.Date.IsZero() {
		return nil, apperrors.NewValidationError("event date required", nil)
	}

	event := &domain.CommunityEvent{
		OrganizerID: organizerID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Venue:       input.Venue,
		Date:        input.Date,
	}
	if err := s.eventsRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents returns all events, soonest first.
func (s *EventService) ListEvents(ctx context.Context) ([]domain.CommunityEvent, error) {
	return s.eventsRepo.List(ctx)
}

// RegisterForEvent adds the user to the event's participants. Duplicate
// registrations are rejected.
func (s *EventService) RegisterForEvent(ctx context.Context, userID, eventID string) (*domain.CommunityEvent, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Registered(userID) {
		return nil, apperrors.NewValidationError("already registered for this event", nil)
	}
	if err := s.eventsRepo.AddParticipant(ctx, eventID, userID); err != nil {
		if err == pgx.ErrNoRows {
			// Zero rows covers both a concurrent duplicate registration and
			// a concurrently deleted event; re-read to tell them apart.
			if _, getErr := s.getEvent(ctx, eventID); getErr != nil {
				return nil, getErr
			}
			return nil, apperrors.NewValidationError("already registered for this event", nil)
		}
		return nil, err
	}
	return s.getEvent(ctx, eventID)
}

// DeleteEvent removes an event; only the organizer may do so.
func (s *EventService) DeleteEvent(ctx context.Context, userID, eventID string) error {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != userID {
		return apperrors.NewForbiddenNotOwner("not authorized to delete this event")
	}
	return s.eventsRepo.Delete(ctx, eventID)
}

func (s *EventService) getEvent(ctx context.Context, eventID string) (*domain.CommunityEvent, error) {
	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("event", nil)
		}
		return nil, err
	}
	return event, nil
}
