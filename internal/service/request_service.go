package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloodlink-service/internal/domain"
	"github.com/spec-kit/bloodlink-service/internal/events"
	"github.com/spec-kit/bloodlink-service/internal/repository"
	apperrors "github.com/spec-kit/bloodlink-service/pkg/util"
)

// RequestService is the blood-request lifecycle engine. All status changes
// go through ApplyStatusChange; there is no unchecked update path.
type RequestService struct {
	requests   repository.BloodRequestRepository
	dispatcher events.Dispatcher
}

// RequestDependencies bundles repositories for the request service.
type RequestDependencies struct {
	RequestRepo repository.BloodRequestRepository
	Dispatcher  events.Dispatcher
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		dispatcher: deps.Dispatcher,
	}
}

// RequestCreateInput describes blood-request creation payload.
type RequestCreateInput struct {
	PatientName   string
	BloodGroup    domain.BloodGroup
	Units         int
	Urgency       domain.RequestUrgency
	Hospital      string
	ContactNumber string
	RequiredBy    *time.Time
	Description   string
}

// CreateRequest creates a pending blood request owned by the user.
func (s *RequestService) CreateRequest(ctx context.Context, userID string, input RequestCreateInput) (*domain.BloodRequest, error) {
	if !input.BloodGroup.Valid() {
		return nil, apperrors.NewValidationError("invalid blood group", nil)
	}
	if input.Units <= 0 {
		return nil, apperrors.NewValidationError("units must be positive", nil)
	}
	if input.Urgency == "" {
		input.Urgency = domain.UrgencyNormal
	}
	if !input.Urgency.Valid() {
		return nil, apperrors.NewValidationError("invalid urgency", nil)
	}

	request := &domain.BloodRequest{
		RequesterID:   userID,
		PatientName:   strings.TrimSpace(input.PatientName),
		BloodGroup:    input.BloodGroup,
		Units:         input.Units,
		Urgency:       input.Urgency,
		Hospital:      strings.TrimSpace(input.Hospital),
		ContactNumber: input.ContactNumber,
		RequiredBy:    input.RequiredBy,
		Description:   strings.TrimSpace(input.Description),
		Status:        domain.RequestStatusPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestCreated,
		SubjectID: request.ID,
		Actor:     events.Actor{Kind: domain.ActorKindUser, ID: userID},
		Payload: events.RequestCreatedPayload{
			BloodGroup: request.BloodGroup,
			Units:      request.Units,
			Urgency:    request.Urgency,
			Hospital:   request.Hospital,
		},
	})
	return request, nil
}

// ListRequests returns requests matching the public listing filter.
func (s *RequestService) ListRequests(ctx context.Context, filter repository.RequestFilter) ([]domain.BloodRequest, error) {
	return s.requests.ListWithFilter(ctx, filter)
}

// ListUserRequests returns the requests owned by the user, newest first.
func (s *RequestService) ListUserRequests(ctx context.Context, userID string) ([]domain.BloodRequest, error) {
	return s.requests.ListWithFilter(ctx, repository.RequestFilter{RequesterID: &userID})
}

// GetRequest fetches a single request.
func (s *RequestService) GetRequest(ctx context.Context, id string) (*domain.BloodRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("request", map[string]any{"id": id})
		}
		return nil, err
	}
	return request, nil
}

// ApplyStatusChange performs a lifecycle transition on behalf of an actor.
//
// Blood banks may move a pending request to approved or declined; any bank
// may act on any pending request, and the acting bank is recorded in the
// structured bank response. Individuals may only cancel their own pending
// requests. Every non-pending state is terminal: transition attempts on it
// fail with an invalid-transition error rather than silently overwriting.
func (s *RequestService) ApplyStatusChange(ctx context.Context, actor domain.Actor, requestID string, newStatus domain.RequestStatus, note string) (*domain.BloodRequest, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("invalid status", nil)
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("request", map[string]any{"id": requestID})
		}
		return nil, err
	}

	var bankID *string
	var response *domain.BankResponse

	switch actor.Kind {
	case domain.ActorKindBloodBank:
		if newStatus != domain.RequestStatusApproved && newStatus != domain.RequestStatusDeclined {
			return nil, apperrors.NewForbiddenTransition("blood banks can only approve or decline requests")
		}
		if request.Status != domain.RequestStatusPending {
			return nil, apperrors.NewInvalidTransition("request is no longer pending")
		}
		bankID = &actor.ID
		response = &domain.BankResponse{
			Status:      newStatus,
			RespondedAt: time.Now(),
			RespondedBy: actor.ID,
			Note:        note,
		}
	case domain.ActorKindUser:
		if request.RequesterID != actor.ID {
			return nil, apperrors.NewForbiddenNotOwner("not authorized to modify this request")
		}
		if newStatus != domain.RequestStatusCancelled {
			return nil, apperrors.NewForbiddenTransition("users can only cancel their requests")
		}
		if request.Status != domain.RequestStatusPending {
			return nil, apperrors.NewInvalidTransition("only pending requests can be cancelled")
		}
	default:
		return nil, apperrors.NewWrongActorKind("unknown actor kind")
	}

	oldStatus := request.Status
	updated, err := s.requests.TransitionFromPending(ctx, requestID, newStatus, bankID, response)
	if err != nil {
		if err == pgx.ErrNoRows {
			// A concurrent transition won the conditional update.
			return nil, apperrors.NewInvalidTransition("request is no longer pending")
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestStatusChanged,
		SubjectID: updated.ID,
		Actor:     events.Actor{Kind: actor.Kind, ID: actor.ID},
		Payload: events.RequestStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
			Note:      note,
		},
	})
	return updated, nil
}

func (s *RequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
