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

// CampService coordinates donation-camp workflows. Camps are owned by the
// organizing blood bank; only the owner may mutate them.
type CampService struct {
	camps      repository.CampRepository
	dispatcher events.Dispatcher
}

// NewCampService constructs the service.
func NewCampService(camps repository.CampRepository, dispatcher events.Dispatcher) *CampService {
	return &CampService{camps: camps, dispatcher: dispatcher}
}

// CampInput describes camp creation/update payload.
type CampInput struct {
	Name         string
	Description  string
	Venue        string
	Address      domain.Address
	Location     domain.GeoPoint
	Date         time.Time
	StartTime    string
	EndTime      string
	TargetUnits  int
	ContactPhone string
}

// CreateCamp creates an upcoming camp for the acting bank.
func (s *CampService) CreateCamp(ctx context.Context, bankID string, input CampInput) (*domain.BloodCamp, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Venue) == "" {
		return nil, apperrors.NewValidationError("name and venue required", nil)
	}
	if input.Date.IsZero() {
		return nil, apperrors.NewValidationError("camp date required", nil)
	}

	camp := &domain.BloodCamp{
		BloodBankID:  bankID,
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		Venue:        strings.TrimSpace(input.Venue),
		Address:      input.Address,
		Location:     input.Location,
		Date:         input.Date,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		TargetUnits:  input.TargetUnits,
		Status:       domain.CampStatusUpcoming,
		ContactPhone: input.ContactPhone,
	}
	if camp.StartTime == "" {
		camp.StartTime = "09:00"
	}
	if camp.EndTime == "" {
		camp.EndTime = "18:00"
	}
	if err := s.camps.Create(ctx, camp); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventCampCreated,
		SubjectID: camp.ID,
		Actor:     events.Actor{Kind: domain.ActorKindBloodBank, ID: bankID},
	})
	return camp, nil
}

// UpdateCamp applies changes to a camp owned by the acting bank.
func (s *CampService) UpdateCamp(ctx context.Context, bankID, campID string, input CampInput) (*domain.BloodCamp, error) {
	camp, err := s.getOwnedCamp(ctx, bankID, campID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) != "" {
		camp.Name = strings.TrimSpace(input.Name)
	}
	if input.Description != "" {
		camp.Description = input.Description
	}
	if strings.TrimSpace(input.Venue) != "" {
		camp.Venue = strings.TrimSpace(input.Venue)
	}
	if !input.Date.IsZero() {
		camp.Date = input.Date
	}
	if input.StartTime != "" {
		camp.StartTime = input.StartTime
	}
	if input.EndTime != "" {
		camp.EndTime = input.EndTime
	}
	if input.TargetUnits > 0 {
		camp.TargetUnits = input.TargetUnits
	}
	if input.ContactPhone != "" {
		camp.ContactPhone = input.ContactPhone
	}
	camp.Address = input.Address
	camp.Location = input.Location

	if err := s.camps.Update(ctx, camp); err != nil {
		return nil, err
	}
	return camp, nil
}

// DeleteCamp removes a camp owned by the acting bank.
func (s *CampService) DeleteCamp(ctx context.Context, bankID, campID string) error {
	if _, err := s.getOwnedCamp(ctx, bankID, campID); err != nil {
		return err
	}
	return s.camps.Delete(ctx, campID)
}

// ListCamps returns camps matching the filter.
func (s *CampService) ListCamps(ctx context.Context, filter repository.CampFilter) ([]domain.BloodCamp, error) {
	return s.camps.List(ctx, filter)
}

// ListBankCamps returns the camps organized by the acting bank.
func (s *CampService) ListBankCamps(ctx context.Context, bankID string) ([]domain.BloodCamp, error) {
	return s.camps.List(ctx, repository.CampFilter{BloodBankID: &bankID})
}

// GetCamp fetches a single camp.
func (s *CampService) GetCamp(ctx context.Context, id string) (*domain.BloodCamp, error) {
	camp, err := s.camps.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("camp", nil)
		}
		return nil, err
	}
	return camp, nil
}

// RegisterForCamp signs the user up for a camp. Duplicate registrations
// are rejected.
func (s *CampService) RegisterForCamp(ctx context.Context, userID, campID string) error {
	camp, err := s.GetCamp(ctx, campID)
	if err != nil {
		return err
	}
	if camp.Status == domain.CampStatusCompleted || camp.Status == domain.CampStatusCancelled {
		return apperrors.NewValidationError("camp is not open for registration", nil)
	}

	registered, err := s.camps.IsRegistered(ctx, campID, userID)
	if err != nil {
		return err
	}
	if registered {
		return apperrors.NewValidationError("already registered for this camp", nil)
	}
	if err := s.camps.Register(ctx, campID, userID); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventCampRegistration,
		SubjectID: campID,
		Actor:     events.Actor{Kind: domain.ActorKindUser, ID: userID},
		Payload:   events.CampRegistrationPayload{CampID: campID, UserID: userID},
	})
	return nil
}

// RecordCollectedUnits updates collected units on a camp owned by the
// acting bank and marks it completed when the camp date has passed.
func (s *CampService) RecordCollectedUnits(ctx context.Context, bankID, campID string, units int) (*domain.BloodCamp, error) {
	if units < 0 {
		return nil, apperrors.NewValidationError("collected units cannot be negative", nil)
	}
	camp, err := s.getOwnedCamp(ctx, bankID, campID)
	if err != nil {
		return nil, err
	}
	camp.CollectedUnits = units
	if time.Now().After(camp.Date) {
		camp.Status = domain.CampStatusCompleted
	}
	if err := s.camps.Update(ctx, camp); err != nil {
		return nil, err
	}
	return camp, nil
}

// ListRegistrations returns registrations for a camp owned by the bank.
func (s *CampService) ListRegistrations(ctx context.Context, bankID, campID string) ([]domain.CampRegistration, error) {
	if _, err := s.getOwnedCamp(ctx, bankID, campID); err != nil {
		return nil, err
	}
	return s.camps.ListRegistrations(ctx, campID)
}

func (s *CampService) getOwnedCamp(ctx context.Context, bankID, campID string) (*domain.BloodCamp, error) {
	camp, err := s.GetCamp(ctx, campID)
	if err != nil {
		return nil, err
	}
	if camp.BloodBankID != bankID {
		return nil, apperrors.NewForbiddenNotOwner("not authorized to manage this camp")
	}
	return camp, nil
}

func (s *CampService) publish(ctx context.Context, event events.Event) {
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
