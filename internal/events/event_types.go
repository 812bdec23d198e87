package events

import (
	"time"

	"github.com/spec-kit/bloodlink-service/internal/domain"
)

// EventType identifies a domain event.
type EventType string

const (
	EventRequestCreated       EventType = "request.created"
	EventRequestStatusChanged EventType = "request.status_changed"
	EventCampCreated          EventType = "camp.created"
	EventCampRegistration     EventType = "camp.registration"
)

// Actor identifies who triggered the event.
type Actor struct {
	Kind domain.ActorKind
	ID   string
}

// Event is the envelope published on the dispatcher.
type Event struct {
	ID        string
	Type      EventType
	SubjectID string
	Actor     Actor
	Payload   any
	Timestamp time.Time
}

// RequestCreatedPayload accompanies EventRequestCreated.
type RequestCreatedPayload struct {
	BloodGroup domain.BloodGroup
	Units      int
	Urgency    domain.RequestUrgency
	Hospital   string
}

// RequestStatusChangedPayload accompanies EventRequestStatusChanged.
type RequestStatusChangedPayload struct {
	OldStatus domain.RequestStatus
	NewStatus domain.RequestStatus
	Note      string
}

// CampRegistrationPayload accompanies EventCampRegistration.
type CampRegistrationPayload struct {
	CampID string
	UserID string
}
