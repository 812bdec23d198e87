package dto

import (
	"time"

	"github.com/spec-kit/bloodlink-service/internal/domain"
)

// CampRequest payload for camp creation/update.
type CampRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Venue        string          `json:"venue"`
	Address      domain.Address  `json:"address"`
	Location     domain.GeoPoint `json:"location"`
	Date         time.Time       `json:"date"`
	StartTime    string          `json:"startTime"`
	EndTime      string          `json:"endTime"`
	TargetUnits  int             `json:"targetUnits"`
	ContactPhone string          `json:"contactPhone"`
}

// CollectedUnitsRequest payload.
type CollectedUnitsRequest struct {
	CollectedUnits int `json:"collectedUnits"`
}

// CampResponse is the public shape of a donation camp.
type CampResponse struct {
	ID             string            `json:"id"`
	BloodBankID    string            `json:"bloodBank"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Venue          string            `json:"venue"`
	Address        domain.Address    `json:"address"`
	Location       domain.GeoPoint   `json:"location"`
	Date           time.Time         `json:"date"`
	StartTime      string            `json:"startTime"`
	EndTime        string            `json:"endTime"`
	TargetUnits    int               `json:"targetUnits"`
	CollectedUnits int               `json:"collectedUnits"`
	Status         domain.CampStatus `json:"status"`
	ContactPhone   string            `json:"contactPhone,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// NewCampResponse maps a domain camp.
func NewCampResponse(camp *domain.BloodCamp) CampResponse {
	return CampResponse{
		ID:             camp.ID,
		BloodBankID:    camp.BloodBankID,
		Name:           camp.Name,
		Description:    camp.Description,
		Venue:          camp.Venue,
		Address:        camp.Address,
		Location:       camp.Location,
		Date:           camp.Date,
		StartTime:      camp.StartTime,
		EndTime:        camp.EndTime,
		TargetUnits:    camp.TargetUnits,
		CollectedUnits: camp.CollectedUnits,
		Status:         camp.Status,
		ContactPhone:   camp.ContactPhone,
		CreatedAt:      camp.CreatedAt,
	}
}

// EventRequest payload for community-event creation.
type EventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	Date        time.Time `json:"date"`
}

// EventResponse is the public shape of a community event.
type EventResponse struct {
	ID           string    `json:"id"`
	OrganizerID  string    `json:"organizer"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Venue        string    `json:"venue"`
	Date         time.Time `json:"date"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewEventResponse maps a domain community event.
func NewEventResponse(event *domain.CommunityEvent) EventResponse {
	participants := event.Participants
	if participants == nil {
		participants = []string{}
	}
	return EventResponse{
		ID:           event.ID,
		OrganizerID:  event.OrganizerID,
		Title:        event.Title,
		Description:  event.Description,
		Venue:        event.Venue,
		Date:         event.Date,
		Participants: participants,
		CreatedAt:    event.CreatedAt,
	}
}
