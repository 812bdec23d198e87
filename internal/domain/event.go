package domain

import "time"

// CommunityEvent is a user-organized awareness or donation event.
type CommunityEvent struct {
	ID           string
	OrganizerID  string
	Title        string
	Description  string
	Venue        string
	Date         time.Time
	Participants []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Registered reports whether the user already joined the event.
func (e *CommunityEvent) Registered(userID string) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
