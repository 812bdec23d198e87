package domain

import "time"

// ActorKind differentiates individual-user tokens from blood-bank tokens.
// It is decided once at the authorization gate and passed explicitly into
// services, never re-inspected per route.
type ActorKind string

const (
	ActorKindUser      ActorKind = "user"
	ActorKindBloodBank ActorKind = "bloodbank"
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	Kind ActorKind
	ID   string
}

// Token represents issued authentication token metadata.
type Token struct {
	SubjectID string
	Kind      ActorKind
	Role      *UserRole
	ExpiresAt time.Time
	IssuedAt  time.Time
}
