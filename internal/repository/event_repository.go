package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodlink-service/internal/domain"
)

// EventRepository encapsulates community-event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.CommunityEvent) error
	GetByID(ctx context.Context, id string) (*domain.CommunityEvent, error)
	List(ctx context.Context) ([]domain.CommunityEvent, error)
	AddParticipant(ctx context.Context, eventID, userID string) error
	Delete(ctx context.Context, id string) error
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `id, organizer_id, title, description, venue, event_date, participants,
        created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.CommunityEvent) error {
	const query = `
        INSERT INTO community_events (organizer_id, title, description, venue, event_date)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		event.OrganizerID,
		event.Title,
		event.Description,
		event.Venue,
		event.Date,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.CommunityEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM community_events WHERE id=$1`, eventColumns)
	var event domain.CommunityEvent
	if err := r.pool.QueryRow(ctx, query, id).Scan(eventFields(&event)...); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]domain.CommunityEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM community_events ORDER BY event_date ASC`, eventColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CommunityEvent
	for rows.Next() {
		var event domain.CommunityEvent
		if err := rows.Scan(eventFields(&event)...); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func (r *eventRepository) AddParticipant(ctx context.Context, eventID, userID string) error {
	const query = `
        UPDATE community_events
        SET participants = array_append(participants, $1), updated_at=NOW()
        WHERE id=$2 AND NOT ($1 = ANY(participants))`
	cmd, err := r.pool.Exec(ctx, query, userID, eventID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM community_events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func eventFields(event *domain.CommunityEvent) []any {
	return []any{
		&event.ID,
		&event.OrganizerID,
		&event.Title,
		&event.Description,
		&event.Venue,
		&event.Date,
		&event.Participants,
		&event.CreatedAt,
		&event.UpdatedAt,
	}
}
