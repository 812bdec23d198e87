package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodlink-service/internal/domain"
)

// CampFilter captures camp listing parameters.
type CampFilter struct {
	BloodBankID  *string
	Status       *domain.CampStatus
	UpcomingOnly bool
	Limit        int
}

// CampRepository encapsulates donation-camp persistence.
type CampRepository interface {
	Create(ctx context.Context, camp *domain.BloodCamp) error
	Update(ctx context.Context, camp *domain.BloodCamp) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.BloodCamp, error)
	List(ctx context.Context, filter CampFilter) ([]domain.BloodCamp, error)
	Register(ctx context.Context, campID, userID string) error
	IsRegistered(ctx context.Context, campID, userID string) (bool, error)
	ListRegistrations(ctx context.Context, campID string) ([]domain.CampRegistration, error)
}

type campRepository struct {
	pool *pgxpool.Pool
}

// NewCampRepository instantiates repository.
func NewCampRepository(pool *pgxpool.Pool) CampRepository {
	return &campRepository{pool: pool}
}

const campColumns = `id, blood_bank_id, name, description, venue, address, longitude, latitude,
        camp_date, start_time, end_time, target_units, collected_units, status, contact_phone,
        created_at, updated_at`

func (r *campRepository) Create(ctx context.Context, camp *domain.BloodCamp) error {
	const query = `
        INSERT INTO blood_camps (blood_bank_id, name, description, venue, address, longitude,
            latitude, camp_date, start_time, end_time, target_units, status, contact_phone)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		camp.BloodBankID,
		camp.Name,
		camp.Description,
		camp.Venue,
		camp.Address,
		camp.Location.Longitude,
		camp.Location.Latitude,
		camp.Date,
		camp.StartTime,
		camp.EndTime,
		camp.TargetUnits,
		camp.Status,
		camp.ContactPhone,
	).Scan(&camp.ID, &camp.CreatedAt, &camp.UpdatedAt)
}

func (r *campRepository) Update(ctx context.Context, camp *domain.BloodCamp) error {
	const query = `
        UPDATE blood_camps SET name=$1, description=$2, venue=$3, address=$4, longitude=$5,
            latitude=$6, camp_date=$7, start_time=$8, end_time=$9, target_units=$10,
            collected_units=$11, status=$12, contact_phone=$13, updated_at=NOW()
        WHERE id=$14`
	cmd, err := r.pool.Exec(ctx, query,
		camp.Name,
		camp.Description,
		camp.Venue,
		camp.Address,
		camp.Location.Longitude,
		camp.Location.Latitude,
		camp.Date,
		camp.StartTime,
		camp.EndTime,
		camp.TargetUnits,
		camp.CollectedUnits,
		camp.Status,
		camp.ContactPhone,
		camp.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *campRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM blood_camps WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *campRepository) GetByID(ctx context.Context, id string) (*domain.BloodCamp, error) {
	query := fmt.Sprintf(`SELECT %s FROM blood_camps WHERE id=$1`, campColumns)
	var camp domain.BloodCamp
	if err := r.pool.QueryRow(ctx, query, id).Scan(campFields(&camp)...); err != nil {
		return nil, err
	}
	return &camp, nil
}

func (r *campRepository) List(ctx context.Context, filter CampFilter) ([]domain.BloodCamp, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.BloodBankID != nil {
		args = append(args, *filter.BloodBankID)
		clauses = append(clauses, fmt.Sprintf("blood_bank_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.UpcomingOnly {
		clauses = append(clauses, "camp_date >= NOW()")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`SELECT %s FROM blood_camps WHERE %s ORDER BY camp_date ASC LIMIT %d`,
		campColumns, strings.Join(clauses, " AND "), limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BloodCamp
	for rows.Next() {
		var camp domain.BloodCamp
		if err := rows.Scan(campFields(&camp)...); err != nil {
			return nil, err
		}
		result = append(result, camp)
	}
	return result, rows.Err()
}

func (r *campRepository) Register(ctx context.Context, campID, userID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO camp_registrations (camp_id, user_id) VALUES ($1, $2)`, campID, userID)
	return err
}

func (r *campRepository) IsRegistered(ctx context.Context, campID, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM camp_registrations WHERE camp_id=$1 AND user_id=$2)`,
		campID, userID).Scan(&exists)
	return exists, err
}

func (r *campRepository) ListRegistrations(ctx context.Context, campID string) ([]domain.CampRegistration, error) {
	const query = `
        SELECT cr.id, cr.camp_id, cr.user_id, u.name, u.phone, u.blood_group, cr.registered_at
        FROM camp_registrations cr
        JOIN users u ON u.id = cr.user_id
        WHERE cr.camp_id=$1
        ORDER BY cr.registered_at ASC`
	rows, err := r.pool.Query(ctx, query, campID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CampRegistration
	for rows.Next() {
		var reg domain.CampRegistration
		if err := rows.Scan(
			&reg.ID,
			&reg.CampID,
			&reg.UserID,
			&reg.UserName,
			&reg.UserPhone,
			&reg.BloodGroup,
			&reg.RegisteredAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reg)
	}
	return result, rows.Err()
}

func campFields(camp *domain.BloodCamp) []any {
	return []any{
		&camp.ID,
		&camp.BloodBankID,
		&camp.Name,
		&camp.Description,
		&camp.Venue,
		&camp.Address,
		&camp.Location.Longitude,
		&camp.Location.Latitude,
		&camp.Date,
		&camp.StartTime,
		&camp.EndTime,
		&camp.TargetUnits,
		&camp.CollectedUnits,
		&camp.Status,
		&camp.ContactPhone,
		&camp.CreatedAt,
		&camp.UpdatedAt,
	}
}
