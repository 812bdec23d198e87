package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodlink-service/internal/domain"
)

// DonorFilter captures donor search parameters. When Latitude/Longitude are
// set, results are restricted to MaxDistanceMeters (10km default) and
// ordered nearest first.
type DonorFilter struct {
	BloodGroup        *domain.BloodGroup
	Latitude          *float64
	Longitude         *float64
	MaxDistanceMeters int
	Limit             int
}

// UserRepository defines persistence access for individual accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListDonors(ctx context.Context, filter DonorFilter) ([]domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, phone, blood_group, google_id, photo_url,
        role, is_donor, is_available, address, longitude, latitude, donor_profile, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password_hash, phone, blood_group, google_id, photo_url,
            role, is_donor, is_available, address, longitude, latitude, donor_profile)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.BloodGroup,
		user.GoogleID,
		user.PhotoURL,
		user.Role,
		user.IsDonor,
		user.IsAvailable,
		user.Address,
		user.Location.Longitude,
		user.Location.Latitude,
		user.DonorProfile,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, email=$2, password_hash=$3, phone=$4, blood_group=$5,
            google_id=$6, photo_url=$7, role=$8, is_donor=$9, is_available=$10,
            address=$11, longitude=$12, latitude=$13, donor_profile=$14, updated_at=NOW()
        WHERE id=$15`
	cmd, err := r.pool.Exec(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.BloodGroup,
		user.GoogleID,
		user.PhotoURL,
		user.Role,
		user.IsDonor,
		user.IsAvailable,
		user.Address,
		user.Location.Longitude,
		user.Location.Latitude,
		user.DonorProfile,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id=$1`, userColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email=$1`, userColumns)
	return r.fetchSingle(ctx, query, strings.ToLower(email))
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.BloodGroup,
		&user.GoogleID,
		&user.PhotoURL,
		&user.Role,
		&user.IsDonor,
		&user.IsAvailable,
		&user.Address,
		&user.Location.Longitude,
		&user.Location.Latitude,
		&user.DonorProfile,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListDonors(ctx context.Context, filter DonorFilter) ([]domain.User, error) {
	clauses := []string{"is_donor=TRUE", "is_available=TRUE"}
	args := []any{}
	orderBy := "created_at DESC"

	if filter.BloodGroup != nil {
		args = append(args, *filter.BloodGroup)
		clauses = append(clauses, fmt.Sprintf("blood_group=$%d", len(args)))
	}
	if filter.Latitude != nil && filter.Longitude != nil {
		maxDistance := filter.MaxDistanceMeters
		if maxDistance <= 0 {
			maxDistance = 10000
		}
		args = append(args, *filter.Latitude)
		latIdx := len(args)
		args = append(args, *filter.Longitude)
		lngIdx := len(args)
		// Haversine distance in meters on lat/lng columns.
		distance := fmt.Sprintf(
			"6371000 * acos(LEAST(1.0, cos(radians($%d)) * cos(radians(latitude)) * cos(radians(longitude) - radians($%d)) + sin(radians($%d)) * sin(radians(latitude))))",
			latIdx, lngIdx, latIdx)
		args = append(args, maxDistance)
		clauses = append(clauses, fmt.Sprintf("%s <= $%d", distance, len(args)))
		orderBy = distance + " ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY %s LIMIT %d`,
		userColumns, strings.Join(clauses, " AND "), orderBy, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *userRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, userColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Phone,
			&user.BloodGroup,
			&user.GoogleID,
			&user.PhotoURL,
			&user.Role,
			&user.IsDonor,
			&user.IsAvailable,
			&user.Address,
			&user.Location.Longitude,
			&user.Location.Latitude,
			&user.DonorProfile,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
