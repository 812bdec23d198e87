package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodlink-service/internal/domain"
)

// BloodBankRepository defines persistence access for blood-bank accounts.
type BloodBankRepository interface {
	Create(ctx context.Context, bank *domain.BloodBank) error
	Update(ctx context.Context, bank *domain.BloodBank) error
	GetByID(ctx context.Context, id string) (*domain.BloodBank, error)
	GetByEmail(ctx context.Context, email string) (*domain.BloodBank, error)
	GetByLicense(ctx context.Context, licenseNumber string) (*domain.BloodBank, error)
	List(ctx context.Context, verifiedOnly bool) ([]domain.BloodBank, error)
	UpdateInventory(ctx context.Context, bankID string, inventory []domain.InventoryItem) error
}

type bloodBankRepository struct {
	pool *pgxpool.Pool
}

// NewBloodBankRepository returns a Postgres-backed implementation.
func NewBloodBankRepository(pool *pgxpool.Pool) BloodBankRepository {
	return &bloodBankRepository{pool: pool}
}

const bankColumns = `id, name, email, password_hash, phone, license_number, address,
        longitude, latitude, inventory, operating_hours, contact_person, is_active, is_verified,
        created_at, updated_at`

func (r *bloodBankRepository) Create(ctx context.Context, bank *domain.BloodBank) error {
	const query = `
        INSERT INTO blood_banks (name, email, password_hash, phone, license_number, address,
            longitude, latitude, inventory, operating_hours, contact_person, is_active, is_verified)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		bank.Name,
		bank.Email,
		bank.PasswordHash,
		bank.Phone,
		bank.LicenseNumber,
		bank.Address,
		bank.Location.Longitude,
		bank.Location.Latitude,
		bank.Inventory,
		bank.OperatingHours,
		bank.ContactPerson,
		bank.IsActive,
		bank.IsVerified,
	).Scan(&bank.ID, &bank.CreatedAt, &bank.UpdatedAt)
}

func (r *bloodBankRepository) Update(ctx context.Context, bank *domain.BloodBank) error {
	const query = `
        UPDATE blood_banks SET name=$1, email=$2, password_hash=$3, phone=$4, license_number=$5,
            address=$6, longitude=$7, latitude=$8, inventory=$9, operating_hours=$10,
            contact_person=$11, is_active=$12, is_verified=$13, updated_at=NOW()
        WHERE id=$14`
	cmd, err := r.pool.Exec(ctx, query,
		bank.Name,
		bank.Email,
		bank.PasswordHash,
		bank.Phone,
		bank.LicenseNumber,
		bank.Address,
		bank.Location.Longitude,
		bank.Location.Latitude,
		bank.Inventory,
		bank.OperatingHours,
		bank.ContactPerson,
		bank.IsActive,
		bank.IsVerified,
		bank.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bloodBankRepository) GetByID(ctx context.Context, id string) (*domain.BloodBank, error) {
	query := fmt.Sprintf(`SELECT %s FROM blood_banks WHERE id=$1`, bankColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *bloodBankRepository) GetByEmail(ctx context.Context, email string) (*domain.BloodBank, error) {
	query := fmt.Sprintf(`SELECT %s FROM blood_banks WHERE email=$1`, bankColumns)
	return r.fetchSingle(ctx, query, strings.ToLower(email))
}

func (r *bloodBankRepository) GetByLicense(ctx context.Context, licenseNumber string) (*domain.BloodBank, error) {
	query := fmt.Sprintf(`SELECT %s FROM blood_banks WHERE license_number=$1`, bankColumns)
	return r.fetchSingle(ctx, query, licenseNumber)
}

func (r *bloodBankRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.BloodBank, error) {
	var bank domain.BloodBank
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&bank.ID,
		&bank.Name,
		&bank.Email,
		&bank.PasswordHash,
		&bank.Phone,
		&bank.LicenseNumber,
		&bank.Address,
		&bank.Location.Longitude,
		&bank.Location.Latitude,
		&bank.Inventory,
		&bank.OperatingHours,
		&bank.ContactPerson,
		&bank.IsActive,
		&bank.IsVerified,
		&bank.CreatedAt,
		&bank.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &bank, nil
}

func (r *bloodBankRepository) List(ctx context.Context, verifiedOnly bool) ([]domain.BloodBank, error) {
	clauses := []string{"is_active=TRUE"}
	if verifiedOnly {
		clauses = append(clauses, "is_verified=TRUE")
	}
	query := fmt.Sprintf(`SELECT %s FROM blood_banks WHERE %s ORDER BY name ASC`,
		bankColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BloodBank
	for rows.Next() {
		var bank domain.BloodBank
		if err := rows.Scan(
			&bank.ID,
			&bank.Name,
			&bank.Email,
			&bank.PasswordHash,
			&bank.Phone,
			&bank.LicenseNumber,
			&bank.Address,
			&bank.Location.Longitude,
			&bank.Location.Latitude,
			&bank.Inventory,
			&bank.OperatingHours,
			&bank.ContactPerson,
			&bank.IsActive,
			&bank.IsVerified,
			&bank.CreatedAt,
			&bank.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, bank)
	}
	return result, rows.Err()
}

func (r *bloodBankRepository) UpdateInventory(ctx context.Context, bankID string, inventory []domain.InventoryItem) error {
	const query = `UPDATE blood_banks SET inventory=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, inventory, bankID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
