package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodlink-service/internal/domain"
)

// RequestFilter captures blood-request listing parameters.
type RequestFilter struct {
	RequesterID *string
	Status      *domain.RequestStatus
	BloodGroup  *domain.BloodGroup
	Limit       int
	Offset      int
}

// BloodRequestRepository encapsulates blood-request persistence.
type BloodRequestRepository interface {
	Create(ctx context.Context, request *domain.BloodRequest) error
	GetByID(ctx context.Context, id string) (*domain.BloodRequest, error)
	ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.BloodRequest, error)
	ListAll(ctx context.Context) ([]domain.BloodRequest, error)
	// TransitionFromPending atomically moves a request out of pending.
	// The conditional WHERE guards against concurrent transitions on the
	// same id: the losing writer affects zero rows and gets pgx.ErrNoRows.
	TransitionFromPending(ctx context.Context, id string, newStatus domain.RequestStatus, bankID *string, response *domain.BankResponse) (*domain.BloodRequest, error)
}

type bloodRequestRepository struct {
	pool *pgxpool.Pool
}

// NewBloodRequestRepository instantiates repository.
func NewBloodRequestRepository(pool *pgxpool.Pool) BloodRequestRepository {
	return &bloodRequestRepository{pool: pool}
}

const requestColumns = `id, requester_id, patient_name, blood_group, units, urgency, hospital,
        contact_number, required_by, description, blood_bank_id, status, bank_response,
        created_at, updated_at`

func (r *bloodRequestRepository) Create(ctx context.Context, request *domain.BloodRequest) error {
	const query = `
        INSERT INTO blood_requests (requester_id, patient_name, blood_group, units, urgency,
            hospital, contact_number, required_by, description, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		request.RequesterID,
		request.PatientName,
		request.BloodGroup,
		request.Units,
		request.Urgency,
		request.Hospital,
		request.ContactNumber,
		request.RequiredBy,
		request.Description,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *bloodRequestRepository) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM blood_requests WHERE id=$1`, requestColumns)
	var request domain.BloodRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(requestFields(&request)...); err != nil {
		return nil, err
	}
	return &request, nil
}

// requestListColumns qualifies the request columns and joins the requester's
// contact fields for listings.
const requestListColumns = `r.id, r.requester_id, r.patient_name, r.blood_group, r.units, r.urgency, r.hospital,
        r.contact_number, r.required_by, r.description, r.blood_bank_id, r.status, r.bank_response,
        r.created_at, r.updated_at, u.name, u.email, u.phone`

func (r *bloodRequestRepository) ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.BloodRequest, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		clauses = append(clauses, fmt.Sprintf("r.requester_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("r.status=$%d", len(args)))
	}
	if filter.BloodGroup != nil {
		args = append(args, *filter.BloodGroup)
		clauses = append(clauses, fmt.Sprintf("r.blood_group=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT %s FROM blood_requests r
        JOIN users u ON u.id = r.requester_id
        WHERE %s ORDER BY r.created_at DESC LIMIT %d OFFSET %d`,
		requestListColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BloodRequest
	for rows.Next() {
		var request domain.BloodRequest
		var contact domain.RequesterContact
		fields := append(requestFields(&request), &contact.Name, &contact.Email, &contact.Phone)
		if err := rows.Scan(fields...); err != nil {
			return nil, err
		}
		request.Requester = &contact
		result = append(result, request)
	}
	return result, rows.Err()
}

func (r *bloodRequestRepository) ListAll(ctx context.Context) ([]domain.BloodRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM blood_requests ORDER BY created_at DESC`, requestColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *bloodRequestRepository) TransitionFromPending(ctx context.Context, id string, newStatus domain.RequestStatus, bankID *string, response *domain.BankResponse) (*domain.BloodRequest, error) {
	query := fmt.Sprintf(`
        UPDATE blood_requests
        SET status=$1, blood_bank_id=COALESCE($2, blood_bank_id), bank_response=COALESCE($3, bank_response), updated_at=NOW()
        WHERE id=$4 AND status=$5
        RETURNING %s`, requestColumns)

	var request domain.BloodRequest
	if err := r.pool.QueryRow(ctx, query, newStatus, bankID, response, id, domain.RequestStatusPending).
		Scan(requestFields(&request)...); err != nil {
		return nil, err
	}
	return &request, nil
}

func requestFields(request *domain.BloodRequest) []any {
	return []any{
		&request.ID,
		&request.RequesterID,
		&request.PatientName,
		&request.BloodGroup,
		&request.Units,
		&request.Urgency,
		&request.Hospital,
		&request.ContactNumber,
		&request.RequiredBy,
		&request.Description,
		&request.BloodBankID,
		&request.Status,
		&request.BankResponse,
		&request.CreatedAt,
		&request.UpdatedAt,
	}
}

func scanRequests(rows pgx.Rows) ([]domain.BloodRequest, error) {
	var result []domain.BloodRequest
	for rows.Next() {
		var request domain.BloodRequest
		if err := rows.Scan(requestFields(&request)...); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
