package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository"
)

type facilityRepository struct {
	pool *pgxpool.Pool
}

// NewFacilityRepository returns a Postgres-backed implementation of FacilityRepository.
func NewFacilityRepository(pool *pgxpool.Pool) repository.FacilityRepository {
	return &facilityRepository{pool: pool}
}

const facilityColumns = `id, client_id, name, code, description, address, is_primary, is_active, created_at, updated_at`

func (r *facilityRepository) GetByID(ctx context.Context, id string) (*domain.Facility, error) {
	const query = `
	SELECT ` + facilityColumns + `
	FROM facilities
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanFacility(row)
}

func (r *facilityRepository) ListByClient(ctx context.Context, clientID string, activeOnly bool) ([]domain.Facility, error) {
	const query = `
	SELECT ` + facilityColumns + `
	FROM facilities
	WHERE client_id = $1
	  AND (NOT $2 OR is_active)
	ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query, clientID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facilities []domain.Facility
	for rows.Next() {
		facility, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		facilities = append(facilities, *facility)
	}
	return facilities, rows.Err()
}

func (r *facilityRepository) Create(ctx context.Context, facility *domain.Facility) (*domain.Facility, error) {
	if facility == nil {
		return nil, domain.ErrInvalidPayload
	}
	if facility.ID == "" {
		facility.ID = uuid.NewString()
	}
	facility.IsActive = true

	const query = `
	INSERT INTO facilities (id, client_id, name, code, description, address, is_primary, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		facility.ID,
		facility.ClientID,
		facility.Name,
		facility.Code,
		facility.Description,
		marshalJSON(facility.Address),
		facility.IsPrimary,
	).Scan(&facility.CreatedAt, &facility.UpdatedAt); err != nil {
		return nil, err
	}
	return facility, nil
}

func (r *facilityRepository) Update(ctx context.Context, facility *domain.Facility) error {
	if facility == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE facilities
	SET name = $2,
		code = $3,
		description = $4,
		address = $5,
		is_primary = $6,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		facility.ID,
		facility.Name,
		facility.Code,
		facility.Description,
		marshalJSON(facility.Address),
		facility.IsPrimary,
	).Scan(&facility.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrFacilityNotFound
		}
		return err
	}
	return nil
}

func (r *facilityRepository) Deactivate(ctx context.Context, id string) error {
	const query = `
	UPDATE facilities
	SET is_active = FALSE, is_primary = FALSE, updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFacilityNotFound
	}
	return nil
}

func (r *facilityRepository) SetPrimary(ctx context.Context, clientID, facilityID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE facilities SET is_primary = FALSE, updated_at = NOW() WHERE client_id = $1 AND is_primary`,
		clientID,
	); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE facilities SET is_primary = TRUE, updated_at = NOW() WHERE id = $1 AND client_id = $2 AND is_active`,
		facilityID, clientID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFacilityNotFound
	}

	return tx.Commit(ctx)
}

func scanFacility(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Facility, error) {
	var facility domain.Facility
	var address []byte
	if err := row.Scan(
		&facility.ID,
		&facility.ClientID,
		&facility.Name,
		&facility.Code,
		&facility.Description,
		&address,
		&facility.IsPrimary,
		&facility.IsActive,
		&facility.CreatedAt,
		&facility.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFacilityNotFound
		}
		return nil, err
	}
	if len(address) > 0 {
		_ = json.Unmarshal(address, &facility.Address)
	}
	return &facility, nil
}
