package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository"
)

type islandRepository struct {
	pool *pgxpool.Pool
}

// NewIslandRepository returns a Postgres-backed implementation of IslandRepository.
func NewIslandRepository(pool *pgxpool.Pool) repository.IslandRepository {
	return &islandRepository{pool: pool}
}

const islandColumns = `id, facility_id, name, serial_number, model, is_active, created_at, updated_at`

func (r *islandRepository) GetByID(ctx context.Context, id string) (*domain.Island, error) {
	const query = `
	SELECT ` + islandColumns + `
	FROM islands
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanIsland(row)
}

func (r *islandRepository) ListByFacility(ctx context.Context, facilityID string, activeOnly bool) ([]domain.Island, error) {
	const query = `
	SELECT ` + islandColumns + `
	FROM islands
	WHERE facility_id = $1
	  AND (NOT $2 OR is_active)
	ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query, facilityID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var islands []domain.Island
	for rows.Next() {
		island, err := scanIsland(rows)
		if err != nil {
			return nil, err
		}
		islands = append(islands, *island)
	}
	return islands, rows.Err()
}

func (r *islandRepository) Create(ctx context.Context, island *domain.Island) (*domain.Island, error) {
	if island == nil {
		return nil, domain.ErrInvalidPayload
	}
	if island.ID == "" {
		island.ID = uuid.NewString()
	}
	island.IsActive = true

	const query = `
	INSERT INTO islands (id, facility_id, name, serial_number, model, is_active)
	VALUES ($1, $2, $3, $4, $5, TRUE)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		island.ID,
		island.FacilityID,
		island.Name,
		island.SerialNumber,
		island.Model,
	).Scan(&island.CreatedAt, &island.UpdatedAt); err != nil {
		return nil, err
	}
	return island, nil
}

func (r *islandRepository) Update(ctx context.Context, island *domain.Island) error {
	if island == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE islands
	SET name = $2,
		serial_number = $3,
		model = $4,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		island.ID,
		island.Name,
		island.SerialNumber,
		island.Model,
	).Scan(&island.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrIslandNotFound
		}
		return err
	}
	return nil
}

func (r *islandRepository) Deactivate(ctx context.Context, id string) error {
	const query = `
	UPDATE islands
	SET is_active = FALSE, updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIslandNotFound
	}
	return nil
}

func scanIsland(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Island, error) {
	var island domain.Island
	if err := row.Scan(
		&island.ID,
		&island.FacilityID,
		&island.Name,
		&island.SerialNumber,
		&island.Model,
		&island.IsActive,
		&island.CreatedAt,
		&island.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIslandNotFound
		}
		return nil, err
	}
	return &island, nil
}
