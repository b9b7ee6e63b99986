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

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository returns a Postgres-backed implementation of ClientRepository.
func NewClientRepository(pool *pgxpool.Pool) repository.ClientRepository {
	return &clientRepository{pool: pool}
}

const clientColumns = `id, business_name, vat_number, email, phone, notes, is_active, created_at, updated_at`

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	const query = `
	SELECT ` + clientColumns + `
	FROM clients
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanClient(row)
}

func (r *clientRepository) List(ctx context.Context, filter repository.ClientFilter) ([]domain.Client, error) {
	const query = `
	SELECT ` + clientColumns + `
	FROM clients
	WHERE ($1 = '' OR business_name ILIKE '%' || $1 || '%')
	  AND (NOT $2 OR is_active)
	ORDER BY business_name, id
	LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, filter.Query, filter.ActiveOnly, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}
	return clients, rows.Err()
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, domain.ErrInvalidPayload
	}
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	client.IsActive = true

	const query = `
	INSERT INTO clients (id, business_name, vat_number, email, phone, notes, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, TRUE)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		client.ID,
		client.BusinessName,
		client.VATNumber,
		client.Email,
		client.Phone,
		client.Notes,
	).Scan(&client.CreatedAt, &client.UpdatedAt); err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	if client == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE clients
	SET business_name = $2,
		vat_number = $3,
		email = $4,
		phone = $5,
		notes = $6,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		client.ID,
		client.BusinessName,
		client.VATNumber,
		client.Email,
		client.Phone,
		client.Notes,
	).Scan(&client.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrClientNotFound
		}
		return err
	}
	return nil
}

func (r *clientRepository) Deactivate(ctx context.Context, id string) error {
	const query = `
	UPDATE clients
	SET is_active = FALSE, updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func scanClient(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Client, error) {
	var client domain.Client
	if err := row.Scan(
		&client.ID,
		&client.BusinessName,
		&client.VATNumber,
		&client.Email,
		&client.Phone,
		&client.Notes,
		&client.IsActive,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}
