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

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository returns a Postgres-backed implementation of ContactRepository.
func NewContactRepository(pool *pgxpool.Pool) repository.ContactRepository {
	return &contactRepository{pool: pool}
}

const contactColumns = `id, client_id, full_name, email, phone, mobile_phone, role, is_primary, is_active, created_at, updated_at`

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	const query = `
	SELECT ` + contactColumns + `
	FROM contacts
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanContact(row)
}

func (r *contactRepository) ListByClient(ctx context.Context, clientID string, activeOnly bool) ([]domain.Contact, error) {
	const query = `
	SELECT ` + contactColumns + `
	FROM contacts
	WHERE client_id = $1
	  AND (NOT $2 OR is_active)
	ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query, clientID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}
	return contacts, rows.Err()
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if contact == nil {
		return nil, domain.ErrInvalidPayload
	}
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	contact.IsActive = true

	const query = `
	INSERT INTO contacts (id, client_id, full_name, email, phone, mobile_phone, role, is_primary, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		contact.ID,
		contact.ClientID,
		contact.FullName,
		contact.Email,
		contact.Phone,
		contact.MobilePhone,
		contact.Role,
		contact.IsPrimary,
	).Scan(&contact.CreatedAt, &contact.UpdatedAt); err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *contactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	if contact == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE contacts
	SET full_name = $2,
		email = $3,
		phone = $4,
		mobile_phone = $5,
		role = $6,
		is_primary = $7,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		contact.ID,
		contact.FullName,
		contact.Email,
		contact.Phone,
		contact.MobilePhone,
		contact.Role,
		contact.IsPrimary,
	).Scan(&contact.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrContactNotFound
		}
		return err
	}
	return nil
}

func (r *contactRepository) Deactivate(ctx context.Context, id string) error {
	const query = `
	UPDATE contacts
	SET is_active = FALSE, is_primary = FALSE, updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

// SetPrimary clears the previous primary contact of the client and promotes
// the given one inside a single transaction, so the single-primary invariant
// holds even against concurrent writers.
func (r *contactRepository) SetPrimary(ctx context.Context, clientID, contactID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE contacts SET is_primary = FALSE, updated_at = NOW() WHERE client_id = $1 AND is_primary`,
		clientID,
	); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE contacts SET is_primary = TRUE, updated_at = NOW() WHERE id = $1 AND client_id = $2 AND is_active`,
		contactID, clientID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}

	return tx.Commit(ctx)
}

func (r *contactRepository) FindByEmail(ctx context.Context, email, excludeID string) (*domain.Contact, error) {
	const query = `
	SELECT ` + contactColumns + `
	FROM contacts
	WHERE LOWER(email) = LOWER($1)
	  AND ($2 = '' OR id <> $2)
	LIMIT 1
	`
	row := r.pool.QueryRow(ctx, query, email, excludeID)
	return scanContact(row)
}

func (r *contactRepository) FindByPhone(ctx context.Context, phone, excludeID string) (*domain.Contact, error) {
	const query = `
	SELECT ` + contactColumns + `
	FROM contacts
	WHERE (phone = $1 OR mobile_phone = $1)
	  AND ($2 = '' OR id <> $2)
	LIMIT 1
	`
	row := r.pool.QueryRow(ctx, query, phone, excludeID)
	return scanContact(row)
}

func scanContact(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Contact, error) {
	var contact domain.Contact
	if err := row.Scan(
		&contact.ID,
		&contact.ClientID,
		&contact.FullName,
		&contact.Email,
		&contact.Phone,
		&contact.MobilePhone,
		&contact.Role,
		&contact.IsPrimary,
		&contact.IsActive,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}
