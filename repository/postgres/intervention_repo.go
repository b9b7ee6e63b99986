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

type interventionRepository struct {
	pool *pgxpool.Pool
}

// NewInterventionRepository returns a Postgres-backed implementation of InterventionRepository.
func NewInterventionRepository(pool *pgxpool.Pool) repository.InterventionRepository {
	return &interventionRepository{pool: pool}
}

const interventionColumns = `id, customer_data, robot_data, work_location, technicians,
	intervention_description, materials, external_report, work_days,
	technician_signature_path, technician_signature_name,
	customer_signature_path, customer_signature_name,
	is_complete, status, created_at, updated_at`

func (r *interventionRepository) GetByID(ctx context.Context, id string) (*domain.TechnicalIntervention, error) {
	const query = `
	SELECT ` + interventionColumns + `
	FROM interventions
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanIntervention(row)
}

func (r *interventionRepository) List(ctx context.Context, filter repository.InterventionFilter) ([]domain.TechnicalIntervention, error) {
	const query = `
	SELECT ` + interventionColumns + `
	FROM interventions
	WHERE ($1 = '' OR status = $1)
	  AND ($2 = '' OR customer_data->>'client_id' = $2)
	  AND ($3 = '' OR technicians ? $3)
	ORDER BY created_at DESC, id
	LIMIT $4 OFFSET $5
	`
	rows, err := r.pool.Query(ctx, query,
		string(filter.Status), filter.ClientID, filter.Technician,
		clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interventions []domain.TechnicalIntervention
	for rows.Next() {
		iv, err := scanIntervention(rows)
		if err != nil {
			return nil, err
		}
		interventions = append(interventions, *iv)
	}
	return interventions, rows.Err()
}

func (r *interventionRepository) Create(ctx context.Context, iv *domain.TechnicalIntervention) (*domain.TechnicalIntervention, error) {
	if iv == nil {
		return nil, domain.ErrInvalidPayload
	}
	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}
	if iv.Status == "" {
		iv.Status = domain.StatusDraft
	}

	const query = `
	INSERT INTO interventions (id, customer_data, robot_data, work_location, technicians,
		intervention_description, materials, external_report, work_days,
		technician_signature_path, technician_signature_name,
		customer_signature_path, customer_signature_name,
		is_complete, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		iv.ID,
		marshalJSON(iv.CustomerData),
		marshalJSON(iv.RobotData),
		marshalJSON(iv.WorkLocation),
		marshalJSON(iv.Technicians),
		iv.InterventionDescription,
		iv.Materials,
		iv.ExternalReport,
		marshalJSON(iv.WorkDays),
		iv.TechnicianSignaturePath,
		iv.TechnicianSignatureName,
		iv.CustomerSignaturePath,
		iv.CustomerSignatureName,
		iv.IsComplete,
		string(iv.Status),
	).Scan(&iv.CreatedAt, &iv.UpdatedAt); err != nil {
		return nil, err
	}
	return iv, nil
}

func (r *interventionRepository) Update(ctx context.Context, iv *domain.TechnicalIntervention) error {
	if iv == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE interventions
	SET customer_data = $2,
		robot_data = $3,
		work_location = $4,
		technicians = $5,
		intervention_description = $6,
		materials = $7,
		external_report = $8,
		work_days = $9,
		technician_signature_path = $10,
		technician_signature_name = $11,
		customer_signature_path = $12,
		customer_signature_name = $13,
		is_complete = $14,
		status = $15,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		iv.ID,
		marshalJSON(iv.CustomerData),
		marshalJSON(iv.RobotData),
		marshalJSON(iv.WorkLocation),
		marshalJSON(iv.Technicians),
		iv.InterventionDescription,
		iv.Materials,
		iv.ExternalReport,
		marshalJSON(iv.WorkDays),
		iv.TechnicianSignaturePath,
		iv.TechnicianSignatureName,
		iv.CustomerSignaturePath,
		iv.CustomerSignatureName,
		iv.IsComplete,
		string(iv.Status),
	).Scan(&iv.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrInterventionNotFound
		}
		return err
	}
	return nil
}

func (r *interventionRepository) UpdateStatus(ctx context.Context, id string, status domain.InterventionStatus) error {
	const query = `
	UPDATE interventions
	SET status = $2, updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInterventionNotFound
	}
	return nil
}

func (r *interventionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM interventions WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInterventionNotFound
	}
	return nil
}

func scanIntervention(row interface {
	Scan(dest ...interface{}) error
}) (*domain.TechnicalIntervention, error) {
	var iv domain.TechnicalIntervention
	var (
		customerData []byte
		robotData    []byte
		workLocation []byte
		technicians  []byte
		workDays     []byte
		status       string
	)
	if err := row.Scan(
		&iv.ID,
		&customerData,
		&robotData,
		&workLocation,
		&technicians,
		&iv.InterventionDescription,
		&iv.Materials,
		&iv.ExternalReport,
		&workDays,
		&iv.TechnicianSignaturePath,
		&iv.TechnicianSignatureName,
		&iv.CustomerSignaturePath,
		&iv.CustomerSignatureName,
		&iv.IsComplete,
		&status,
		&iv.CreatedAt,
		&iv.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInterventionNotFound
		}
		return nil, err
	}

	iv.Status = domain.InterventionStatus(status)
	if len(customerData) > 0 {
		_ = json.Unmarshal(customerData, &iv.CustomerData)
	}
	if len(robotData) > 0 {
		_ = json.Unmarshal(robotData, &iv.RobotData)
	}
	if len(workLocation) > 0 {
		_ = json.Unmarshal(workLocation, &iv.WorkLocation)
	}
	if len(technicians) > 0 {
		_ = json.Unmarshal(technicians, &iv.Technicians)
	}
	if len(workDays) > 0 {
		_ = json.Unmarshal(workDays, &iv.WorkDays)
	}
	return &iv, nil
}
