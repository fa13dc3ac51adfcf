package repositories

import (
	"context"

	"clinica-api/internal/database"
	"clinica-api/internal/models"
	"clinica-api/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PatientRepository struct {
	db *database.DB
}

func NewPatientRepository(db *database.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	query := `
		INSERT INTO patients (id, document_number, first_name, last_name, phone, email, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		patient.ID, patient.DocumentNumber, patient.FirstName, patient.LastName,
		patient.Phone, patient.Email, patient.BirthDate,
	).Scan(&patient.CreatedAt, &patient.UpdatedAt)

	if err != nil {
		return errors.WrapError(err, "INTERNAL_ERROR", "Failed to create patient", errors.ErrInternalServer.Status)
	}

	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	patient := &models.Patient{}
	query := `
		SELECT id, document_number, first_name, last_name, phone, email, birth_date, created_at, updated_at
		FROM patients
		WHERE id = $1 AND deleted_at IS NULL
	`

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&patient.ID, &patient.DocumentNumber, &patient.FirstName, &patient.LastName,
		&patient.Phone, &patient.Email, &patient.BirthDate,
		&patient.CreatedAt, &patient.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.WrapError(err, "INTERNAL_ERROR", "Failed to get patient", errors.ErrInternalServer.Status)
	}

	return patient, nil
}

func (r *PatientRepository) List(ctx context.Context) ([]*models.Patient, error) {
	query := `
		SELECT id, document_number, first_name, last_name, phone, email, birth_date, created_at, updated_at
		FROM patients
		WHERE deleted_at IS NULL
		ORDER BY last_name, first_name
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, errors.WrapError(err, "INTERNAL_ERROR", "Failed to list patients", errors.ErrInternalServer.Status)
	}
	defer rows.Close()

	patients := make([]*models.Patient, 0)
	for rows.Next() {
		patient := &models.Patient{}
		err := rows.Scan(
			&patient.ID, &patient.DocumentNumber, &patient.FirstName, &patient.LastName,
			&patient.Phone, &patient.Email, &patient.BirthDate,
			&patient.CreatedAt, &patient.UpdatedAt,
		)
		if err != nil {
			return nil, errors.WrapError(err, "INTERNAL_ERROR", "Failed to scan patient", errors.ErrInternalServer.Status)
		}
		patients = append(patients, patient)
	}

	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	query := `
		UPDATE patients
		SET document_number = $1, first_name = $2, last_name = $3,
		    phone = $4, email = $5, birth_date = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		patient.DocumentNumber, patient.FirstName, patient.LastName,
		patient.Phone, patient.Email, patient.BirthDate, patient.ID,
	).Scan(&patient.UpdatedAt)

	if err == pgx.ErrNoRows {
		return errors.ErrNotFound
	}
	if err != nil {
		return errors.WrapError(err, "INTERNAL_ERROR", "Failed to update patient", errors.ErrInternalServer.Status)
	}

	return nil
}

func (r *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE patients SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errors.WrapError(err, "INTERNAL_ERROR", "Failed to delete patient", errors.ErrInternalServer.Status)
	}
	if result.RowsAffected() == 0 {
		return errors.ErrNotFound
	}

	return nil
}
