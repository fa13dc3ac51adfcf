package repositories

import (
	"context"

	"clinica-api/internal/database"
	"clinica-api/internal/models"
	"clinica-api/pkg/errors"

	"github.com/google/uuid"
)

type PermissionRepository struct {
	db *database.DB
}

func NewPermissionRepository(db *database.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

// GetByUser returns every permission record granted to a user. A user
// with no rows gets an empty list, which downstream reads as "no
// capabilities", never as an error.
func (r *PermissionRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.PermissionRecord, error) {
	query := `
		SELECT modelo, metodos_permitidos
		FROM user_permissions
		WHERE user_id = $1
		ORDER BY modelo
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrFetchFailed.Code, "Failed to fetch permissions", errors.ErrFetchFailed.Status)
	}
	defer rows.Close()

	records := make([]models.PermissionRecord, 0)
	for rows.Next() {
		var rec models.PermissionRecord
		if err := rows.Scan(&rec.Modelo, &rec.MetodosPermitidos); err != nil {
			return nil, errors.WrapError(err, errors.ErrFetchFailed.Code, "Failed to scan permission record", errors.ErrFetchFailed.Status)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapError(err, errors.ErrFetchFailed.Code, "Failed to read permission records", errors.ErrFetchFailed.Status)
	}

	return records, nil
}

// BulkReplace atomically replaces a user's entire grant set. Either all
// records land or none do; a failed save leaves the previous grants
// intact so the caller can retry the same payload.
func (r *PermissionRepository) BulkReplace(ctx context.Context, userID uuid.UUID, records []models.PermissionRecord) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return errors.WrapError(err, errors.ErrSaveFailed.Code, "Failed to begin transaction", errors.ErrSaveFailed.Status)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM user_permissions WHERE user_id = $1`, userID)
	if err != nil {
		return errors.WrapError(err, errors.ErrSaveFailed.Code, "Failed to delete existing permissions", errors.ErrSaveFailed.Status)
	}

	query := `INSERT INTO user_permissions (user_id, modelo, metodos_permitidos) VALUES ($1, $2, $3)`
	for _, rec := range records {
		if rec.Modelo == "" {
			continue
		}
		_, err = tx.Exec(ctx, query, userID, rec.Modelo, rec.MetodosPermitidos)
		if err != nil {
			return errors.WrapError(err, errors.ErrSaveFailed.Code, "Failed to insert permission record", errors.ErrSaveFailed.Status)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.WrapError(err, errors.ErrSaveFailed.Code, "Failed to commit permissions", errors.ErrSaveFailed.Status)
	}

	return nil
}
