package repositories

import (
	stderrors "errors"
	"testing"

	"clinica-api/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapCreateUserErrorDuplicateEmail(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"}

	err := wrapCreateUserError(pgErr)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, errors.ErrConflict.Status, appErr.Status)
}

func TestWrapCreateUserErrorGeneric(t *testing.T) {
	err := wrapCreateUserError(stderrors.New("connection reset"))

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrInternalServer.Code, appErr.Code)
	assert.Equal(t, errors.ErrInternalServer.Status, appErr.Status)
}
