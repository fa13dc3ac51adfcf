package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinica-api/internal/models"
	"clinica-api/internal/permissions"
	"clinica-api/internal/services"
	"clinica-api/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubStore struct {
	records []models.PermissionRecord
	err     error
}

func (s *stubStore) GetByUser(context.Context, uuid.UUID) ([]models.PermissionRecord, error) {
	return s.records, s.err
}

func (s *stubStore) BulkReplace(context.Context, uuid.UUID, []models.PermissionRecord) error {
	return nil
}

func guardRequest(t *testing.T, store services.PermissionStore, role permissions.Role, model string, capability permissions.Capability) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	permMW := NewPermissionMiddleware(services.NewPermissionService(store, nil, 0))

	router := gin.New()
	router.GET("/guarded",
		func(c *gin.Context) {
			c.Set("user_id", uuid.New().String())
			c.Set("role", string(role))
		},
		permMW.RequireCapability(model, capability),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRequireCapabilityAllows(t *testing.T) {
	store := &stubStore{records: []models.PermissionRecord{
		{Modelo: "paciente", MetodosPermitidos: []string{"GET"}},
	}}

	w := guardRequest(t, store, permissions.RoleAssistant, "paciente", permissions.CapabilityRead)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireCapabilityDenies(t *testing.T) {
	store := &stubStore{records: []models.PermissionRecord{
		{Modelo: "paciente", MetodosPermitidos: []string{"GET"}},
	}}

	w := guardRequest(t, store, permissions.RoleAssistant, "paciente", permissions.CapabilityDelete)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireCapabilityUpdateViaPatch(t *testing.T) {
	store := &stubStore{records: []models.PermissionRecord{
		{Modelo: "paciente", MetodosPermitidos: []string{"PATCH"}},
	}}

	w := guardRequest(t, store, permissions.RoleDentist, "paciente", permissions.CapabilityUpdate)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireCapabilityAdminBypassesStore(t *testing.T) {
	// The store errors, but the admin fast path never reaches it.
	store := &stubStore{err: errors.ErrFetchFailed}

	w := guardRequest(t, store, permissions.RoleAdministrator, "paciente", permissions.CapabilityDelete)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireCapabilityFetchFailure(t *testing.T) {
	store := &stubStore{err: errors.ErrFetchFailed}

	// A fetch failure must not masquerade as a missing grant.
	w := guardRequest(t, store, permissions.RoleDentist, "paciente", permissions.CapabilityRead)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "FETCH_FAILED")
}

func TestRequireCapabilityUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	permMW := NewPermissionMiddleware(services.NewPermissionService(&stubStore{}, nil, 0))

	router := gin.New()
	router.GET("/guarded",
		permMW.RequireCapability("paciente", permissions.CapabilityRead),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
