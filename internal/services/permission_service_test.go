package services

import (
	"context"
	"testing"

	"clinica-api/internal/models"
	"clinica-api/internal/permissions"
	"clinica-api/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	records map[uuid.UUID][]models.PermissionRecord
	getErr  error
	saveErr error

	getCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[uuid.UUID][]models.PermissionRecord)}
}

func (f *fakeStore) GetByUser(_ context.Context, userID uuid.UUID) ([]models.PermissionRecord, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.records[userID], nil
}

func (f *fakeStore) BulkReplace(_ context.Context, userID uuid.UUID, records []models.PermissionRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records[userID] = records
	return nil
}

func TestMapForUserAdminSkipsStore(t *testing.T) {
	store := newFakeStore()
	svc := NewPermissionService(store, nil, 0)

	m, err := svc.MapForUser(context.Background(), uuid.New(), permissions.RoleAdministrator)

	require.NoError(t, err)
	assert.Zero(t, store.getCalls, "admin fast path must not fetch")
	for _, model := range permissions.KnownModels {
		assert.True(t, permissions.CanDelete(m, model), "model %s", model)
	}
}

func TestMapForUserBuildsFromStoredRecords(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	store.records[userID] = []models.PermissionRecord{
		{Modelo: "paciente", MetodosPermitidos: []string{"get", "post"}},
	}
	svc := NewPermissionService(store, nil, 0)

	m, err := svc.MapForUser(context.Background(), userID, permissions.RoleAssistant)

	require.NoError(t, err)
	assert.True(t, permissions.CanRead(m, "paciente"))
	assert.True(t, permissions.CanCreate(m, "paciente"))
	assert.False(t, permissions.CanEdit(m, "paciente"))
	assert.False(t, permissions.CanRead(m, "agenda"))
}

func TestMapForUserFetchFailureSurfaces(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.ErrFetchFailed
	svc := NewPermissionService(store, nil, 0)

	_, err := svc.MapForUser(context.Background(), uuid.New(), permissions.RoleDentist)

	// A failed fetch must stay distinguishable from an empty grant set.
	require.Error(t, err)
	assert.Equal(t, errors.ErrFetchFailed, err)
}

func TestMapForUserNoRecordsMeansNoCapabilities(t *testing.T) {
	svc := NewPermissionService(newFakeStore(), nil, 0)

	m, err := svc.MapForUser(context.Background(), uuid.New(), permissions.RoleDentist)

	require.NoError(t, err)
	for _, model := range permissions.KnownModels {
		assert.False(t, permissions.CanRead(m, model))
	}
}

func TestVisibleModules(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	store.records[userID] = []models.PermissionRecord{
		{Modelo: "paciente", MetodosPermitidos: []string{"GET"}},
	}
	svc := NewPermissionService(store, nil, 0)

	modules, err := svc.VisibleModules(context.Background(), userID, permissions.RoleAssistant)

	require.NoError(t, err)
	assert.Equal(t, []string{"Dashboard", "Pacientes"}, modules)
}

func TestBulkUpdatePersists(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	svc := NewPermissionService(store, nil, 0)

	records := []models.PermissionRecord{
		{Modelo: "agenda", MetodosPermitidos: []string{"GET", "POST"}},
	}
	require.NoError(t, svc.BulkUpdate(context.Background(), userID, records))

	stored, err := svc.RecordsForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, records, stored)
}

func TestRecordConversionRoundTrip(t *testing.T) {
	wire := []models.PermissionRecord{
		{Modelo: "paciente", MetodosPermitidos: []string{"GET", "PUT"}},
		{Modelo: "agenda", MetodosPermitidos: []string{"POST"}},
	}

	core := ToCoreRecords(wire)
	require.Len(t, core, 2)
	assert.Equal(t, "paciente", core[0].Model)

	back := FromCoreRecords(core)
	assert.Equal(t, wire, back)
}
