package services

import (
	"context"
	"sync"

	"clinica-api/internal/models"
	"clinica-api/internal/permissions"
	"clinica-api/pkg/errors"

	"github.com/google/uuid"
)

// EditorService manages administrative permission-edit sessions, one
// per target user. Each session wraps a core EditSession with a lock so
// concurrent HTTP requests against the same session are serialized.
// Two administrators editing the same user still overwrite each other
// on save (last save wins); there is no concurrent-edit detection.
type EditorService struct {
	store PermissionStore
	perms *PermissionService

	mu       sync.Mutex
	sessions map[uuid.UUID]*editEntry
}

type editEntry struct {
	mu      sync.Mutex
	session *permissions.EditSession
}

func NewEditorService(store PermissionStore, perms *PermissionService) *EditorService {
	return &EditorService{
		store:    store,
		perms:    perms,
		sessions: make(map[uuid.UUID]*editEntry),
	}
}

// Open starts an edit session over the target user's stored grants and
// returns its state. Opening while a session already exists reseeds it
// from the store, discarding unsaved edits.
//
// The buffer edits stored records, so the administrator fast path does
// not apply: even an administrator's own row set is shown as stored.
func (s *EditorService) Open(ctx context.Context, targetID uuid.UUID) (*models.SessionStateResponse, error) {
	records, err := s.store.GetByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	fetched := permissions.BuildMap("", ToCoreRecords(records), permissions.KnownModels)

	entry := &editEntry{session: permissions.OpenSession(fetched)}

	s.mu.Lock()
	s.sessions[targetID] = entry
	s.mu.Unlock()

	return s.state(targetID, entry), nil
}

// State returns the current buffer and dirty flag for a session.
func (s *EditorService) State(targetID uuid.UUID) (*models.SessionStateResponse, error) {
	entry, err := s.entry(targetID)
	if err != nil {
		return nil, err
	}
	return s.state(targetID, entry), nil
}

// Toggle flips one method on one model in the session buffer; the core
// keeps PUT and PATCH paired.
func (s *EditorService) Toggle(targetID uuid.UUID, model string, method string) (*models.SessionStateResponse, error) {
	entry, err := s.entry(targetID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	entry.session.Toggle(model, permissions.Method(method))
	entry.mu.Unlock()

	return s.state(targetID, entry), nil
}

// Clear empties one model's grants, or every known model's grants when
// model is empty.
func (s *EditorService) Clear(targetID uuid.UUID, model string) (*models.SessionStateResponse, error) {
	entry, err := s.entry(targetID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	if model == "" {
		entry.session.ClearAll(permissions.KnownModels)
	} else {
		entry.session.ClearModel(model)
	}
	entry.mu.Unlock()

	return s.state(targetID, entry), nil
}

// Save persists the session buffer as the target user's new grant set.
// A second save issued while one is outstanding is rejected with a
// conflict; a failed save leaves buffer and snapshot untouched so the
// same edits can be retried. Edits made while a save is in flight are
// not part of it and leave the session dirty once it completes.
func (s *EditorService) Save(ctx context.Context, targetID uuid.UUID) (*models.SessionStateResponse, error) {
	entry, err := s.entry(targetID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	if !entry.session.BeginSave() {
		entry.mu.Unlock()
		return nil, errors.ErrSaveInFlight
	}
	captured := entry.session.Buffer()
	entry.mu.Unlock()

	// The saving flag guards against a second save while the store call
	// runs without the entry lock. Toggles that land meanwhile stay
	// pending: the snapshot advances only to the captured state, so the
	// session reports dirty until they are saved too.
	saveErr := s.perms.BulkUpdate(ctx, targetID, FromCoreRecords(captured.Records()))

	entry.mu.Lock()
	entry.session.CommitSave(captured, saveErr == nil)
	entry.mu.Unlock()

	if saveErr != nil {
		return nil, saveErr
	}

	return s.state(targetID, entry), nil
}

// Discard drops a session without saving.
func (s *EditorService) Discard(targetID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[targetID]; !ok {
		return errors.ErrNotFound
	}
	delete(s.sessions, targetID)
	return nil
}

func (s *EditorService) entry(targetID uuid.UUID) (*editEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[targetID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return entry, nil
}

func (s *EditorService) state(targetID uuid.UUID, entry *editEntry) *models.SessionStateResponse {
	entry.mu.Lock()
	defer entry.mu.Unlock()

	return &models.SessionStateResponse{
		UserID: targetID,
		Buffer: FromCoreRecords(entry.session.Buffer().Records()),
		Dirty:  entry.session.IsDirty(),
		Saving: entry.session.Saving(),
	}
}
