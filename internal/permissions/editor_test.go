package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSession() *EditSession {
	fetched := Map{
		"paciente": NewMethodSet([]string{"GET", "POST"}),
		"agenda":   NewMethodSet([]string{"GET"}),
	}
	return OpenSession(fetched)
}

func TestOpenSessionIsClean(t *testing.T) {
	s := seedSession()
	assert.False(t, s.IsDirty())
}

func TestOpenSessionCopiesInput(t *testing.T) {
	fetched := Map{"paciente": NewMethodSet([]string{"GET"})}
	s := OpenSession(fetched)

	// Mutating the input after opening must not reach the buffer.
	fetched["paciente"][MethodDelete] = true

	assert.False(t, s.Buffer()["paciente"].Has(MethodDelete))
	assert.False(t, s.IsDirty())
}

func TestToggleSymmetry(t *testing.T) {
	for _, method := range []Method{MethodGet, MethodPost, MethodPatch, MethodDelete} {
		s := seedSession()
		before := s.Buffer()

		s.Toggle("paciente", method)
		assert.True(t, s.IsDirty(), "method %s", method)

		s.Toggle("paciente", method)
		assert.True(t, s.Buffer().Equal(before), "method %s", method)
		assert.False(t, s.IsDirty(), "method %s", method)
	}
}

func TestTogglePutMovesPatchInLockstep(t *testing.T) {
	s := OpenSession(Map{})

	// Neither PUT nor PATCH set: toggling PUT grants both.
	s.Toggle("consulta", MethodPut)
	buf := s.Buffer()
	assert.True(t, buf["consulta"].Has(MethodPut))
	assert.True(t, buf["consulta"].Has(MethodPatch))

	// Toggling PUT again revokes both.
	s.Toggle("consulta", MethodPut)
	buf = s.Buffer()
	assert.False(t, buf["consulta"].Has(MethodPut))
	assert.False(t, buf["consulta"].Has(MethodPatch))
	assert.False(t, s.IsDirty())
}

func TestTogglePatchAloneDoesNotMovePut(t *testing.T) {
	s := OpenSession(Map{})

	s.Toggle("consulta", MethodPatch)
	buf := s.Buffer()
	assert.True(t, buf["consulta"].Has(MethodPatch))
	assert.False(t, buf["consulta"].Has(MethodPut))
}

func TestToggleInitializesMissingModel(t *testing.T) {
	s := seedSession()

	s.Toggle("odontograma", MethodGet)
	assert.True(t, s.Buffer()["odontograma"].Has(MethodGet))
	assert.True(t, s.IsDirty())
}

func TestClearModelKeepsKey(t *testing.T) {
	s := seedSession()

	s.ClearModel("paciente")

	buf := s.Buffer()
	set, ok := buf["paciente"]
	require.True(t, ok, "cleared model must keep its key")
	assert.Empty(t, set)
	assert.True(t, s.IsDirty())
}

func TestClearAllThenSave(t *testing.T) {
	s := seedSession()

	s.ClearAll(KnownModels)
	assert.True(t, s.IsDirty())

	require.True(t, s.BeginSave())
	saved := s.CommitSave(s.Buffer(), true)

	assert.False(t, s.IsDirty())
	for _, model := range KnownModels {
		assert.Empty(t, saved[model])
	}
}

func TestCommitSaveFailureKeepsDirty(t *testing.T) {
	s := seedSession()
	s.Toggle("agenda", MethodDelete)

	require.True(t, s.BeginSave())
	s.CommitSave(s.Buffer(), false)

	// Failed save leaves the buffer and snapshot untouched; the same
	// edits remain pending for retry.
	assert.True(t, s.IsDirty())
	assert.True(t, s.Buffer()["agenda"].Has(MethodDelete))
	assert.False(t, s.Saving())
}

func TestBeginSaveMutualExclusion(t *testing.T) {
	s := seedSession()

	require.True(t, s.BeginSave())
	assert.False(t, s.BeginSave(), "second save while one is outstanding must be rejected")
	assert.True(t, s.Saving())

	s.CommitSave(s.Buffer(), true)
	assert.True(t, s.BeginSave())
}

func TestCommitSaveAdvancesSnapshot(t *testing.T) {
	s := seedSession()
	s.Toggle("paciente", MethodDelete)

	require.True(t, s.BeginSave())
	saved := s.CommitSave(s.Buffer(), true)

	assert.True(t, saved["paciente"].Has(MethodDelete))
	assert.False(t, s.IsDirty())

	// Further edits are measured against the new snapshot.
	s.Toggle("paciente", MethodDelete)
	assert.True(t, s.IsDirty())
}

func TestCommitSaveSnapshotsCapturedState(t *testing.T) {
	s := seedSession()
	s.Toggle("agenda", MethodDelete)

	require.True(t, s.BeginSave())
	captured := s.Buffer()

	// An edit landing while the save is in flight is not part of the
	// persisted payload and must stay pending afterwards.
	s.Toggle("paciente", MethodDelete)

	s.CommitSave(captured, true)

	assert.True(t, s.IsDirty())
	assert.True(t, s.Buffer()["paciente"].Has(MethodDelete))
	assert.True(t, s.Buffer()["agenda"].Has(MethodDelete))
}
