package permissions

// EditSession is an administrator's working copy of one user's
// permissions map. The buffer absorbs toggles while the snapshot keeps
// the last-saved state for dirty detection. The buffer is never
// partially persisted: a save either replaces the snapshot wholesale on
// backend acknowledgment or leaves both sides untouched.
//
// A session is owned by one edit flow at a time; callers that share a
// session across goroutines must serialize access externally.
type EditSession struct {
	buffer   Map
	snapshot Map
	saving   bool
}

// OpenSession starts an edit session seeded from the fetched map. Both
// the buffer and the snapshot are independent deep copies, so later
// mutations of the input cannot leak in.
func OpenSession(fetched Map) *EditSession {
	return &EditSession{
		buffer:   fetched.Clone(),
		snapshot: fetched.Clone(),
	}
}

// Toggle flips one method on a model: granted becomes revoked and vice
// versa. Toggling PUT moves PATCH in lockstep so the pair stays a
// single update capability. Toggling a method on a model with no entry
// initializes that model's set.
func (s *EditSession) Toggle(model string, method Method) {
	method = NormalizeMethod(string(method))
	set := s.buffer[model]
	if set == nil {
		set = make(MethodSet)
		s.buffer[model] = set
	}

	granted := !set.Has(method)
	if granted {
		set[method] = true
	} else {
		delete(set, method)
	}

	if method == MethodPut {
		if granted {
			set[MethodPatch] = true
		} else {
			delete(set, MethodPatch)
		}
	}
}

// ClearModel empties a model's method set. The key stays present with
// an explicit empty set so the row still renders in the edit UI.
func (s *EditSession) ClearModel(model string) {
	s.buffer[model] = make(MethodSet)
}

// ClearAll empties every known model's method set.
func (s *EditSession) ClearAll(knownModels []string) {
	for _, model := range knownModels {
		s.buffer[model] = make(MethodSet)
	}
}

// IsDirty reports whether the buffer differs from the last-saved
// snapshot under per-model set equality. Key order and method order
// never produce false positives.
func (s *EditSession) IsDirty() bool {
	return !s.buffer.Equal(s.snapshot)
}

// Buffer returns a deep copy of the current working state.
func (s *EditSession) Buffer() Map {
	return s.buffer.Clone()
}

// BeginSave marks a save in flight. It returns false when a save is
// already outstanding; the caller must reject the second attempt
// instead of queueing it.
func (s *EditSession) BeginSave() bool {
	if s.saving {
		return false
	}
	s.saving = true
	return true
}

// CommitSave finishes a save. On success the snapshot advances to the
// state that was actually persisted, which the caller captured when the
// save began; edits that landed in the buffer after the capture stay
// pending against the new snapshot instead of being silently marked
// saved. On failure both sides are left unchanged so the same edits
// can be retried.
func (s *EditSession) CommitSave(saved Map, success bool) Map {
	s.saving = false
	if success {
		s.snapshot = saved.Clone()
	}
	return s.buffer.Clone()
}

// Saving reports whether a save is currently in flight.
func (s *EditSession) Saving() bool {
	return s.saving
}
