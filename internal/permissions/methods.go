package permissions

import (
	"sort"
	"strings"
)

// Method is an HTTP method token granted against a backend model.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// AllMethods is the full grant set assigned to every model for the
// administrator fast path.
var AllMethods = []Method{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete}

// NormalizeMethod uppercases a raw method token from the backend.
// Unknown tokens are returned normalized; membership checks simply
// never match them.
func NormalizeMethod(raw string) Method {
	return Method(strings.ToUpper(strings.TrimSpace(raw)))
}

// Capability is the UI-level permission derived from method grants.
type Capability string

const (
	CapabilityRead   Capability = "read"
	CapabilityCreate Capability = "create"
	CapabilityUpdate Capability = "update"
	CapabilityDelete Capability = "delete"
)

// CapabilityMethods maps each capability to the methods that grant it.
// Update is a composite: a backend may grant PUT, PATCH, or both, and
// either one yields the update capability.
var CapabilityMethods = map[Capability][]Method{
	CapabilityRead:   {MethodGet},
	CapabilityCreate: {MethodPost},
	CapabilityUpdate: {MethodPut, MethodPatch},
	CapabilityDelete: {MethodDelete},
}

// MethodSet is the set of methods granted on a single model.
type MethodSet map[Method]bool

// NewMethodSet builds a set from raw method tokens, normalizing each.
func NewMethodSet(raw []string) MethodSet {
	set := make(MethodSet, len(raw))
	for _, m := range raw {
		if norm := NormalizeMethod(m); norm != "" {
			set[norm] = true
		}
	}
	return set
}

// Has reports membership. A nil set behaves as empty.
func (s MethodSet) Has(m Method) bool {
	return s[m]
}

// Clone returns an independent copy of the set.
func (s MethodSet) Clone() MethodSet {
	out := make(MethodSet, len(s))
	for m, ok := range s {
		if ok {
			out[m] = true
		}
	}
	return out
}

// Equal reports whether two sets grant exactly the same methods,
// ignoring entries explicitly stored as false.
func (s MethodSet) Equal(other MethodSet) bool {
	count := 0
	for m, ok := range s {
		if !ok {
			continue
		}
		if !other[m] {
			return false
		}
		count++
	}
	for m, ok := range other {
		if ok {
			if !s[m] {
				return false
			}
			count--
		}
	}
	return count == 0
}

// Slice returns the granted methods as strings, for serialization.
// Known methods come first in a fixed order so output is stable.
func (s MethodSet) Slice() []string {
	out := make([]string, 0, len(s))
	for _, m := range AllMethods {
		if s[m] {
			out = append(out, string(m))
		}
	}
	var unknown []string
	for m, ok := range s {
		if ok && !isKnownMethod(m) {
			unknown = append(unknown, string(m))
		}
	}
	sort.Strings(unknown)
	return append(out, unknown...)
}

func isKnownMethod(m Method) bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		return true
	}
	return false
}
