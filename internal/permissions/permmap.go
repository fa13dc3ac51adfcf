package permissions

import "sort"

// KnownModels lists every backend model permissions can be granted
// against. The administrator fast path assigns the full method set to
// each of these without consulting stored records.
var KnownModels = []string{
	"usuario",
	"paciente",
	"agenda",
	"consulta",
	"odontograma",
	"historia_clinica",
	"examen_complementario",
	"parametro",
}

// Record is one ingested permission grant: a backend model and the raw
// method tokens allowed on it.
type Record struct {
	Model   string
	Methods []string
}

// Map associates each model with its granted method set. A model absent
// from the map has no grants; that is never an error condition.
type Map map[string]MethodSet

// BuildMap converts fetched permission records into a lookup map.
//
// For the administrator role every known model gets the full method set
// and fetched records are ignored entirely; no fetch is required for
// that path. Otherwise records are ingested in order: method tokens are
// normalized to uppercase, records with an empty model or a missing
// method list are skipped, and a later record for the same model
// replaces the earlier one.
//
// The function never fails. A fetch failure upstream must be translated
// into an empty record list, which degrades to "no capabilities".
func BuildMap(role Role, records []Record, knownModels []string) Map {
	if role.IsAdmin() {
		m := make(Map, len(knownModels))
		for _, model := range knownModels {
			set := make(MethodSet, len(AllMethods))
			for _, method := range AllMethods {
				set[method] = true
			}
			m[model] = set
		}
		return m
	}

	m := make(Map, len(records))
	for _, r := range records {
		if r.Model == "" || r.Methods == nil {
			continue
		}
		m[r.Model] = NewMethodSet(r.Methods)
	}
	return m
}

// Clone returns a deep copy of the map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for model, set := range m {
		out[model] = set.Clone()
	}
	return out
}

// Equal reports whether two maps grant exactly the same methods per
// model. Models carried with an empty set compare equal to absent ones.
func (m Map) Equal(other Map) bool {
	for model, set := range m {
		if !set.Equal(other[model]) {
			return false
		}
	}
	for model, set := range other {
		if _, ok := m[model]; !ok && !set.Equal(nil) {
			return false
		}
	}
	return true
}

// Records converts the map back into a record list with stable model
// ordering, for persistence.
func (m Map) Records() []Record {
	models := make([]string, 0, len(m))
	for model := range m {
		models = append(models, model)
	}
	sort.Strings(models)

	out := make([]Record, 0, len(models))
	for _, model := range models {
		out = append(out, Record{Model: model, Methods: m[model].Slice()})
	}
	return out
}

// CanRead reports whether GET is granted on the model.
func CanRead(m Map, model string) bool {
	return m[model].Has(MethodGet)
}

// CanCreate reports whether POST is granted on the model.
func CanCreate(m Map, model string) bool {
	return m[model].Has(MethodPost)
}

// CanEdit reports whether the composite update capability is granted:
// either PUT or PATCH unlocks it. A backend may grant only one of the
// two and the UI still treats the model as editable.
func CanEdit(m Map, model string) bool {
	return m[model].Has(MethodPut) || m[model].Has(MethodPatch)
}

// CanDelete reports whether DELETE is granted on the model.
func CanDelete(m Map, model string) bool {
	return m[model].Has(MethodDelete)
}

// Can reports whether the named capability is granted on the model,
// resolving composites through CapabilityMethods.
func Can(m Map, model string, capability Capability) bool {
	for _, method := range CapabilityMethods[capability] {
		if m[model].Has(method) {
			return true
		}
	}
	return false
}
