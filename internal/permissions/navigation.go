package permissions

import "sort"

// ModelModules associates one backend model with the navigation modules
// it unlocks when the model grants at least read access.
type ModelModules struct {
	Model   string
	Modules []string
}

// NavConfig is the static navigation table. It is configuration, not
// runtime state, and must never be mutated after construction.
type NavConfig struct {
	// AlwaysVisible modules render for every authenticated user.
	AlwaysVisible []string
	// AdminOnly modules are unlocked only by the administrator role,
	// never through the permissions map.
	AdminOnly []string
	// ModelModules maps models to the modules their read grant unlocks.
	// A module listed under several models becomes visible when any one
	// of them grants read.
	ModelModules []ModelModules
}

// DefaultNavConfig is the clinic's navigation layout.
var DefaultNavConfig = NavConfig{
	AlwaysVisible: []string{"Dashboard"},
	AdminOnly:     []string{"Usuarios", "Parametros"},
	ModelModules: []ModelModules{
		{Model: "paciente", Modules: []string{"Pacientes"}},
		{Model: "agenda", Modules: []string{"Agenda"}},
		{Model: "consulta", Modules: []string{"Consultas"}},
		{Model: "odontograma", Modules: []string{"Odontograma"}},
		{Model: "historia_clinica", Modules: []string{"Historia Clínica", "Plan Tratamiento"}},
		{Model: "examen_complementario", Modules: []string{"Exámenes Complementarios"}},
		{Model: "usuario", Modules: []string{"Usuarios"}},
	},
}

// ResolveVisibleModules computes the set of navigation modules the user
// may see: the always-visible set, the admin-only set when the role is
// administrative, and every module whose backing model grants read.
//
// The result is a set, so callers observe no iteration-order dependence.
// While a permissions fetch is still pending the caller passes an empty
// map; the resolver has no notion of loading, only of no grants yet.
func ResolveVisibleModules(role Role, m Map, cfg NavConfig) map[string]bool {
	visible := make(map[string]bool, len(cfg.AlwaysVisible))
	for _, module := range cfg.AlwaysVisible {
		visible[module] = true
	}

	if role.IsAdmin() {
		for _, module := range cfg.AdminOnly {
			visible[module] = true
		}
	}

	for _, mm := range cfg.ModelModules {
		if !CanRead(m, mm.Model) {
			continue
		}
		for _, module := range mm.Modules {
			visible[module] = true
		}
	}

	return visible
}

// VisibleModuleList returns the visible modules as a sorted slice for
// JSON responses.
func VisibleModuleList(role Role, m Map, cfg NavConfig) []string {
	visible := ResolveVisibleModules(role, m, cfg)
	out := make([]string, 0, len(visible))
	for module := range visible {
		out = append(out, module)
	}
	sort.Strings(out)
	return out
}
