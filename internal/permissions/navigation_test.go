package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var navTestConfig = NavConfig{
	AlwaysVisible: []string{"Dashboard"},
	AdminOnly:     []string{"Parametros"},
	ModelModules: []ModelModules{
		{Model: "paciente", Modules: []string{"Pacientes"}},
		{Model: "historia_clinica", Modules: []string{"Historia Clínica", "Plan Tratamiento"}},
		{Model: "agenda", Modules: []string{"Agenda"}},
	},
}

func TestResolveVisibleModulesNoGrants(t *testing.T) {
	visible := ResolveVisibleModules(RoleAssistant, Map{}, navTestConfig)

	assert.Equal(t, map[string]bool{"Dashboard": true}, visible)
}

func TestResolveVisibleModulesReadUnlocksModule(t *testing.T) {
	records := []Record{{Model: "paciente", Methods: []string{"get", "post"}}}
	m := BuildMap(RoleAssistant, records, KnownModels)

	assert.True(t, CanRead(m, "paciente"))
	assert.True(t, CanCreate(m, "paciente"))
	assert.False(t, CanEdit(m, "paciente"))
	assert.False(t, CanDelete(m, "paciente"))

	visible := ResolveVisibleModules(RoleAssistant, m, navTestConfig)
	assert.Equal(t, map[string]bool{"Dashboard": true, "Pacientes": true}, visible)
}

func TestResolveVisibleModulesWriteOnlyGrantDoesNotUnlock(t *testing.T) {
	records := []Record{{Model: "paciente", Methods: []string{"POST", "PUT"}}}
	m := BuildMap(RoleDentist, records, KnownModels)

	visible := ResolveVisibleModules(RoleDentist, m, navTestConfig)
	assert.Equal(t, map[string]bool{"Dashboard": true}, visible)
}

func TestResolveVisibleModulesMultiModuleModel(t *testing.T) {
	records := []Record{{Model: "historia_clinica", Methods: []string{"GET"}}}
	m := BuildMap(RoleDentist, records, KnownModels)

	visible := ResolveVisibleModules(RoleDentist, m, navTestConfig)
	assert.True(t, visible["Historia Clínica"])
	assert.True(t, visible["Plan Tratamiento"])
	assert.False(t, visible["Pacientes"])
}

func TestResolveVisibleModulesAdmin(t *testing.T) {
	known := []string{"usuario", "paciente", "agenda"}
	cfg := NavConfig{
		AlwaysVisible: []string{"Dashboard"},
		AdminOnly:     []string{"Parametros"},
		ModelModules: []ModelModules{
			{Model: "usuario", Modules: []string{"Usuarios"}},
			{Model: "paciente", Modules: []string{"Pacientes"}},
			{Model: "agenda", Modules: []string{"Agenda"}},
		},
	}

	m := BuildMap(RoleAdministrator, nil, known)
	visible := ResolveVisibleModules(RoleAdministrator, m, cfg)

	for _, module := range []string{"Dashboard", "Parametros", "Usuarios", "Pacientes", "Agenda"} {
		assert.True(t, visible[module], "module %s", module)
	}
}

func TestResolveVisibleModulesUnknownModelIgnored(t *testing.T) {
	// A model outside the static table still works for predicates but
	// contributes nothing to navigation.
	records := []Record{{Model: "laboratorio", Methods: []string{"GET"}}}
	m := BuildMap(RoleDentist, records, KnownModels)

	assert.True(t, CanRead(m, "laboratorio"))

	visible := ResolveVisibleModules(RoleDentist, m, navTestConfig)
	assert.Equal(t, map[string]bool{"Dashboard": true}, visible)
}

func TestVisibleModuleListSorted(t *testing.T) {
	records := []Record{
		{Model: "paciente", Methods: []string{"GET"}},
		{Model: "agenda", Methods: []string{"GET"}},
	}
	m := BuildMap(RoleAssistant, records, KnownModels)

	list := VisibleModuleList(RoleAssistant, m, navTestConfig)
	assert.Equal(t, []string{"Agenda", "Dashboard", "Pacientes"}, list)
}
