package file

import (
	"fmt"
	"sort"

	"github.com/aretw0/kinetree/internal/dto"
	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// InertiaTable implements ports.InertiaProvider from a role-keyed table.
type InertiaTable map[string]domain.InertiaParameters

// InertiaFor returns the parameters of a role.
func (t InertiaTable) InertiaFor(role string) (domain.InertiaParameters, bool) {
	p, ok := t[role]
	return p, ok
}

// Roles lists the roles in the table, sorted.
func (t InertiaTable) Roles() []string {
	roles := make([]string, 0, len(t))
	for r := range t {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	return roles
}

// LoadInertiaTable reads a YAML or JSON file of the form
//
//	pelvis: {mass: 9.2, center_of_mass: [0, 0, 0.05], inertia: [0.08, 0.07, 0.06]}
func LoadInertiaTable(path string) (InertiaTable, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inertia table %s: %w", path, err)
	}
	var entries map[string]dto.InertiaEntry
	if err := mapstructure.WeakDecode(doc, &entries); err != nil {
		return nil, fmt.Errorf("invalid inertia table %s: %w", path, err)
	}
	table := make(InertiaTable, len(entries))
	for role, e := range entries {
		p, err := InertiaFromEntry(e)
		if err != nil {
			return nil, fmt.Errorf("inertia table %s: role %s: %w", path, role, err)
		}
		table[role] = p
	}
	return table, nil
}
