package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	entities := Catalog()
	require.Len(t, entities, 15)

	seen := make(map[string]bool, len(entities))
	for _, e := range entities {
		assert.NotEmpty(t, e.Name)
		assert.NotNil(t, e.Model)
		assert.False(t, seen[e.Name], "duplicate entity name %s", e.Name)
		seen[e.Name] = true
	}

	names := EntityNames()
	require.Len(t, names, len(entities))
	for i, e := range entities {
		assert.Equal(t, e.Name, names[i])
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	first := Catalog()
	first[0] = Entity{Name: "Mutated", Model: nil}

	second := Catalog()
	assert.Equal(t, EntityPatient, second[0].Name)
}

// The binder must build its handles from the identical definitions the
// provisioner materializes, not a second copy that can drift.
func TestBinderAndProvisionerShareDefinitions(t *testing.T) {
	db, _ := newMockDB(t)

	set := NewHandleSet("tenant_acme_clinic_1700000000000", db)
	for _, entity := range Catalog() {
		handle := set.Handle(entity.Name)
		require.NotNil(t, handle, "missing handle for %s", entity.Name)
		assert.Same(t, entity.Model, handle.Statement.Model,
			"handle for %s is not bound to the catalog model", entity.Name)
	}
}
