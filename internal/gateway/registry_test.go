package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(context.Context, map[string]any) (any, error) {
	return nil, nil
}

// TestNewRegistry_RejectsDuplicates tests that duplicate names fail at startup
func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]*Operation{
		{Name: "get_scene", Handler: noopHandler},
		{Name: "get_scene", Handler: noopHandler},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate operation name")
}

// TestNewRegistry_RejectsEmptyName tests that a nameless operation fails
func TestNewRegistry_RejectsEmptyName(t *testing.T) {
	_, err := NewRegistry([]*Operation{{Handler: noopHandler}})
	require.Error(t, err)
}

// TestRegistry_LookupExactMatch tests exact-match lookup semantics
func TestRegistry_LookupExactMatch(t *testing.T) {
	registry, err := NewRegistry([]*Operation{
		{Name: "get_scene", Handler: noopHandler},
	})
	require.NoError(t, err)

	op, found := registry.Lookup("get_scene")
	assert.True(t, found)
	assert.Equal(t, "get_scene", op.Name)

	_, found = registry.Lookup("Get_Scene")
	assert.False(t, found, "lookups are exact-match")
}

// TestRegistry_ListSorted tests the discovery listing order
func TestRegistry_ListSorted(t *testing.T) {
	registry, err := NewRegistry([]*Operation{
		{Name: "get_scene", Handler: noopHandler},
		{Name: "create_scene", Handler: noopHandler},
		{Name: "list_scenes", Handler: noopHandler},
	})
	require.NoError(t, err)

	var names []string
	for _, op := range registry.List() {
		names = append(names, op.Name)
	}
	assert.Equal(t, []string{"create_scene", "get_scene", "list_scenes"}, names)
}

// TestRegistry_Suggest tests typo suggestions
func TestRegistry_Suggest(t *testing.T) {
	registry, err := NewRegistry([]*Operation{
		{Name: "create_scene", Handler: noopHandler},
		{Name: "delete_scene", Handler: noopHandler},
	})
	require.NoError(t, err)

	assert.Equal(t, "create_scene", registry.Suggest("create_scen"))
	assert.Equal(t, "create_scene", registry.Suggest("CREATE_SCENE"))
	assert.Equal(t, "", registry.Suggest("frobnicate"), "distant names get no suggestion")
}
