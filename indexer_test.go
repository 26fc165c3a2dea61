package indexer

import (
	"testing"

	"khoomi-api-io/backoffice/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestWithBackofficeIndexes(t *testing.T) {
	m := NewManager(nil, nil).WithBackofficeIndexes()

	names := map[string]string{}
	for _, def := range m.Definitions() {
		require.NotNil(t, def.Index.Options)
		require.NotNil(t, def.Index.Options.Name)
		names[*def.Index.Options.Name] = def.Collection
	}

	assert.Equal(t, common.CategoryCollectionName, names["category_parent_position"])
	assert.Equal(t, common.CategoryCollectionName, names["category_deleted_position"])
	assert.Equal(t, common.RoleCollectionName, names["role_deleted_created"])
	assert.Equal(t, []string{common.CategoryCollectionName, common.RoleCollectionName}, m.collections())
}

func TestSlugIndexIsUnique(t *testing.T) {
	m := NewManager(nil, nil).WithBackofficeIndexes()

	for _, def := range m.Definitions() {
		if *def.Index.Options.Name == "category_slug_unique" {
			require.NotNil(t, def.Index.Options.Unique)
			assert.True(t, *def.Index.Options.Unique)
			return
		}
	}
	t.Fatal("slug index not registered")
}

func TestKeysOf(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "parent_id", Value: 1}, {Key: "position", Value: 1}}, keysOf("parent_id", "position"))
	assert.Empty(t, keysOf())
}

func TestDefaultOptions(t *testing.T) {
	m := NewManager(nil, nil)

	assert.True(t, m.options.ContinueOnError)
	assert.True(t, m.options.SkipIfExists)
	assert.Positive(t, m.options.Timeout)
}

func TestWithBackofficeMigrations(t *testing.T) {
	mm := NewMigrationManager(nil).WithBackofficeMigrations()

	require.Len(t, mm.migrations, 3)
	seen := map[string]bool{}
	for _, migration := range mm.migrations {
		assert.NotNil(t, migration.Up, migration.Version)
		assert.NotEmpty(t, migration.Description)
		assert.False(t, seen[migration.Version], "duplicate version %s", migration.Version)
		seen[migration.Version] = true
	}
}
