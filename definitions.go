package indexer

import (
	"khoomi-api-io/backoffice/internal/common"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WithBackofficeIndexes registers the indexes the category engine and role
// service query by: children lookups by parent, trash and live listings by
// the deleted flag, and slug uniqueness.
func (m *Manager) WithBackofficeIndexes() *Manager {
	categories := common.CategoryCollectionName
	roles := common.RoleCollectionName

	m.AddIndex(categories, mongo.IndexModel{
		Keys:    keysOf("parent_id", "position"),
		Options: options.Index().SetName("category_parent_position"),
	})
	m.AddIndex(categories, mongo.IndexModel{
		Keys:    keysOf("deleted", "position"),
		Options: options.Index().SetName("category_deleted_position"),
	})
	m.AddIndex(categories, mongo.IndexModel{
		Keys:    keysOf("status"),
		Options: options.Index().SetName("category_status"),
	})
	m.AddIndex(categories, mongo.IndexModel{
		Keys:    keysOf("slug"),
		Options: options.Index().SetName("category_slug_unique").SetUnique(true),
	})

	m.AddIndex(roles, mongo.IndexModel{
		Keys:    keysOf("deleted", "created_at"),
		Options: options.Index().SetName("role_deleted_created"),
	})
	m.AddIndex(roles, mongo.IndexModel{
		Keys:    keysOf("name"),
		Options: options.Index().SetName("role_name"),
	})
	return m
}
