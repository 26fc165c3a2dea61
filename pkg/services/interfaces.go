package services

import (
	"context"

	"khoomi-api-io/backoffice/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
)

// CategoryStore is the persistence capability the category engine works
// through. UpdateFields and UpdateManyByID apply a $set of the given fields.
type CategoryStore interface {
	FindByID(ctx context.Context, id string) (*models.Category, error)
	FindByParent(ctx context.Context, parentID string) ([]models.Category, error)
	Find(ctx context.Context, filter bson.M) ([]models.Category, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Insert(ctx context.Context, category models.Category) error
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	UpdateManyByID(ctx context.Context, ids []string, fields bson.M) error
}

// RoleStore is the persistence capability the role service works through.
type RoleStore interface {
	FindByID(ctx context.Context, id string) (*models.Role, error)
	Find(ctx context.Context, filter bson.M) ([]models.Role, error)
	Insert(ctx context.Context, role models.Role) error
	UpdateFields(ctx context.Context, id string, fields bson.M) error
}

// CacheNotifier tells other admin instances that cached views of a
// collection are stale. Failures are logged, never returned to callers.
type CacheNotifier interface {
	Notify(ctx context.Context, messageType string, payload string)
}

// CategoryService defines the interface for product category operations
type CategoryService interface {
	ListCategoryTree(ctx context.Context) ([]*models.CategoryNode, error)
	ListDeletedCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	GetCategoryAncestors(ctx context.Context, id string) ([]models.Category, error)

	CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, req models.CategoryUpdateRequest) error

	CascadeDelete(ctx context.Context, id string) (models.CascadeResult, error)
	Restore(ctx context.Context, id string) error
	ChangeStatus(ctx context.Context, id string, status string) error
	ChangeStatusMulti(ctx context.Context, ids []string, status string) error
}

// RoleService defines the interface for role and permission operations
type RoleService interface {
	ListRoles(ctx context.Context) ([]models.Role, error)
	GetRole(ctx context.Context, id string) (*models.Role, error)
	CreateRole(ctx context.Context, req models.RoleRequest) (*models.Role, error)
	UpdateRole(ctx context.Context, id string, req models.RoleUpdateRequest) error
	DeleteRole(ctx context.Context, id string) error

	ApplyPermissionBatch(ctx context.Context, raw []byte) ([]models.PermissionResult, error)
}
