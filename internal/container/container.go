package container

import (
	"khoomi-api-io/backoffice/config"
	"khoomi-api-io/backoffice/internal"
	"khoomi-api-io/backoffice/internal/common"
	"khoomi-api-io/backoffice/pkg/controllers"
	"khoomi-api-io/backoffice/pkg/services"
	"khoomi-api-io/backoffice/pkg/util"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type ServiceContainer struct {
	Redis *redis.Client

	CategoryService services.CategoryService
	RoleService     services.RoleService

	CategoryController *controllers.CategoryController
	RoleController     *controllers.RoleController
}

func NewServiceContainer(cfg *config.Config, db *mongo.Client, rdb *redis.Client) *ServiceContainer {
	publisher := internal.NewCachePublisher(rdb, cfg.CacheChannel)

	categoryStore := services.NewMongoCategoryStore(util.GetCollection(db, cfg.DBName, common.CategoryCollectionName))
	roleStore := services.NewMongoRoleStore(util.GetCollection(db, cfg.DBName, common.RoleCollectionName))

	categoryService := services.NewCategoryService(categoryStore, publisher, services.CategoryServiceOptions{
		CascadeConcurrency: cfg.CascadeConcurrency,
	})
	roleService := services.NewRoleService(roleStore, publisher)

	return &ServiceContainer{
		Redis: rdb,

		CategoryService: categoryService,
		RoleService:     roleService,

		CategoryController: controllers.InitCategoryController(categoryService),
		RoleController:     controllers.InitRoleController(roleService),
	}
}

// GetCategoryController returns the category controller instance
func (sc *ServiceContainer) GetCategoryController() *controllers.CategoryController {
	return sc.CategoryController
}

// GetRoleController returns the role controller instance
func (sc *ServiceContainer) GetRoleController() *controllers.RoleController {
	return sc.RoleController
}
