package routers

import (
	"khoomi-api-io/backoffice/config"
	"khoomi-api-io/backoffice/internal/container"
	"khoomi-api-io/backoffice/internal/middleware"
	"khoomi-api-io/backoffice/pkg/controllers"

	"github.com/gin-gonic/gin"
)

// InitRoute creates the back-office router over the wired services
func InitRoute(cfg *config.Config, serviceContainer *container.ServiceContainer) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CorsMiddleware())

	api := router.Group("/v1", middleware.BackofficeRateLimiter(serviceContainer.Redis, cfg.RateLimit))
	{
		api.GET("/ping", controllers.Ping)

		admin := api.Group("/admin")
		categoryRoutes(admin, serviceContainer)
		roleRoutes(admin, serviceContainer)
	}

	return router
}

// categoryRoutes configures product category endpoints
func categoryRoutes(admin *gin.RouterGroup, serviceContainer *container.ServiceContainer) {
	category := admin.Group("/categories")
	categoryController := serviceContainer.GetCategoryController()

	category.GET("", categoryController.GetCategoryTree())
	category.GET("/trash", categoryController.GetDeletedCategories())
	category.POST("", categoryController.CreateCategory())
	category.PATCH("/status", categoryController.ChangeStatusMulti())

	category.GET("/:id", categoryController.GetCategory())
	category.GET("/:id/ancestors", categoryController.GetCategoryAncestors())
	category.PATCH("/:id", categoryController.UpdateCategory())
	category.DELETE("/:id", categoryController.DeleteCategory())
	category.PATCH("/:id/restore", categoryController.RestoreCategory())
	category.PATCH("/:id/status/:status", categoryController.ChangeStatus())
}

// roleRoutes configures role and permission endpoints
func roleRoutes(admin *gin.RouterGroup, serviceContainer *container.ServiceContainer) {
	role := admin.Group("/roles")
	roleController := serviceContainer.GetRoleController()

	role.GET("", roleController.GetRoles())
	role.POST("", roleController.CreateRole())
	role.PATCH("/permissions", roleController.UpdatePermissions())

	role.GET("/:id", roleController.GetRole())
	role.PATCH("/:id", roleController.UpdateRole())
	role.DELETE("/:id", roleController.DeleteRole())
}
