package controllers

import (
	"net/http"

	"khoomi-api-io/backoffice/pkg/models"
	"khoomi-api-io/backoffice/pkg/services"
	"khoomi-api-io/backoffice/pkg/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService services.CategoryService
}

func InitCategoryController(categoryService services.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

// GetCategoryTree handles GET /categories
func (cc *CategoryController) GetCategoryTree() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		tree, err := cc.categoryService.ListCategoryTree(ctx)
		if err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Categories retrieved successfully", tree)
	}
}

// GetDeletedCategories handles GET /categories/trash
func (cc *CategoryController) GetDeletedCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		categories, err := cc.categoryService.ListDeletedCategories(ctx)
		if err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccessMeta(c, http.StatusOK, "Deleted categories retrieved successfully", categories, gin.H{
			"count": len(categories),
		})
	}
}

func (cc *CategoryController) GetCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		category, err := cc.categoryService.GetCategory(ctx, c.Param("id"))
		if err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Category retrieved successfully", category)
	}
}

func (cc *CategoryController) GetCategoryAncestors() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		ancestors, err := cc.categoryService.GetCategoryAncestors(ctx, c.Param("id"))
		if err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Category ancestors retrieved successfully", ancestors)
	}
}

func (cc *CategoryController) CreateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		var req models.CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		category, err := cc.categoryService.CreateCategory(ctx, req)
		if err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusCreated, "Category created", category)
	}
}

func (cc *CategoryController) UpdateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		var req models.CategoryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		if err := cc.categoryService.UpdateCategory(ctx, c.Param("id"), req); err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Category updated", nil)
	}
}

// DeleteCategory handles DELETE /categories/:id. Members that failed are
// listed in the response next to the affected count.
func (cc *CategoryController) DeleteCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		result, err := cc.categoryService.CascadeDelete(ctx, c.Param("id"))
		if err != nil && result.Affected == 0 {
			HandleServiceError(c, err)
			return
		}
		if err != nil {
			util.HandleSuccess(c, http.StatusMultiStatus, "Category partially deleted", result)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Category deleted", result)
	}
}

func (cc *CategoryController) RestoreCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		if err := cc.categoryService.Restore(ctx, c.Param("id")); err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Category restored", nil)
	}
}

// ChangeStatus handles PATCH /categories/:id/status/:status
func (cc *CategoryController) ChangeStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		if err := cc.categoryService.ChangeStatus(ctx, c.Param("id"), c.Param("status")); err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Category status updated", nil)
	}
}

// ChangeStatusMulti handles PATCH /categories/status
func (cc *CategoryController) ChangeStatusMulti() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		var req models.CategoryStatusMultiRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		if err := cc.categoryService.ChangeStatusMulti(ctx, req.IDs, req.Status); err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccessMeta(c, http.StatusOK, "Categories status updated", nil, gin.H{
			"count": len(req.IDs),
		})
	}
}
