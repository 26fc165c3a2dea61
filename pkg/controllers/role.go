package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"khoomi-api-io/backoffice/internal/common"
	"khoomi-api-io/backoffice/pkg/models"
	"khoomi-api-io/backoffice/pkg/services"
	"khoomi-api-io/backoffice/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type RoleController struct {
	roleService services.RoleService
}

func InitRoleController(roleService services.RoleService) *RoleController {
	return &RoleController{
		roleService: roleService,
	}
}

func (rc *RoleController) GetRoles() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		roles, err := rc.roleService.ListRoles(ctx)
		if err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Roles retrieved successfully", roles)
	}
}

func (rc *RoleController) GetRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		role, err := rc.roleService.GetRole(ctx, c.Param("id"))
		if err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Role retrieved successfully", role)
	}
}

func (rc *RoleController) CreateRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		var req models.RoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		role, err := rc.roleService.CreateRole(ctx, req)
		if err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusCreated, "Role created", role)
	}
}

func (rc *RoleController) UpdateRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		var req models.RoleUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		if err := rc.roleService.UpdateRole(ctx, c.Param("id"), req); err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Role updated", nil)
	}
}

func (rc *RoleController) DeleteRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		if err := rc.roleService.DeleteRole(ctx, c.Param("id")); err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Role deleted", nil)
	}
}

// UpdatePermissions handles PATCH /roles/permissions. Every entry gets its
// own result; the status tells whether all, some or none were applied.
func (rc *RoleController) UpdatePermissions() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		raw, err := permissionPayload(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}

		results, err := rc.roleService.ApplyPermissionBatch(ctx, raw)
		if err != nil {
			HandleServiceError(c, err)
			return
		}

		failed := 0
		for _, result := range results {
			if !result.Success {
				failed++
			}
		}
		meta := gin.H{"total": len(results), "failed": failed}

		switch {
		case failed == 0:
			util.HandleSuccessMeta(c, http.StatusOK, "Permissions updated", results, meta)
		case failed < len(results):
			util.HandleSuccessMeta(c, http.StatusMultiStatus, "Permissions partially updated", results, meta)
		default:
			util.HandleErrorData(c, http.StatusInternalServerError, fmt.Errorf("no role permissions were updated"), results)
		}
	}
}

// permissionPayload extracts the batch from either the admin form field or a
// JSON body. A JSON object with a "permissions" member yields that member;
// any other body is handed over as is.
func permissionPayload(c *gin.Context) ([]byte, error) {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		return []byte(c.PostForm(common.PERMISSION_FORM_KEY)), nil
	}

	data, err := c.GetRawData()
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var body map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &body); err == nil {
			if permissions, ok := body[common.PERMISSION_FORM_KEY]; ok {
				return permissions, nil
			}
		}
	}
	return data, nil
}
