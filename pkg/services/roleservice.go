package services

import (
	"context"
	"strings"
	"time"

	"khoomi-api-io/backoffice/internal/common"
	"khoomi-api-io/backoffice/pkg/models"
	"khoomi-api-io/backoffice/pkg/util"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleServiceImpl implements the RoleService interface
type RoleServiceImpl struct {
	store    RoleStore
	notifier CacheNotifier
}

// NewRoleService creates a new instance of RoleService
func NewRoleService(store RoleStore, notifier CacheNotifier) RoleService {
	return &RoleServiceImpl{
		store:    store,
		notifier: notifier,
	}
}

func (s *RoleServiceImpl) ListRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.store.Find(ctx, bson.M{"deleted": false})
	if err != nil {
		return nil, storeError(err, "list roles")
	}
	return roles, nil
}

func (s *RoleServiceImpl) GetRole(ctx context.Context, id string) (*models.Role, error) {
	role, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "get role %s", id)
	}
	if role.Deleted {
		return nil, errors.Wrapf(ErrNotFound, "role %s is deleted", id)
	}
	return role, nil
}

func (s *RoleServiceImpl) CreateRole(ctx context.Context, req models.RoleRequest) (*models.Role, error) {
	if err := common.Validate.Struct(&req); err != nil {
		return nil, withKind(ErrInvalidArgument, err)
	}

	now := time.Now()
	role := models.Role{
		ID:          primitive.NewObjectID().Hex(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Permissions: uniquePermissions(req.Permissions),
		CreatedAt:   now,
		ModifiedAt:  now,
	}
	if err := s.store.Insert(ctx, role); err != nil {
		return nil, storeError(err, "insert role")
	}

	s.notify(ctx, role.ID)
	return &role, nil
}

func (s *RoleServiceImpl) UpdateRole(ctx context.Context, id string, req models.RoleUpdateRequest) error {
	if err := common.Validate.Struct(&req); err != nil {
		return withKind(ErrInvalidArgument, err)
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		return nil
	}
	fields["modified_at"] = time.Now()

	if err := s.store.UpdateFields(ctx, id, fields); err != nil {
		return storeError(err, "update role %s", id)
	}
	s.notify(ctx, id)
	return nil
}

func (s *RoleServiceImpl) DeleteRole(ctx context.Context, id string) error {
	fields := bson.M{"deleted": true, "deleted_at": time.Now()}
	if err := s.store.UpdateFields(ctx, id, fields); err != nil {
		return storeError(err, "delete role %s", id)
	}
	s.notify(ctx, id)
	return nil
}

// ApplyPermissionBatch replaces the permission set of every role named in
// raw. A payload that does not decode fails before any write. Otherwise each
// entry is applied in order and reported on its own, so a role named twice
// ends with the later entry's permissions.
func (s *RoleServiceImpl) ApplyPermissionBatch(ctx context.Context, raw []byte) ([]models.PermissionResult, error) {
	assignments, err := ParsePermissionBatch(raw)
	if err != nil {
		return nil, err
	}

	results := make([]models.PermissionResult, 0, len(assignments))
	failed := 0
	for _, assignment := range assignments {
		fields := bson.M{"permissions": assignment.Permissions, "modified_at": time.Now()}
		if err := s.store.UpdateFields(ctx, assignment.RoleID, fields); err != nil {
			failed++
			results = append(results, models.PermissionResult{
				RoleID: assignment.RoleID,
				Error:  storeError(err, "update permissions of role %s", assignment.RoleID).Error(),
			})
			continue
		}
		results = append(results, models.PermissionResult{RoleID: assignment.RoleID, Success: true})
	}

	util.Log.Info().
		Int("entries", len(assignments)).
		Int("failed", failed).
		Msg("role permission batch applied")

	if failed < len(assignments) {
		s.notify(ctx, "permissions")
	}
	return results, nil
}

func (s *RoleServiceImpl) notify(ctx context.Context, payload string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, CacheInvalidateRoles, payload)
}
