package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"khoomi-api-io/backoffice/internal/common"
	"khoomi-api-io/backoffice/pkg/models"
	"khoomi-api-io/backoffice/pkg/util"

	slug2 "github.com/gosimple/slug"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	CacheInvalidateCategories = "categories.invalidate"
	CacheInvalidateRoles      = "roles.invalidate"
)

type CategoryServiceOptions struct {
	// CascadeConcurrency bounds the number of in-flight delete marks.
	// Values below 2 mark members one by one in closure order.
	CascadeConcurrency int
}

// CategoryServiceImpl implements the CategoryService interface
type CategoryServiceImpl struct {
	store    CategoryStore
	notifier CacheNotifier
	options  CategoryServiceOptions
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(store CategoryStore, notifier CacheNotifier, opts CategoryServiceOptions) CategoryService {
	return &CategoryServiceImpl{
		store:    store,
		notifier: notifier,
		options:  opts,
	}
}

// ListCategoryTree returns live categories nested from the root.
func (s *CategoryServiceImpl) ListCategoryTree(ctx context.Context) ([]*models.CategoryNode, error) {
	categories, err := s.store.Find(ctx, bson.M{"deleted": false})
	if err != nil {
		return nil, storeError(err, "list categories")
	}
	return BuildCategoryTree(categories, ""), nil
}

func (s *CategoryServiceImpl) ListDeletedCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.Find(ctx, bson.M{"deleted": true})
	if err != nil {
		return nil, storeError(err, "list deleted categories")
	}
	return categories, nil
}

func (s *CategoryServiceImpl) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "get category %s", id)
	}
	if category.Deleted {
		return nil, errors.Wrapf(ErrNotFound, "category %s is deleted", id)
	}
	return category, nil
}

// GetCategoryAncestors returns the parent chain of a category, root first.
// The walk stops at a missing parent or when a parent repeats.
func (s *CategoryServiceImpl) GetCategoryAncestors(ctx context.Context, id string) ([]models.Category, error) {
	category, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "get category %s", id)
	}

	seen := map[string]bool{category.ID: true}
	var ancestors []models.Category
	parentID := category.ParentID
	for parentID != "" && !seen[parentID] {
		parent, err := s.store.FindByID(ctx, parentID)
		if errors.Is(err, ErrNotFound) {
			break
		}
		if err != nil {
			return nil, storeError(err, "get ancestor %s", parentID)
		}
		seen[parent.ID] = true
		ancestors = append([]models.Category{*parent}, ancestors...)
		parentID = parent.ParentID
	}

	return ancestors, nil
}

// CreateCategory inserts a category. A missing position becomes count+1.
func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	if err := common.Validate.Struct(&req); err != nil {
		return nil, withKind(ErrInvalidArgument, err)
	}

	status := models.CategoryStatusActive
	if req.Status != "" {
		parsed, err := models.ParseCategoryStatus(req.Status)
		if err != nil {
			return nil, withKind(ErrInvalidArgument, err)
		}
		status = parsed
	}

	if req.ParentID != "" {
		if _, err := s.store.FindByID(ctx, req.ParentID); err != nil {
			return nil, storeError(err, "parent category %s", req.ParentID)
		}
	}

	position := req.Position
	if position <= 0 {
		count, err := s.store.Count(ctx, bson.M{})
		if err != nil {
			return nil, storeError(err, "count categories")
		}
		position = int(count) + 1
	}

	now := time.Now()
	id := primitive.NewObjectID().Hex()
	slug, err := s.uniqueSlug(ctx, id, req.Title)
	if err != nil {
		return nil, err
	}

	category := models.Category{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		Position:    position,
		Status:      status,
		CreatedAt:   now,
		ModifiedAt:  now,
	}
	if err := s.store.Insert(ctx, category); err != nil {
		return nil, storeError(err, "insert category")
	}

	s.notify(ctx, category.ID)
	return &category, nil
}

// UpdateCategory applies the non-nil fields of req. Moving a category under
// itself or one of its descendants is rejected.
func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, id string, req models.CategoryUpdateRequest) error {
	if err := common.Validate.Struct(&req); err != nil {
		return withKind(ErrInvalidArgument, err)
	}

	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return storeError(err, "get category %s", id)
	}

	fields := bson.M{}
	if req.Title != nil && strings.TrimSpace(*req.Title) != current.Title {
		slug, err := s.uniqueSlug(ctx, id, *req.Title)
		if err != nil {
			return err
		}
		fields["title"] = strings.TrimSpace(*req.Title)
		fields["slug"] = slug
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Position != nil && *req.Position > 0 {
		fields["position"] = *req.Position
	}
	if req.Status != nil {
		status, err := models.ParseCategoryStatus(*req.Status)
		if err != nil {
			return withKind(ErrInvalidArgument, err)
		}
		fields["status"] = status
	}
	if req.ParentID != nil && *req.ParentID != current.ParentID {
		if err := s.validateParent(ctx, id, *req.ParentID); err != nil {
			return err
		}
		fields["parent_id"] = *req.ParentID
	}

	if len(fields) == 0 {
		return nil
	}
	fields["modified_at"] = time.Now()

	if err := s.store.UpdateFields(ctx, id, fields); err != nil {
		return storeError(err, "update category %s", id)
	}

	s.notify(ctx, id)
	return nil
}

func (s *CategoryServiceImpl) validateParent(ctx context.Context, id, parentID string) error {
	if parentID == "" {
		return nil
	}
	if parentID == id {
		return withKind(ErrInvalidArgument, errors.New("a category cannot be its own parent"))
	}
	if _, err := s.store.FindByID(ctx, parentID); err != nil {
		return storeError(err, "parent category %s", parentID)
	}

	closure, failures := s.descendants(ctx, id)
	if len(failures) > 0 {
		return errors.Wrapf(ErrStore, "list descendants of %s: %s", failures[0].ID, failures[0].Error)
	}
	for _, descendant := range closure {
		if descendant == parentID {
			return withKind(ErrInvalidArgument, errors.Errorf("category %s is a descendant of %s", parentID, id))
		}
	}
	return nil
}

// CascadeDelete soft deletes a category and every descendant. Each member is
// marked by its own update and failures do not undo earlier marks.
func (s *CategoryServiceImpl) CascadeDelete(ctx context.Context, id string) (models.CascadeResult, error) {
	var result models.CascadeResult

	if _, err := s.store.FindByID(ctx, id); err != nil {
		return result, storeError(err, "cascade delete %s", id)
	}

	closure, failures := s.descendants(ctx, id)
	result.Failed = append(result.Failed, failures...)

	members := append([]string{id}, closure...)
	fields := bson.M{"deleted": true, "deleted_at": time.Now()}
	s.markEach(ctx, members, fields, &result)

	logEvent := util.Log.Info()
	if len(result.Failed) > 0 {
		logEvent = util.Log.Warn()
	}
	logEvent.
		Str("category_id", id).
		Int("members", len(members)).
		Int("affected", result.Affected).
		Int("failed", len(result.Failed)).
		Msg("category cascade delete")

	if result.Affected > 0 {
		s.notify(ctx, id)
	}

	if len(result.Failed) > 0 {
		return result, errors.Wrapf(ErrStore, "cascade delete %s: %d member operations failed", id, len(result.Failed))
	}
	return result, nil
}

// descendants computes the descendant closure of id breadth first, one
// FindByParent per expanded node. A node whose children cannot be listed is
// reported and its subtree skipped.
func (s *CategoryServiceImpl) descendants(ctx context.Context, id string) ([]string, []models.CascadeFailure) {
	var closure []string
	var failures []models.CascadeFailure

	visited := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := s.store.FindByParent(ctx, current)
		if err != nil {
			failures = append(failures, models.CascadeFailure{ID: current, Error: err.Error()})
			continue
		}
		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			closure = append(closure, child.ID)
			queue = append(queue, child.ID)
		}
	}

	return closure, failures
}

func (s *CategoryServiceImpl) markEach(ctx context.Context, ids []string, fields bson.M, result *models.CascadeResult) {
	if s.options.CascadeConcurrency < 2 {
		for _, id := range ids {
			if err := s.store.UpdateFields(ctx, id, fields); err != nil {
				result.Failed = append(result.Failed, models.CascadeFailure{ID: id, Error: err.Error()})
				continue
			}
			result.Affected++
		}
		return
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.options.CascadeConcurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			err := s.store.UpdateFields(ctx, id, fields)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, models.CascadeFailure{ID: id, Error: err.Error()})
				return nil
			}
			result.Affected++
			return nil
		})
	}
	_ = g.Wait()
}

// Restore clears the deleted flag of a single category. Descendants removed
// by the same cascade stay deleted.
func (s *CategoryServiceImpl) Restore(ctx context.Context, id string) error {
	if err := s.store.UpdateFields(ctx, id, bson.M{"deleted": false}); err != nil {
		return storeError(err, "restore category %s", id)
	}
	s.notify(ctx, id)
	return nil
}

func (s *CategoryServiceImpl) ChangeStatus(ctx context.Context, id string, status string) error {
	parsed, err := models.ParseCategoryStatus(status)
	if err != nil {
		return withKind(ErrInvalidArgument, err)
	}

	if err := s.store.UpdateFields(ctx, id, bson.M{"status": parsed}); err != nil {
		return storeError(err, "change status of category %s", id)
	}
	s.notify(ctx, id)
	return nil
}

func (s *CategoryServiceImpl) ChangeStatusMulti(ctx context.Context, ids []string, status string) error {
	parsed, err := models.ParseCategoryStatus(status)
	if err != nil {
		return withKind(ErrInvalidArgument, err)
	}
	if len(ids) == 0 {
		return withKind(ErrInvalidArgument, errors.New("no category ids given"))
	}

	fields := bson.M{"status": parsed, "modified_at": time.Now()}
	if err := s.store.UpdateManyByID(ctx, ids, fields); err != nil {
		return storeError(err, "change status of %d categories", len(ids))
	}
	s.notify(ctx, strings.Join(ids, ","))
	return nil
}

// uniqueSlug derives a slug from title, suffixing part of the id when another
// category already owns it.
func (s *CategoryServiceImpl) uniqueSlug(ctx context.Context, id, title string) (string, error) {
	slug := slug2.Make(strings.ToLower(strings.Replace(title, "'", "", -1)))
	if slug == "" {
		slug = id
	}

	owners, err := s.store.Find(ctx, bson.M{"slug": slug})
	if err != nil {
		return "", storeError(err, "check slug %s", slug)
	}
	for _, owner := range owners {
		if owner.ID != id {
			suffix := id
			if len(suffix) > 6 {
				suffix = suffix[len(suffix)-6:]
			}
			return slug + "-" + suffix, nil
		}
	}
	return slug, nil
}

func (s *CategoryServiceImpl) notify(ctx context.Context, payload string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, CacheInvalidateCategories, payload)
}
