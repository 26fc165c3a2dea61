package services_test

import (
	"context"
	"sync"
	"time"

	"khoomi-api-io/backoffice/pkg/models"
	"khoomi-api-io/backoffice/pkg/services"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

type updateCall struct {
	ID     string
	Fields bson.M
}

// fakeCategoryStore is an in-memory CategoryStore that records updates and
// can be told to fail specific calls.
type fakeCategoryStore struct {
	mu         sync.Mutex
	order      []string
	records    map[string]*models.Category
	updates    []updateCall
	manyCalls  [][]string
	failUpdate map[string]error
	failParent map[string]error
}

func newFakeCategoryStore(categories ...models.Category) *fakeCategoryStore {
	s := &fakeCategoryStore{
		records:    map[string]*models.Category{},
		failUpdate: map[string]error{},
		failParent: map[string]error{},
	}
	for _, c := range categories {
		c := c
		s.order = append(s.order, c.ID)
		s.records[c.ID] = &c
	}
	return s
}

func (s *fakeCategoryStore) get(id string) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.records[id]
}

func (s *fakeCategoryStore) updatedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.updates))
	for _, u := range s.updates {
		ids = append(ids, u.ID)
	}
	return ids
}

func (s *fakeCategoryStore) FindByID(_ context.Context, id string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.records[id]
	if !ok {
		return nil, errors.Wrapf(services.ErrNotFound, "category %s", id)
	}
	out := *c
	return &out, nil
}

func (s *fakeCategoryStore) FindByParent(ctx context.Context, parentID string) ([]models.Category, error) {
	s.mu.Lock()
	err := s.failParent[parentID]
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.Find(ctx, bson.M{"parent_id": parentID})
}

func (s *fakeCategoryStore) Find(_ context.Context, filter bson.M) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Category{}
	for _, id := range s.order {
		c := s.records[id]
		if matches(c, filter) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeCategoryStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	found, err := s.Find(ctx, filter)
	return int64(len(found)), err
}

func (s *fakeCategoryStore) Insert(_ context.Context, category models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order, category.ID)
	s.records[category.ID] = &category
	return nil
}

func (s *fakeCategoryStore) UpdateFields(_ context.Context, id string, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, updateCall{ID: id, Fields: fields})
	if err := s.failUpdate[id]; err != nil {
		return err
	}
	c, ok := s.records[id]
	if !ok {
		return errors.Wrapf(services.ErrNotFound, "category %s", id)
	}
	apply(c, fields)
	return nil
}

func (s *fakeCategoryStore) UpdateManyByID(_ context.Context, ids []string, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manyCalls = append(s.manyCalls, ids)
	for _, id := range ids {
		if c, ok := s.records[id]; ok {
			apply(c, fields)
		}
	}
	return nil
}

func matches(c *models.Category, filter bson.M) bool {
	for key, want := range filter {
		switch key {
		case "deleted":
			if c.Deleted != want.(bool) {
				return false
			}
		case "parent_id":
			if c.ParentID != want.(string) {
				return false
			}
		case "slug":
			if c.Slug != want.(string) {
				return false
			}
		default:
			panic("fake store: unsupported filter " + key)
		}
	}
	return true
}

func apply(c *models.Category, fields bson.M) {
	for key, value := range fields {
		switch key {
		case "deleted":
			c.Deleted = value.(bool)
		case "deleted_at":
			t := value.(time.Time)
			c.DeletedAt = &t
		case "status":
			c.Status = value.(models.CategoryStatus)
		case "title":
			c.Title = value.(string)
		case "slug":
			c.Slug = value.(string)
		case "description":
			c.Description = value.(string)
		case "position":
			c.Position = value.(int)
		case "parent_id":
			c.ParentID = value.(string)
		case "modified_at":
			c.ModifiedAt = value.(time.Time)
		default:
			panic("fake store: unsupported field " + key)
		}
	}
}

type fakeRoleStore struct {
	mu         sync.Mutex
	records    map[string]*models.Role
	updates    []updateCall
	failUpdate map[string]error
}

func newFakeRoleStore(roles ...models.Role) *fakeRoleStore {
	s := &fakeRoleStore{records: map[string]*models.Role{}, failUpdate: map[string]error{}}
	for _, r := range roles {
		r := r
		s.records[r.ID] = &r
	}
	return s
}

func (s *fakeRoleStore) FindByID(_ context.Context, id string) (*models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return nil, errors.Wrapf(services.ErrNotFound, "role %s", id)
	}
	out := *r
	return &out, nil
}

func (s *fakeRoleStore) Find(_ context.Context, filter bson.M) ([]models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Role{}
	for _, r := range s.records {
		if deleted, ok := filter["deleted"]; ok && r.Deleted != deleted.(bool) {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *fakeRoleStore) Insert(_ context.Context, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[role.ID] = &role
	return nil
}

func (s *fakeRoleStore) UpdateFields(_ context.Context, id string, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, updateCall{ID: id, Fields: fields})
	if err := s.failUpdate[id]; err != nil {
		return err
	}
	r, ok := s.records[id]
	if !ok {
		return errors.Wrapf(services.ErrNotFound, "role %s", id)
	}
	for key, value := range fields {
		switch key {
		case "permissions":
			r.Permissions = value.([]string)
		case "name":
			r.Name = value.(string)
		case "description":
			r.Description = value.(string)
		case "deleted":
			r.Deleted = value.(bool)
		case "deleted_at":
			t := value.(time.Time)
			r.DeletedAt = &t
		case "modified_at":
			r.ModifiedAt = value.(time.Time)
		}
	}
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Notify(_ context.Context, messageType string, payload string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, messageType+":"+payload)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}
