package services

import (
	"context"

	"khoomi-api-io/backoffice/pkg/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCategoryStore keeps categories in a single flat collection linked by
// parent_id.
type MongoCategoryStore struct {
	categoryCollection *mongo.Collection
}

func NewMongoCategoryStore(collection *mongo.Collection) *MongoCategoryStore {
	return &MongoCategoryStore{categoryCollection: collection}
}

func (s *MongoCategoryStore) FindByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := s.categoryCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.Wrapf(ErrNotFound, "category %s", id)
		}
		return nil, err
	}
	return &category, nil
}

func (s *MongoCategoryStore) FindByParent(ctx context.Context, parentID string) ([]models.Category, error) {
	return s.Find(ctx, bson.M{"parent_id": parentID})
}

func (s *MongoCategoryStore) Find(ctx context.Context, filter bson.M) ([]models.Category, error) {
	find := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := s.categoryCollection.Find(ctx, filter, find)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *MongoCategoryStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.categoryCollection.CountDocuments(ctx, filter)
}

func (s *MongoCategoryStore) Insert(ctx context.Context, category models.Category) error {
	_, err := s.categoryCollection.InsertOne(ctx, category)
	return err
}

func (s *MongoCategoryStore) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	res, err := s.categoryCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(ErrNotFound, "category %s", id)
	}
	return nil
}

func (s *MongoCategoryStore) UpdateManyByID(ctx context.Context, ids []string, fields bson.M) error {
	_, err := s.categoryCollection.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, bson.M{"$set": fields})
	return err
}

// MongoRoleStore keeps roles with their permission keys embedded.
type MongoRoleStore struct {
	roleCollection *mongo.Collection
}

func NewMongoRoleStore(collection *mongo.Collection) *MongoRoleStore {
	return &MongoRoleStore{roleCollection: collection}
}

func (s *MongoRoleStore) FindByID(ctx context.Context, id string) (*models.Role, error) {
	var role models.Role
	err := s.roleCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&role)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.Wrapf(ErrNotFound, "role %s", id)
		}
		return nil, err
	}
	return &role, nil
}

func (s *MongoRoleStore) Find(ctx context.Context, filter bson.M) ([]models.Role, error) {
	find := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.roleCollection.Find(ctx, filter, find)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	roles := []models.Role{}
	if err = cursor.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *MongoRoleStore) Insert(ctx context.Context, role models.Role) error {
	_, err := s.roleCollection.InsertOne(ctx, role)
	return err
}

func (s *MongoRoleStore) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	res, err := s.roleCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(ErrNotFound, "role %s", id)
	}
	return nil
}
