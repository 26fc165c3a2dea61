package indexer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"khoomi-api-io/backoffice/internal/common"
	"khoomi-api-io/backoffice/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const migrationCollection = "_backoffice_migrations"

type MigrationManager struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrationManager(db *mongo.Database) *MigrationManager {
	return &MigrationManager{
		db:         db,
		migrations: []Migration{},
	}
}

func (mm *MigrationManager) AddMigration(migration Migration) *MigrationManager {
	mm.migrations = append(mm.migrations, migration)
	return mm
}

// WithBackofficeMigrations registers the data backfills older documents need
// before the soft-delete and status filters can rely on the fields existing.
func (mm *MigrationManager) WithBackofficeMigrations() *MigrationManager {
	mm.AddMigration(Migration{
		Version:     "2024_01_category_flags",
		Description: "backfill deleted=false and status=active on categories",
		Up: func(ctx context.Context, db *mongo.Database) error {
			coll := db.Collection(common.CategoryCollectionName)
			if err := setMissing(ctx, coll, "deleted", false); err != nil {
				return err
			}
			return setMissing(ctx, coll, "status", "active")
		},
	})
	mm.AddMigration(Migration{
		Version:     "2024_02_role_flags",
		Description: "backfill deleted=false and empty permissions on roles",
		Up: func(ctx context.Context, db *mongo.Database) error {
			coll := db.Collection(common.RoleCollectionName)
			if err := setMissing(ctx, coll, "deleted", false); err != nil {
				return err
			}
			return setMissing(ctx, coll, "permissions", bson.A{})
		},
	})
	mm.AddMigration(Migration{
		Version:     "2024_03_category_parent",
		Description: "normalize null parent_id to the empty root key",
		Up: func(ctx context.Context, db *mongo.Database) error {
			_, err := db.Collection(common.CategoryCollectionName).UpdateMany(ctx,
				bson.M{"parent_id": nil},
				bson.M{"$set": bson.M{"parent_id": ""}},
			)
			return err
		},
	})
	return mm
}

func setMissing(ctx context.Context, coll *mongo.Collection, field string, value any) error {
	res, err := coll.UpdateMany(ctx,
		bson.M{field: bson.M{"$exists": false}},
		bson.M{"$set": bson.M{field: value}},
	)
	if err != nil {
		return fmt.Errorf("backfill %s.%s: %w", coll.Name(), field, err)
	}
	util.Log.Info().Str("collection", coll.Name()).Str("field", field).Int64("modified", res.ModifiedCount).Msg("backfilled field")
	return nil
}

// Run applies every pending migration in version order and records each
// outcome. The first failure stops the run.
func (mm *MigrationManager) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	sort.Slice(mm.migrations, func(i, j int) bool {
		return mm.migrations[i].Version < mm.migrations[j].Version
	})

	coll := mm.db.Collection(migrationCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "version", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create migration index: %w", err)
	}

	for _, migration := range mm.migrations {
		applied, err := mm.isApplied(ctx, migration.Version)
		if err != nil {
			return fmt.Errorf("failed to check migration status for %s: %w", migration.Version, err)
		}
		if applied {
			util.Log.Debug().Str("version", migration.Version).Msg("migration already applied")
			continue
		}

		util.Log.Info().Str("version", migration.Version).Str("description", migration.Description).Msg("running migration")

		start := time.Now()
		err = migration.Up(ctx, mm.db)
		status := MigrationStatus{
			Version:   migration.Version,
			AppliedAt: time.Now(),
			Success:   err == nil,
		}
		upsert := options.Replace().SetUpsert(true)
		if _, saveErr := coll.ReplaceOne(ctx, bson.M{"version": migration.Version}, status, upsert); saveErr != nil {
			util.LogError("Failed to save migration status", saveErr)
			if err == nil {
				return fmt.Errorf("failed to save migration status: %w", saveErr)
			}
		}
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Version, err)
		}

		util.Log.Info().Str("version", migration.Version).Dur("duration", time.Since(start)).Msg("migration completed")
	}

	return nil
}

// Rollback undoes applied migrations newer than targetVersion, newest first.
func (mm *MigrationManager) Rollback(ctx context.Context, targetVersion string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	sort.Slice(mm.migrations, func(i, j int) bool {
		return mm.migrations[i].Version > mm.migrations[j].Version
	})

	coll := mm.db.Collection(migrationCollection)
	for _, migration := range mm.migrations {
		if migration.Version <= targetVersion {
			break
		}

		applied, err := mm.isApplied(ctx, migration.Version)
		if err != nil {
			return fmt.Errorf("failed to check migration status for %s: %w", migration.Version, err)
		}
		if !applied {
			continue
		}
		if migration.Down == nil {
			return fmt.Errorf("migration %s does not support rollback", migration.Version)
		}

		if err := migration.Down(ctx, mm.db); err != nil {
			return fmt.Errorf("rollback of migration %s failed: %w", migration.Version, err)
		}
		if _, err := coll.DeleteOne(ctx, bson.M{"version": migration.Version}); err != nil {
			return fmt.Errorf("failed to remove migration status: %w", err)
		}

		util.Log.Info().Str("version", migration.Version).Msg("migration rolled back")
	}

	return nil
}

func (mm *MigrationManager) Status(ctx context.Context) ([]MigrationStatus, error) {
	cursor, err := mm.db.Collection(migrationCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "version", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query migration status: %w", err)
	}
	defer cursor.Close(ctx)

	var statuses []MigrationStatus
	if err = cursor.All(ctx, &statuses); err != nil {
		return nil, fmt.Errorf("failed to decode migration statuses: %w", err)
	}
	return statuses, nil
}

func (mm *MigrationManager) isApplied(ctx context.Context, version string) (bool, error) {
	count, err := mm.db.Collection(migrationCollection).CountDocuments(ctx, bson.M{"version": version, "success": true})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
