package indexer

import (
	"context"
	"fmt"
	"time"

	"khoomi-api-io/backoffice/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, m.options.Timeout)
}

// Create builds every registered index, skipping ones that already exist
// by name when SkipIfExists is set.
func (m *Manager) Create(ctx context.Context) (*Result, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	result := &Result{Failures: []FailureDetail{}}

	for _, def := range m.indexes {
		name := ""
		if def.Index.Options != nil && def.Index.Options.Name != nil {
			name = *def.Index.Options.Name
		}

		if m.options.SkipIfExists && name != "" {
			exists, err := m.indexExists(ctx, def.Collection, name)
			if err == nil && exists {
				util.Log.Debug().Str("collection", def.Collection).Str("index", name).Msg("index exists, skipping")
				result.SkippedCount++
				continue
			}
		}

		created, err := m.db.Collection(def.Collection).Indexes().CreateOne(ctx, def.Index)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				util.Log.Warn().Str("collection", def.Collection).Str("index", name).Msg("cannot create unique index over duplicate data")
			} else {
				util.Log.Error().Err(err).Str("collection", def.Collection).Str("index", name).Msg("index creation failed")
			}
			result.FailedCount++
			result.Failures = append(result.Failures, FailureDetail{
				Collection: def.Collection,
				IndexName:  name,
				Error:      err.Error(),
			})
			if !m.options.ContinueOnError {
				result.Duration = time.Since(start)
				return result, err
			}
			continue
		}

		util.Log.Info().Str("collection", def.Collection).Str("index", created).Msg("index created")
		result.SuccessCount++
	}

	result.Duration = time.Since(start)
	if result.FailedCount > 0 {
		return result, fmt.Errorf("%d indexes failed to create", result.FailedCount)
	}
	return result, nil
}

// Drop removes all secondary indexes of the given collections, or of every
// collection with registered indexes when none are named.
func (m *Manager) Drop(ctx context.Context, collections ...string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	if len(collections) == 0 {
		collections = m.collections()
	}

	for _, name := range collections {
		if _, err := m.db.Collection(name).Indexes().DropAll(ctx); err != nil {
			if !m.options.ContinueOnError {
				return fmt.Errorf("failed to drop indexes for %s: %w", name, err)
			}
			util.Log.Error().Err(err).Str("collection", name).Msg("index drop failed")
			continue
		}
		util.Log.Info().Str("collection", name).Msg("dropped indexes")
	}
	return nil
}

func (m *Manager) List(ctx context.Context, collection string) ([]bson.M, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	cursor, err := m.db.Collection(collection).Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var indexes []bson.M
	if err = cursor.All(ctx, &indexes); err != nil {
		return nil, err
	}
	return indexes, nil
}

func (m *Manager) indexExists(ctx context.Context, collection, name string) (bool, error) {
	indexes, err := m.List(ctx, collection)
	if err != nil {
		return false, err
	}
	for _, idx := range indexes {
		if idxName, ok := idx["name"].(string); ok && idxName == name {
			return true, nil
		}
	}
	return false, nil
}
