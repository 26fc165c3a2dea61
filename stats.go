package indexer

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stats reports $indexStats for one collection.
func (m *Manager) Stats(ctx context.Context, collection string) ([]IndexStats, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{{{Key: "$indexStats", Value: bson.D{}}}}
	cursor, err := m.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to get index stats: %w", err)
	}
	defer cursor.Close(ctx)

	var raw []struct {
		Name     string `bson:"name"`
		Building bool   `bson:"building"`
		Accesses struct {
			Ops   int64     `bson:"ops"`
			Since time.Time `bson:"since"`
		} `bson:"accesses"`
	}
	if err = cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}

	stats := make([]IndexStats, 0, len(raw))
	for _, r := range raw {
		stats = append(stats, IndexStats{
			Name:     r.Name,
			Accesses: r.Accesses.Ops,
			Since:    r.Accesses.Since,
			Building: r.Building,
		})
	}
	return stats, nil
}

func (m *Manager) StatsAll(ctx context.Context) (map[string][]IndexStats, error) {
	results := make(map[string][]IndexStats)
	for _, name := range m.collections() {
		stats, err := m.Stats(ctx, name)
		if err != nil {
			if m.options.ContinueOnError {
				results[name] = []IndexStats{}
				continue
			}
			return nil, fmt.Errorf("failed to get stats for %s: %w", name, err)
		}
		results[name] = stats
	}
	return results, nil
}
