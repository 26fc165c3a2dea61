// Package indexer manages the indexes and data migrations of the
// back-office collections.
package indexer

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type IndexDefinition struct {
	Collection string
	Index      mongo.IndexModel
}

type Manager struct {
	db      *mongo.Database
	indexes []IndexDefinition
	options *Options
}

type Options struct {
	Timeout         time.Duration
	ContinueOnError bool
	SkipIfExists    bool
}

type Result struct {
	SuccessCount int             `json:"successCount"`
	SkippedCount int             `json:"skippedCount"`
	FailedCount  int             `json:"failedCount"`
	Failures     []FailureDetail `json:"failures,omitempty"`
	Duration     time.Duration   `json:"duration"`
}

type FailureDetail struct {
	Collection string `json:"collection"`
	IndexName  string `json:"indexName"`
	Error      string `json:"error"`
}

type IndexStats struct {
	Name     string    `json:"name"`
	Accesses int64     `json:"accesses"`
	Since    time.Time `json:"since"`
	Building bool      `json:"building"`
}

// Migration is a versioned data change. Versions sort lexically.
type Migration struct {
	Version     string
	Description string
	Up          func(ctx context.Context, db *mongo.Database) error
	Down        func(ctx context.Context, db *mongo.Database) error
}

type MigrationStatus struct {
	Version   string    `bson:"version" json:"version"`
	AppliedAt time.Time `bson:"applied_at" json:"appliedAt"`
	Success   bool      `bson:"success" json:"success"`
}

func DefaultOptions() *Options {
	return &Options{
		Timeout:         60 * time.Second,
		ContinueOnError: true,
		SkipIfExists:    true,
	}
}

func NewManager(db *mongo.Database, opts *Options) *Manager {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Manager{
		db:      db,
		indexes: []IndexDefinition{},
		options: opts,
	}
}

func (m *Manager) AddIndex(collection string, index mongo.IndexModel) *Manager {
	m.indexes = append(m.indexes, IndexDefinition{
		Collection: collection,
		Index:      index,
	})
	return m
}

// Definitions returns the registered index definitions.
func (m *Manager) Definitions() []IndexDefinition {
	return m.indexes
}

func (m *Manager) collections() []string {
	seen := map[string]bool{}
	var names []string
	for _, def := range m.indexes {
		if !seen[def.Collection] {
			seen[def.Collection] = true
			names = append(names, def.Collection)
		}
	}
	return names
}

func keysOf(fields ...string) bson.D {
	keys := bson.D{}
	for _, field := range fields {
		keys = append(keys, bson.E{Key: field, Value: 1})
	}
	return keys
}
