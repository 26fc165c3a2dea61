package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	indexer "khoomi-api-io/backoffice"
	"khoomi-api-io/backoffice/config"
	"khoomi-api-io/backoffice/pkg/util"
)

func main() {
	var (
		action      = flag.String("action", "create", "Action: create, drop, list, stats, migrate, migrate-status, rollback")
		uri         = flag.String("uri", "", "MongoDB URI (defaults to env DATABASE_URL)")
		dbName      = flag.String("db", "", "Database name (defaults to env DB_NAME)")
		collection  = flag.String("collection", "", "Collection name (for list/stats)")
		target      = flag.String("target", "", "Target version (for rollback)")
		timeout     = flag.Duration("timeout", 60*time.Second, "Operation timeout")
		continueErr = flag.Bool("continue-on-error", true, "Continue on error")
		skipExists  = flag.Bool("skip-if-exists", true, "Skip existing indexes")
		jsonOutput  = flag.Bool("json", false, "Output in JSON format")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		util.Log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	util.InitLogger(cfg.Env, cfg.LogLevel)

	mongoURI := *uri
	if mongoURI == "" {
		mongoURI = cfg.DatabaseURL
	}
	database := *dbName
	if database == "" {
		database = cfg.DBName
	}

	client, err := util.ConnectDB(mongoURI)
	if err != nil {
		util.Log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	db := client.Database(database)
	ctx := context.Background()

	manager := indexer.NewManager(db, &indexer.Options{
		Timeout:         *timeout,
		ContinueOnError: *continueErr,
		SkipIfExists:    *skipExists,
	}).WithBackofficeIndexes()
	migrations := indexer.NewMigrationManager(db).WithBackofficeMigrations()

	switch *action {
	case "create":
		result, err := manager.Create(ctx)
		if *jsonOutput {
			outputJSON(map[string]any{"success": err == nil, "result": result, "error": errorString(err)})
			return
		}
		fmt.Printf("Indexes in %s: %d created, %d skipped, %d failed (%v)\n",
			database, result.SuccessCount, result.SkippedCount, result.FailedCount, result.Duration)
		for _, f := range result.Failures {
			fmt.Printf("  - %s.%s: %s\n", f.Collection, f.IndexName, f.Error)
		}

	case "drop":
		err := manager.Drop(ctx, flag.Args()...)
		if *jsonOutput {
			outputJSON(map[string]any{"success": err == nil, "error": errorString(err)})
			return
		}
		if err != nil {
			util.Log.Fatal().Err(err).Msg("Failed to drop indexes")
		}
		fmt.Println("Indexes dropped successfully")

	case "list":
		if *collection == "" {
			util.Log.Fatal().Msg("Collection name required for list action (-collection flag)")
		}
		indexes, err := manager.List(ctx, *collection)
		if err != nil {
			util.Log.Fatal().Err(err).Msg("Failed to list indexes")
		}
		if *jsonOutput {
			outputJSON(indexes)
			return
		}
		fmt.Printf("Indexes for collection %s:\n", *collection)
		for _, idx := range indexes {
			fmt.Printf("  - %v keys=%v unique=%v\n", idx["name"], idx["key"], idx["unique"] == true)
		}

	case "stats":
		var stats any
		if *collection == "" {
			stats, err = manager.StatsAll(ctx)
		} else {
			stats, err = manager.Stats(ctx, *collection)
		}
		if err != nil {
			util.Log.Fatal().Err(err).Msg("Failed to get stats")
		}
		outputJSON(stats)

	case "migrate":
		if err := migrations.Run(ctx); err != nil {
			util.Log.Fatal().Err(err).Msg("Migration failed")
		}
		fmt.Println("Migrations applied")

	case "migrate-status":
		statuses, err := migrations.Status(ctx)
		if err != nil {
			util.Log.Fatal().Err(err).Msg("Failed to read migration status")
		}
		outputJSON(statuses)

	case "rollback":
		if *target == "" {
			util.Log.Fatal().Msg("Target version required for rollback (-target flag)")
		}
		if err := migrations.Rollback(ctx, *target); err != nil {
			util.Log.Fatal().Err(err).Msg("Rollback failed")
		}
		fmt.Println("Rollback completed")

	default:
		fmt.Printf("Unknown action: %s\n", *action)
		fmt.Println("Available actions: create, drop, list, stats, migrate, migrate-status, rollback")
		os.Exit(1)
	}
}

func outputJSON(data any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		util.Log.Fatal().Err(err).Msg("Failed to encode JSON")
	}
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
