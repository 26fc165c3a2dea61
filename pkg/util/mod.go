package util

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB opens and pings a MongoDB client.
func ConnectDB(uri string) (*mongo.Client, error) {
	Log.Info().Msg("starting MongoDB connection..")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// try to ping the database
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	Log.Info().Msg("MongoDB connection successful")
	return client, nil
}

// GetCollection Get collection from Db
func GetCollection(client *mongo.Client, database, name string) (collection *mongo.Collection) {
	collection = client.Database(database).Collection(name)
	return
}

// ConnectRedis parses a redis URL and returns a client.
func ConnectRedis(redisUrl string) (*redis.Client, error) {
	Log.Info().Msg("starting redis connection..")
	addr, err := redis.ParseURL(redisUrl)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(addr)

	Log.Info().Msg("redis connection successful..")
	return client, nil
}
