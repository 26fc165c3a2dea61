package internal

import (
	"context"
	"encoding/json"
	"time"

	"khoomi-api-io/backoffice/pkg/util"

	"github.com/redis/go-redis/v9"
)

var CHANNEL_GLOBAL_CACHE = "BACKOFFICE_CACHE"

type CacheMessageType string

type CacheMessage struct {
	Type      CacheMessageType `json:"type"`
	Payload   string           `json:"payload"`
	Timestamp int64            `json:"timestamp"`
}

// CachePublisher publishes cache invalidation messages to Redis pub/sub.
type CachePublisher struct {
	client  *redis.Client
	channel string
}

func NewCachePublisher(client *redis.Client, channel string) *CachePublisher {
	if channel == "" {
		channel = CHANNEL_GLOBAL_CACHE
	}
	return &CachePublisher{client: client, channel: channel}
}

// PublishCacheMessage publishes a cache invalidation message as JSON
func (p *CachePublisher) PublishCacheMessage(ctx context.Context, messageType CacheMessageType, payload string) error {
	cacheMessage := CacheMessage{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}

	messageJSON, err := json.Marshal(cacheMessage)
	if err != nil {
		util.LogError("Failed to marshal cache message", err)
		return err
	}

	err = p.client.Publish(ctx, p.channel, string(messageJSON)).Err()
	if err != nil {
		util.LogError("Failed to publish cache message", err)
		return err
	}

	util.Log.Debug().Str("channel", p.channel).RawJSON("message", messageJSON).Msg("published cache message")
	return nil
}

// Notify satisfies services.CacheNotifier; publish errors are only logged.
func (p *CachePublisher) Notify(ctx context.Context, messageType string, payload string) {
	_ = p.PublishCacheMessage(ctx, CacheMessageType(messageType), payload)
}
