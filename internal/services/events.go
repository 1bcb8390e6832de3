package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"komal-chat/internal/models"
)

// EventsChannel is the Redis pub/sub channel carrying message events.
const EventsChannel = "komal:messages"

// Publisher fans message events out to connected browsers. Publishing is
// best effort: failures are logged, never returned.
type Publisher interface {
	Publish(ctx context.Context, event models.Event)
}

type RedisPublisher struct {
	redis   *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = EventsChannel
	}
	return &RedisPublisher{redis: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event models.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("WARNING: failed to encode %s event: %v", event.Type, err)
		return
	}
	if err := p.redis.Publish(ctx, p.channel, string(data)).Err(); err != nil {
		log.Printf("WARNING: failed to publish %s event: %v", event.Type, err)
	}
}
