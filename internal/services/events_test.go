package services

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"komal-chat/internal/models"
)

func TestNewRedisPublisher_DefaultChannel(t *testing.T) {
	p := NewRedisPublisher(nil, "")
	if p.channel != EventsChannel {
		t.Errorf("Expected channel %q, got %q", EventsChannel, p.channel)
	}
}

func TestRedisPublisher_UnreachableServerIsSwallowed(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	p := NewRedisPublisher(client, "test:events")

	// Must return without panicking or blocking on a dead server.
	p.Publish(context.Background(), models.Event{Type: models.EventMessageDeleted, Payload: models.DeletedEvent{ID: "x"}})
}
