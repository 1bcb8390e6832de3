package repository

import (
	"context"
	"sync"
	"sync/atomic"

	"komal-chat/internal/models"
)

// MessageStore is the persistence contract for chat turns. Implementations
// write straight through to the backing database and keep no cache.
type MessageStore interface {
	Insert(ctx context.Context, role models.Role, text string) (*models.Message, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Message, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}

var (
	_ MessageStore = (*MessageRepo)(nil)
	_ MessageStore = (*MongoMessageRepo)(nil)
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return models.DefaultHistoryLimit
	}
	return limit
}

// reverse flips a newest-first page into chronological order.
func reverse(msgs []*models.Message) []*models.Message {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs
}

// schemaGate runs a schema setup step before the first store call and keeps
// retrying it on later calls until it succeeds once.
type schemaGate struct {
	setup func(ctx context.Context) error
	mu    sync.Mutex
	done  atomic.Bool
}

func (g *schemaGate) ensure(ctx context.Context) error {
	if g.setup == nil || g.done.Load() {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.done.Load() {
		return nil
	}
	if err := g.setup(ctx); err != nil {
		return err
	}
	g.done.Store(true)
	return nil
}
