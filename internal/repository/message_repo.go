package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"komal-chat/internal/models"
)

// MessageRepo stores turns in the Postgres "messages" table.
type MessageRepo struct {
	pool   *pgxpool.Pool
	schema schemaGate
}

// NewMessageRepo takes the migration step that creates the table. It runs
// before the first query and is retried until it succeeds, so a database that
// was down at startup is usable once it comes back. A nil migrate skips it.
func NewMessageRepo(pool *pgxpool.Pool, migrate func(ctx context.Context) error) *MessageRepo {
	return &MessageRepo{pool: pool, schema: schemaGate{setup: migrate}}
}

// EnsureSchema runs the pending migrations if they have not succeeded yet.
func (r *MessageRepo) EnsureSchema(ctx context.Context) error {
	if err := r.schema.ensure(ctx); err != nil {
		return &models.PersistenceError{Op: "migrate", Err: err}
	}
	return nil
}

func (r *MessageRepo) Insert(ctx context.Context, role models.Role, text string) (*models.Message, error) {
	if err := models.ValidateTurn(role, text); err != nil {
		return nil, err
	}

	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	id := uuid.New()
	m := &models.Message{ID: id.String(), Role: role, Text: text}

	query := `INSERT INTO messages (id, role, text) VALUES ($1, $2, $3) RETURNING created_at`
	if err := r.pool.QueryRow(ctx, query, id, string(role), text).Scan(&m.CreatedAt); err != nil {
		return nil, &models.PersistenceError{Op: "insert", Err: err}
	}
	return m, nil
}

// ListRecent returns the newest limit turns, oldest first.
func (r *MessageRepo) ListRecent(ctx context.Context, limit int) ([]*models.Message, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, role, text, created_at FROM (
			SELECT id, role, text, created_at, seq FROM messages
			ORDER BY created_at DESC, seq DESC LIMIT $1
		) recent ORDER BY created_at ASC, seq ASC`

	rows, err := r.pool.Query(ctx, query, normalizeLimit(limit))
	if err != nil {
		return nil, &models.PersistenceError{Op: "list", Err: err}
	}
	defer rows.Close()

	msgs := []*models.Message{}
	for rows.Next() {
		var (
			id   uuid.UUID
			role string
			m    models.Message
		)
		if err := rows.Scan(&id, &role, &m.Text, &m.CreatedAt); err != nil {
			return nil, &models.PersistenceError{Op: "list", Err: err}
		}
		m.ID = id.String()
		m.Role = models.Role(role)
		msgs = append(msgs, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.PersistenceError{Op: "list", Err: err}
	}

	return msgs, nil
}

// DeleteByID reports false for ids that do not exist, including ids that are
// not UUIDs at all.
func (r *MessageRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	msgID, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	if err := r.EnsureSchema(ctx); err != nil {
		return false, err
	}

	tag, err := r.pool.Exec(ctx, "DELETE FROM messages WHERE id = $1", msgID)
	if err != nil {
		return false, &models.PersistenceError{Op: "delete", Err: err}
	}
	return tag.RowsAffected() > 0, nil
}

func (r *MessageRepo) DeleteAll(ctx context.Context) (int64, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	tag, err := r.pool.Exec(ctx, "DELETE FROM messages")
	if err != nil {
		return 0, &models.PersistenceError{Op: "delete all", Err: err}
	}
	return tag.RowsAffected(), nil
}

func (r *MessageRepo) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}
