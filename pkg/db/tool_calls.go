package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/lifx-mcp/pkg/tools"
)

// ToolCall is one row of the activity log.
type ToolCall struct {
	ID        int64         `json:"id"`
	Tool      string        `json:"tool"`
	Selector  string        `json:"selector,omitempty"`
	Outcome   string        `json:"outcome"`
	Duration  time.Duration `json:"duration_ns"`
	CreatedAt time.Time     `json:"created_at"`
}

// ToolCallStore records and lists tool invocations.
type ToolCallStore interface {
	Record(ctx context.Context, c *ToolCall) error
	Recent(ctx context.Context, limit int) ([]*ToolCall, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// ToolCalls returns a ToolCallStore for this database.
func (db *DB) ToolCalls() ToolCallStore {
	return &toolCallStore{db: db}
}

type toolCallStore struct {
	db *DB
}

const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

func (s *toolCallStore) Record(ctx context.Context, c *ToolCall) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tool_calls (tool, selector, outcome, duration_ns, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.Tool, c.Selector, c.Outcome, c.Duration.Nanoseconds(), c.CreatedAt.UTC().Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("failed to record tool call: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// Recent returns up to limit calls, newest first.
func (s *toolCallStore) Recent(ctx context.Context, limit int) ([]*ToolCall, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tool, selector, outcome, duration_ns, created_at
		FROM tool_calls ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	calls := []*ToolCall{}
	for rows.Next() {
		c := &ToolCall{}
		var ns int64
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Tool, &c.Selector, &c.Outcome, &ns, &createdAt); err != nil {
			return nil, err
		}
		c.Duration = time.Duration(ns)
		c.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

// Prune deletes calls recorded before the cutoff.
func (s *toolCallStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tool_calls WHERE created_at < ?`,
		before.UTC().Format(timestampLayout))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ActivityRecorder writes every dispatcher invocation to the activity
// log. Write failures are logged and dropped; they never affect the
// tool result.
type ActivityRecorder struct {
	store ToolCallStore
}

// NewActivityRecorder creates a recorder backed by db.
func NewActivityRecorder(db *DB) *ActivityRecorder {
	return &ActivityRecorder{store: db.ToolCalls()}
}

// ObserveInvocation implements tools.Observer.
func (r *ActivityRecorder) ObserveInvocation(ctx context.Context, inv tools.Invocation) {
	err := r.store.Record(context.WithoutCancel(ctx), &ToolCall{
		Tool:      inv.Tool,
		Selector:  inv.Selector,
		Outcome:   string(inv.Kind),
		Duration:  inv.Duration,
		CreatedAt: inv.StartedAt,
	})
	if err != nil {
		log.Warn().Err(err).Str("tool", inv.Tool).Msg("Failed to record tool call")
	}
}
