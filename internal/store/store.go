// Package store persists previews and the sessions opened on them.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/previewkit/internal/db"
	"github.com/ziadkadry99/previewkit/internal/payload"
)

// ErrNotFound is returned when a preview does not exist.
var ErrNotFound = errors.New("store: not found")

// Preview is a stored payload.
type Preview struct {
	ID        string       `json:"id"`
	Kind      payload.Kind `json:"kind"`
	Title     string       `json:"title"`
	Source    string       `json:"source,omitempty"`
	Content   string       `json:"content,omitempty"`
	Size      int          `json:"size"`
	CreatedAt time.Time    `json:"created_at"`
}

// SessionRecord is one page view of a preview.
type SessionRecord struct {
	ID        string     `json:"id"`
	PreviewID string     `json:"preview_id"`
	OpenedAt  time.Time  `json:"opened_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	Events    int        `json:"events"`
}

// Store provides CRUD operations for previews.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts p. If p.ID is empty a UUID is generated. The stored
// preview is returned with its ID, size and creation time set.
func (s *Store) Create(ctx context.Context, p Preview) (*Preview, error) {
	if _, err := payload.ParseKind(string(p.Kind)); err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Size = len(p.Content)
	p.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO previews (id, kind, title, source, content, size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, string(p.Kind), p.Title, p.Source, p.Content, p.Size,
		p.CreatedAt.Format(time.DateTime),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting preview: %w", err)
	}
	return &p, nil
}

// Get retrieves a preview with its content.
func (s *Store) Get(ctx context.Context, id string) (*Preview, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, title, source, content, size, created_at
		FROM previews WHERE id = ?`, id)

	var p Preview
	var kind, created string
	err := row.Scan(&p.ID, &kind, &p.Title, &p.Source, &p.Content, &p.Size, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting preview %s: %w", id, err)
	}
	p.Kind = payload.Kind(kind)
	p.CreatedAt = parseTime(created)
	return &p, nil
}

// ListFilter controls which previews List returns.
type ListFilter struct {
	Kind   payload.Kind
	Query  string // substring of title or source
	Limit  int
	Offset int
}

// List returns preview metadata, newest first. Content is not loaded.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Preview, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.Query != "" {
		clauses = append(clauses, "(title LIKE ? OR source LIKE ?)")
		like := "%" + filter.Query + "%"
		args = append(args, like, like)
	}

	query := "SELECT id, kind, title, source, size, created_at FROM previews"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying previews: %w", err)
	}
	defer rows.Close()

	var out []Preview
	for rows.Next() {
		var p Preview
		var kind, created string
		if err := rows.Scan(&p.ID, &kind, &p.Title, &p.Source, &p.Size, &created); err != nil {
			return nil, fmt.Errorf("scanning preview: %w", err)
		}
		p.Kind = payload.Kind(kind)
		p.CreatedAt = parseTime(created)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a preview and its session records.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM previews WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting preview %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting preview %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// OpenSession records that session id started on a preview.
func (s *Store) OpenSession(ctx context.Context, id, previewID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO preview_sessions (id, preview_id, opened_at) VALUES (?, ?, ?)",
		id, previewID, time.Now().UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("recording session %s: %w", id, err)
	}
	return nil
}

// CloseSession marks a session closed with the number of events it handled.
func (s *Store) CloseSession(ctx context.Context, id string, events int) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE preview_sessions SET closed_at = ?, events = ? WHERE id = ?",
		time.Now().UTC().Format(time.DateTime), events, id,
	)
	if err != nil {
		return fmt.Errorf("closing session %s: %w", id, err)
	}
	return nil
}

// Sessions lists the sessions of a preview, newest first.
func (s *Store) Sessions(ctx context.Context, previewID string) ([]SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, preview_id, opened_at, closed_at, events
		FROM preview_sessions WHERE preview_id = ?
		ORDER BY opened_at DESC, rowid DESC`, previewID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var opened string
		var closed sql.NullString
		if err := rows.Scan(&r.ID, &r.PreviewID, &opened, &closed, &r.Events); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		r.OpenedAt = parseTime(opened)
		if closed.Valid {
			t := parseTime(closed.String)
			r.ClosedAt = &t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(time.DateTime, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
