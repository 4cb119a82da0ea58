package repo

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	dom "github.com/inkyu0103/bf-backend/internal/domain"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// OpenSQLite opens (or creates) the SQLite database at path and applies the
// schema. Applying is idempotent: an existing todos table is left untouched.
func OpenSQLite(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(context.Background(), string(schemaSQL)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return db, nil
}

type SQLiteTodoRepo struct {
	db *sql.DB
}

func NewSQLiteTodoRepo(db *sql.DB) *SQLiteTodoRepo {
	return &SQLiteTodoRepo{db: db}
}

func (r *SQLiteTodoRepo) List(ctx context.Context) ([]dom.Todo, error) {
	query := `
		SELECT id, title, description, is_completed, due_date, created_at, updated_at
		FROM todos ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *SQLiteTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	query := `
		SELECT id, title, description, is_completed, due_date, created_at, updated_at
		FROM todos WHERE id = ?`
	t, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return dom.Todo{}, ErrTodoNotFound
	}
	return t, err
}

func (r *SQLiteTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	// One now for both columns so created_at == updated_at at insert.
	now := time.Now().UTC()
	query := `
		INSERT INTO todos (title, description, due_date, is_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, title, description, is_completed, due_date, created_at, updated_at`
	out, err := scanTodo(r.db.QueryRowContext(ctx, query,
		t.Title, t.Description, nullTime(t.DueDate), t.IsCompleted, now, now))
	return out, err
}

func (r *SQLiteTodoRepo) Update(ctx context.Context, id int64, t dom.Todo) (dom.Todo, error) {
	now := time.Now().UTC()
	query := `
		UPDATE todos SET title = ?, description = ?, due_date = ?, is_completed = ?, updated_at = ?
		WHERE id = ?
		RETURNING id, title, description, is_completed, due_date, created_at, updated_at`
	out, err := scanTodo(r.db.QueryRowContext(ctx, query,
		t.Title, t.Description, nullTime(t.DueDate), t.IsCompleted, now, id))
	if errors.Is(err, sql.ErrNoRows) {
		return dom.Todo{}, ErrTodoNotFound
	}
	return out, err
}

func (r *SQLiteTodoRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (dom.Todo, error) {
	var t dom.Todo
	var due sql.NullTime
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.IsCompleted, &due,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return dom.Todo{}, err
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	return t, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
