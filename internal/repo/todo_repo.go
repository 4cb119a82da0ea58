package repo

import (
	"context"
	"errors"

	dom "github.com/inkyu0103/bf-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTodoNotFound is returned by GetByID and Update when no row matches the id.
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepo is the storage contract. Create assigns id and both timestamps
// (equal at insert). Update replaces all mutable fields and resets updated_at.
// Delete is idempotent: removing a missing id is not an error.
type TodoRepo interface {
	List(ctx context.Context) ([]dom.Todo, error)
	GetByID(ctx context.Context, id int64) (dom.Todo, error)
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	Update(ctx context.Context, id int64, t dom.Todo) (dom.Todo, error)
	Delete(ctx context.Context, id int64) error
}

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) List(ctx context.Context) ([]dom.Todo, error) {
	query := `
		SELECT id, title, description, is_completed, due_date, created_at, updated_at
		FROM todos ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Todo{}
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.IsCompleted, &t.DueDate,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	query := `
		SELECT id, title, description, is_completed, due_date, created_at, updated_at
		FROM todos WHERE id = $1`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.IsCompleted, &t.DueDate,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Todo{}, ErrTodoNotFound
	}
	return t, err
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	// created_at and updated_at default to the same NOW().
	query := `
		INSERT INTO todos (title, description, due_date, is_completed)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, is_completed, due_date, created_at, updated_at`
	var out dom.Todo
	err := r.db.QueryRow(ctx, query, t.Title, t.Description, t.DueDate, t.IsCompleted).Scan(
		&out.ID, &out.Title, &out.Description, &out.IsCompleted, &out.DueDate,
		&out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTodoRepo) Update(ctx context.Context, id int64, t dom.Todo) (dom.Todo, error) {
	query := `
		UPDATE todos SET title = $2, description = $3, due_date = $4, is_completed = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, description, is_completed, due_date, created_at, updated_at`
	var out dom.Todo
	err := r.db.QueryRow(ctx, query, id, t.Title, t.Description, t.DueDate, t.IsCompleted).Scan(
		&out.ID, &out.Title, &out.Description, &out.IsCompleted, &out.DueDate,
		&out.CreatedAt, &out.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Todo{}, ErrTodoNotFound
	}
	return out, err
}

func (r *PGTodoRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	return err
}
