package domain

import "time"

// Todo is the business entity. It does not depend on Gin, Postgres or SQLite.
type Todo struct {
	ID          int64
	Title       string
	Description string
	IsCompleted bool
	DueDate     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
