package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DueDate parses dueDate from JSON as either date-only ("2006-01-02") or RFC3339.
// Date-only is stored as start of that day in UTC. A null or empty value is nil.
type DueDate struct{ t *time.Time }

func (d *DueDate) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02", // date only
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("dueDate: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d DueDate) Ptr() *time.Time { return d.t }

// TodoRequest is the body of both POST /todos and PUT /todos/:id.
// Every field is optional: a missing title/description becomes the empty
// string, a missing isCompleted becomes false, a missing dueDate stays null.
// PUT replaces all four fields wholesale, it is not a partial update.
type TodoRequest struct {
	Title       string  `json:"title" binding:"max=120"`
	Description string  `json:"description" binding:"max=1000"`
	DueDate     DueDate `json:"dueDate"`
	IsCompleted bool    `json:"isCompleted"`
}

type TodoResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
