package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "github.com/inkyu0103/bf-backend/internal/domain"
	"github.com/inkyu0103/bf-backend/internal/repo"
)

type fakeRepo struct {
	todos   map[int64]dom.Todo
	nextID  int64
	failAll bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{todos: map[int64]dom.Todo{}, nextID: 1}
}

var errStorage = errors.New("storage broken")

func (f *fakeRepo) List(ctx context.Context) ([]dom.Todo, error) {
	if f.failAll {
		return nil, errStorage
	}
	list := []dom.Todo{}
	for id := int64(1); id < f.nextID; id++ {
		if t, ok := f.todos[id]; ok {
			list = append(list, t)
		}
	}
	return list, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	if f.failAll {
		return dom.Todo{}, errStorage
	}
	t, ok := f.todos[id]
	if !ok {
		return dom.Todo{}, repo.ErrTodoNotFound
	}
	return t, nil
}

func (f *fakeRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	if f.failAll {
		return dom.Todo{}, errStorage
	}
	now := time.Now().UTC()
	t.ID = f.nextID
	t.CreatedAt = now
	t.UpdatedAt = now
	f.nextID++
	f.todos[t.ID] = t
	return t, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, t dom.Todo) (dom.Todo, error) {
	if f.failAll {
		return dom.Todo{}, errStorage
	}
	existing, ok := f.todos[id]
	if !ok {
		return dom.Todo{}, repo.ErrTodoNotFound
	}
	existing.Title = t.Title
	existing.Description = t.Description
	existing.DueDate = t.DueDate
	existing.IsCompleted = t.IsCompleted
	existing.UpdatedAt = time.Now().UTC()
	f.todos[id] = existing
	return existing, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if f.failAll {
		return errStorage
	}
	delete(f.todos, id)
	return nil
}

func TestCreateTrimsInput(t *testing.T) {
	svc := NewTodoService(newFakeRepo(), nil)

	created, err := svc.Create(context.Background(), "  Buy milk  ", " 2% ", nil, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Title != "Buy milk" || created.Description != "2%" {
		t.Fatalf("expected trimmed fields, got %q / %q", created.Title, created.Description)
	}
}

func TestGetByIDMapsNotFound(t *testing.T) {
	svc := NewTodoService(newFakeRepo(), nil)

	if _, err := svc.GetByID(context.Background(), 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMapsNotFound(t *testing.T) {
	svc := NewTodoService(newFakeRepo(), nil)

	if _, err := svc.Update(context.Background(), 7, "x", "", nil, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateReplacesFields(t *testing.T) {
	fr := newFakeRepo()
	svc := NewTodoService(fr, nil)

	created, err := svc.Create(context.Background(), "Buy milk", "2%", nil, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.Update(context.Background(), created.ID, "Buy milk", "", nil, true)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.IsCompleted || updated.Description != "" {
		t.Fatalf("expected replaced fields, got %+v", updated)
	}
}

func TestDeleteMissingIDSucceeds(t *testing.T) {
	svc := NewTodoService(newFakeRepo(), nil)

	if err := svc.Delete(context.Background(), 12345); err != nil {
		t.Fatalf("expected idempotent delete, got %v", err)
	}
}

func TestStorageErrorsPassThrough(t *testing.T) {
	fr := newFakeRepo()
	fr.failAll = true
	svc := NewTodoService(fr, nil)

	if _, err := svc.List(context.Background()); !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error from List, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "x", "", nil, false); !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error from Create, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), 1); !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error from GetByID, got %v", err)
	}
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error from Delete, got %v", err)
	}
}
