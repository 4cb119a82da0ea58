package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/inkyu0103/bf-backend/internal/cache"
	dom "github.com/inkyu0103/bf-backend/internal/domain"
	"github.com/inkyu0103/bf-backend/internal/repo"

	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("not found")

const keyList = "list"

type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

func (s *TodoService) Create(ctx context.Context, title, desc string, dueDate *time.Time, isCompleted bool) (dom.Todo, error) {
	t, err := s.repo.Create(ctx, dom.Todo{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(desc),
		DueDate:     dueDate,
		IsCompleted: isCompleted,
	})
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) List(ctx context.Context) ([]dom.Todo, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do(keyList, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Todo), nil
	}
	return s.repo.List(ctx)
}

func (s *TodoService) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrTodoNotFound) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// Update replaces all mutable fields wholesale and resets updatedAt.
func (s *TodoService) Update(ctx context.Context, id int64, title, desc string, dueDate *time.Time, isCompleted bool) (dom.Todo, error) {
	t, err := s.repo.Update(ctx, id, dom.Todo{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(desc),
		DueDate:     dueDate,
		IsCompleted: isCompleted,
	})
	if err != nil {
		if errors.Is(err, repo.ErrTodoNotFound) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

// Delete is idempotent: deleting an id that no longer exists succeeds.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *TodoService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
