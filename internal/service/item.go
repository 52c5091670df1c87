package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stockroom/stockroom-go/internal/model"
	"github.com/stockroom/stockroom-go/internal/repository"
)

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrCreateItemFailed = errors.New("create operation failed")
	ErrUpdateItemFailed = errors.New("update operation failed")
	ErrDeleteItemFailed = errors.New("delete operation failed")
)

// ItemService performs item CRUD against the persistence layer.
type ItemService struct {
	repo *repository.ItemRepository
}

func NewItemService(repo *repository.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// Create stores a new item. The owner is always the authenticated
// subject; client input carries no owner field.
func (s *ItemService) Create(ctx context.Context, ownerID int64, req model.CreateItemRequest) (*model.Item, error) {
	item := &model.Item{
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
		UserID:      &ownerID,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		slog.Error("creating item failed", "owner_id", ownerID, "error", err)
		return nil, ErrCreateItemFailed
	}

	return item, nil
}

// List returns a page of items, newest first.
func (s *ItemService) List(ctx context.Context, page model.Page) ([]model.Item, error) {
	items, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// Get returns a single item.
func (s *ItemService) Get(ctx context.Context, id int64) (*model.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("fetching item %d: %w", id, err)
	}
	return item, nil
}

// Update applies a partial update; absent fields retain their prior
// value, so an empty update returns the record unchanged.
func (s *ItemService) Update(ctx context.Context, id int64, req model.UpdateItemRequest) (*model.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		slog.Error("fetching item for update failed", "id", id, "error", err)
		return nil, ErrUpdateItemFailed
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		slog.Error("updating item failed", "id", id, "error", err)
		return nil, ErrUpdateItemFailed
	}

	return item, nil
}

// Delete removes an item by ID.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return ErrItemNotFound
		}
		slog.Error("deleting item failed", "id", id, "error", err)
		return ErrDeleteItemFailed
	}
	return nil
}
