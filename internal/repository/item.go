package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/stockroom/stockroom-go/internal/model"
)

var ErrItemNotFound = errors.New("item not found")

// ItemRepository handles item persistence.
type ItemRepository struct {
	db *bun.DB
}

func NewItemRepository(db *bun.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a new item and sets the generated ID on the model.
func (r *ItemRepository) Create(ctx context.Context, item *model.Item) error {
	_, err := r.db.NewInsert().Model(item).Exec(ctx)
	return err
}

// List returns a page of items, newest first. The id tiebreak keeps
// ordering stable for rows created within the same timestamp tick.
func (r *ItemRepository) List(ctx context.Context, page model.Page) ([]model.Item, error) {
	page = page.Normalize()

	var items []model.Item
	err := r.db.NewSelect().
		Model(&items).
		Order("itm.created_at DESC", "itm.id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// GetByID retrieves a single item.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	item := new(model.Item)
	err := r.db.NewSelect().
		Model(item).
		Where("itm.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// Update persists name and description changes for an item.
func (r *ItemRepository) Update(ctx context.Context, item *model.Item) error {
	res, err := r.db.NewUpdate().
		Model(item).
		Column("name", "description").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireRows(res, ErrItemNotFound)
}

// Delete removes an item by ID.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*model.Item)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireRows(res, ErrItemNotFound)
}
