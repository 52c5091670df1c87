package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/stockroom-go/internal/model"
	"github.com/stockroom/stockroom-go/internal/repository"
)

func newItemFixture(t *testing.T) (*ItemService, int64) {
	t.Helper()
	db := newTestDB(t)

	users := NewUserService(repository.NewUserRepository(db))
	owner, err := users.Create(context.Background(), model.CreateUserRequest{
		Name: "Owner", Email: "owner@x.com", Password: "secret123",
	})
	require.NoError(t, err)

	return NewItemService(repository.NewItemRepository(db)), owner.ID
}

func TestItemCreateStampsOwner(t *testing.T) {
	svc, ownerID := newItemFixture(t)

	item, err := svc.Create(context.Background(), ownerID, model.CreateItemRequest{
		Name:        "Chair",
		Description: "Wooden chair",
	})
	require.NoError(t, err)

	assert.NotZero(t, item.ID)
	assert.Equal(t, "Chair", item.Name)
	require.NotNil(t, item.UserID)
	assert.Equal(t, ownerID, *item.UserID)
}

func TestItemListNewestFirst(t *testing.T) {
	svc, ownerID := newItemFixture(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), ownerID, model.CreateItemRequest{
			Name:        fmt.Sprintf("item-%d", i),
			Description: "description",
		})
		require.NoError(t, err)
	}

	items, err := svc.List(context.Background(), model.Page{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "item-2", items[0].Name)
}

func TestItemGet(t *testing.T) {
	svc, ownerID := newItemFixture(t)

	created, err := svc.Create(context.Background(), ownerID, model.CreateItemRequest{
		Name: "Chair", Description: "Wooden chair",
	})
	require.NoError(t, err)

	item, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, item.ID)
}

func TestItemGetNotFound(t *testing.T) {
	svc, _ := newItemFixture(t)

	_, err := svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemUpdatePartial(t *testing.T) {
	svc, ownerID := newItemFixture(t)

	created, err := svc.Create(context.Background(), ownerID, model.CreateItemRequest{
		Name: "Chair", Description: "Wooden chair",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, model.UpdateItemRequest{
		Name: strptr("Armchair"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Armchair", updated.Name)
	assert.Equal(t, "Wooden chair", updated.Description)
}

// Partial-update identity law: an update with no fields supplied
// returns the record unchanged.
func TestItemUpdateEmptyIsIdentity(t *testing.T) {
	svc, ownerID := newItemFixture(t)

	created, err := svc.Create(context.Background(), ownerID, model.CreateItemRequest{
		Name: "Chair", Description: "Wooden chair",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, model.UpdateItemRequest{})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.UserID, updated.UserID)
}

func TestItemUpdateNotFound(t *testing.T) {
	svc, _ := newItemFixture(t)

	_, err := svc.Update(context.Background(), 999, model.UpdateItemRequest{Name: strptr("x")})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemDelete(t *testing.T) {
	svc, ownerID := newItemFixture(t)

	created, err := svc.Create(context.Background(), ownerID, model.CreateItemRequest{
		Name: "Chair", Description: "Wooden chair",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemDeleteNotFound(t *testing.T) {
	svc, _ := newItemFixture(t)

	err := svc.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
