package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/uptrace/bun"
)

// Item is a resource owned by exactly one account. The owner ID is
// nullable only to represent orphaned legacy rows; on creation it is
// always stamped from the authenticated subject.
type Item struct {
	bun.BaseModel `bun:"table:items,alias:itm"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description,notnull" json:"description"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UserID      *int64    `bun:"user_id" json:"userId"`
}

// CreateItemRequest is the item creation payload. It deliberately has
// no owner field; ownership comes from the bearer identity.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Required, validation.Length(5, 2000)),
	)
}

// UpdateItemRequest is a partial update; absent fields retain their
// prior value.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.Length(5, 2000)),
	)
}
