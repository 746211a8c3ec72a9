package repository

import (
	"context"

	"github.com/polkiloo/vouchermart/internal/domain/model"
)

// ProductRepository provides read-only access to the catalog.
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}
