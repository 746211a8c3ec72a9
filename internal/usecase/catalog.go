package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/vouchermart/internal/domain/errors"
	"github.com/polkiloo/vouchermart/internal/domain/model"
	"github.com/polkiloo/vouchermart/internal/domain/repository"
)

// CatalogUseCase serves the read-only product catalog.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// List returns every sellable product.
func (u *CatalogUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

// Get returns a product by slug.
func (u *CatalogUseCase) Get(ctx context.Context, slug string) (*model.Product, error) {
	if !ValidateSlug(slug) {
		return nil, domainErrors.ErrNotFound
	}
	return u.products.GetBySlug(ctx, slug)
}
