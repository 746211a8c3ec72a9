package postgres

import (
	"context"
	"fmt"

	"github.com/polkiloo/vouchermart/internal/domain/model"
)

// malaysiaCountryCode is the rental service's country id for Malaysian numbers.
const malaysiaCountryCode = "7"

// DefaultCatalog lists the vouchers offered by the storefront.
var DefaultCatalog = []model.Product{
	{
		Slug:          "zus",
		Name:          "Zus Coffee",
		Description:   "Zus Coffee new member voucher",
		ImageURL:      "/static/img/zus.png",
		ServiceCode:   "aik",
		CountryCode:   malaysiaCountryCode,
		Price:         150,
		OriginalPrice: 180,
	},
	{
		Slug:          "kfc",
		Name:          "KFC RM10 OFF",
		Description:   "RM10 off your next KFC order",
		ImageURL:      "/static/img/kfc.png",
		ServiceCode:   "fz",
		CountryCode:   malaysiaCountryCode,
		Price:         150,
		OriginalPrice: 180,
	},
	{
		Slug:          "chagee",
		Name:          "CHAGEE Buy1Free1",
		Description:   "Buy one drink, get one free at CHAGEE",
		ImageURL:      "/static/img/chagee.png",
		ServiceCode:   "bwx",
		CountryCode:   malaysiaCountryCode,
		Price:         150,
		OriginalPrice: 180,
	},
	{
		Slug:          "tealive",
		Name:          "Tealive Voucher",
		Description:   "Tealive new member voucher",
		ImageURL:      "/static/img/tealive.png",
		ServiceCode:   "avb",
		CountryCode:   malaysiaCountryCode,
		Price:         150,
		OriginalPrice: 180,
	},
}

func (s *Storage) seedCatalog(ctx context.Context, products []model.Product) error {
	const query = `INSERT INTO products (slug, name, description, image_url, service_code, country_code, price, original_price)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   ON CONFLICT (slug) DO NOTHING`

	for _, p := range products {
		if _, err := s.pool.Exec(ctx, query, p.Slug, p.Name, p.Description, p.ImageURL, p.ServiceCode, p.CountryCode, p.Price, p.OriginalPrice); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Slug, err)
		}
	}
	return nil
}
