package dto

import "github.com/polkiloo/vouchermart/internal/domain/model"

// ProductResponse is a catalog entry.
type ProductResponse struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price,omitempty"`
}

// NewProductResponse maps a product to its public representation.
func NewProductResponse(p model.Product) ProductResponse {
	resp := ProductResponse{
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       FormatAmount(p.Price),
	}
	if p.OriginalPrice > p.Price {
		resp.OriginalPrice = FormatAmount(p.OriginalPrice)
	}
	return resp
}
