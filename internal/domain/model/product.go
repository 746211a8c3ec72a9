package model

// Product is a sellable voucher backed by an upstream rental service code.
// Prices are expressed in minor currency units.
type Product struct {
	ID            int64
	Slug          string
	Name          string
	Description   string
	ImageURL      string
	ServiceCode   string
	CountryCode   string
	Price         int64
	OriginalPrice int64
}
