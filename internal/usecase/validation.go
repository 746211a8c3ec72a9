package usecase

import "github.com/google/uuid"

const maxSlugLength = 64

// ValidateOrderID reports whether id looks like an order identifier.
func ValidateOrderID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ValidateSlug accepts lowercase ascii letters, digits and dashes.
func ValidateSlug(slug string) bool {
	if slug == "" || len(slug) > maxSlugLength {
		return false
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}
