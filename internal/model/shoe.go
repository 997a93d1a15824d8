package model

import (
	"time"

	"shoe-store/internal/catalog"

	"github.com/google/uuid"
)

// Audience values for a shoe.
const (
	AudienceMen    = "men"
	AudienceWomen  = "women"
	AudienceKids   = "kids"
	AudienceUnisex = "unisex"
)

// Shoe represents a shoe in the storefront catalogue.
// Prices are in cents. SalePrice is nil unless the shoe is discounted.
type Shoe struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	ImageSrc    string    `json:"imageSrc" db:"image_src"`
	Price       int64     `json:"price" db:"price_cents"`
	SalePrice   *int64    `json:"salePrice,omitempty" db:"sale_price_cents"`
	ReleaseDate time.Time `json:"releaseDate" db:"release_date"`
	NumOfColors int       `json:"numOfColors" db:"num_of_colors"`
	Audience    string    `json:"audience" db:"audience"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// EffectivePrice is what the customer pays.
func (s Shoe) EffectivePrice() int64 {
	if s.SalePrice != nil {
		return *s.SalePrice
	}
	return s.Price
}

// ShoeCard is a shoe together with the variant it was classified as.
// The variant is derived on every read and never stored.
type ShoeCard struct {
	Shoe
	Variant catalog.Variant `json:"variant"`
}

// CreateShoeRequest represents the request payload for adding a shoe.
type CreateShoeRequest struct {
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	ImageSrc    string    `json:"imageSrc"`
	Price       int64     `json:"price"`
	SalePrice   *int64    `json:"salePrice,omitempty"`
	ReleaseDate time.Time `json:"releaseDate"`
	NumOfColors int       `json:"numOfColors"`
	Audience    string    `json:"audience"`
}

// ShoeFilter narrows a catalogue listing.
type ShoeFilter struct {
	Audience      string
	OnSale        *bool
	ReleasedAfter *time.Time
	Sort          string
	Limit         int
	Offset        int
}
