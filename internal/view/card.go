package view

import (
	"time"

	"shoe-store/internal/catalog"
	"shoe-store/internal/model"

	"github.com/google/uuid"
)

// Card is the view model for a product card. It is shared by the HTML
// renderer and the JSON API.
type Card struct {
	ID                 uuid.UUID       `json:"id"`
	Slug               string          `json:"slug"`
	Name               string          `json:"name"`
	ImageSrc           string          `json:"imageSrc"`
	Price              int64           `json:"price"`
	SalePrice          *int64          `json:"salePrice,omitempty"`
	ReleaseDate        time.Time       `json:"releaseDate"`
	NumOfColors        int             `json:"numOfColors"`
	Audience           string          `json:"audience"`
	Variant            catalog.Variant `json:"variant"`
	Label              string          `json:"label"`
	FormattedPrice     string          `json:"formattedPrice"`
	FormattedSalePrice string          `json:"formattedSalePrice,omitempty"`
	ColorInfo          string          `json:"colorInfo"`
	Href               string          `json:"href"`
	Strikethrough      bool            `json:"-"`
}

// NewCard builds the card for a shoe shown as variant v.
func NewCard(shoe model.Shoe, v catalog.Variant) Card {
	card := Card{
		ID:             shoe.ID,
		Slug:           shoe.Slug,
		Name:           shoe.Name,
		ImageSrc:       shoe.ImageSrc,
		Price:          shoe.Price,
		SalePrice:      shoe.SalePrice,
		ReleaseDate:    shoe.ReleaseDate,
		NumOfColors:    shoe.NumOfColors,
		Audience:       shoe.Audience,
		Variant:        v,
		Label:          catalog.Label(v),
		FormattedPrice: catalog.FormatPrice(shoe.Price),
		ColorInfo:      catalog.Pluralize("Color", shoe.NumOfColors),
		Href:           "/shoe/" + shoe.Slug,
	}

	if v == catalog.VariantOnSale && shoe.SalePrice != nil {
		card.Strikethrough = true
		card.FormattedSalePrice = catalog.FormatPrice(*shoe.SalePrice)
	}

	return card
}

// NewCards builds cards for already classified shoes.
func NewCards(shoes []model.ShoeCard) []Card {
	cards := make([]Card, 0, len(shoes))
	for _, s := range shoes {
		cards = append(cards, NewCard(s.Shoe, s.Variant))
	}
	return cards
}
