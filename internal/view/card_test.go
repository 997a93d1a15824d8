package view

import (
	"testing"
	"time"

	"shoe-store/internal/catalog"
	"shoe-store/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testShoe(salePrice *int64) model.Shoe {
	return model.Shoe{
		ID:          uuid.New(),
		Slug:        "pegasus",
		Name:        "Pegasus",
		ImageSrc:    "/assets/pegasus.jpg",
		Price:       16500,
		SalePrice:   salePrice,
		ReleaseDate: time.Date(2024, time.June, 29, 0, 0, 0, 0, time.UTC),
		NumOfColors: 3,
		Audience:    model.AudienceMen,
	}
}

func TestNewCard(t *testing.T) {
	sale := int64(12000)

	tests := []struct {
		name            string
		shoe            model.Shoe
		variant         catalog.Variant
		expectLabel     string
		expectSalePrice string
		expectStrike    bool
	}{
		{
			name:            "On sale",
			shoe:            testShoe(&sale),
			variant:         catalog.VariantOnSale,
			expectLabel:     "Sale",
			expectSalePrice: "$120",
			expectStrike:    true,
		},
		{
			name:        "New release",
			shoe:        testShoe(nil),
			variant:     catalog.VariantNewRelease,
			expectLabel: "Just Released!",
		},
		{
			name:    "Default",
			shoe:    testShoe(nil),
			variant: catalog.VariantDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewCard(tt.shoe, tt.variant)

			assert.Equal(t, "/shoe/pegasus", card.Href)
			assert.Equal(t, "Pegasus", card.Name)
			assert.Equal(t, "$165", card.FormattedPrice)
			assert.Equal(t, "3 Colors", card.ColorInfo)
			assert.Equal(t, tt.variant, card.Variant)
			assert.Equal(t, tt.expectLabel, card.Label)
			assert.Equal(t, tt.expectSalePrice, card.FormattedSalePrice)
			assert.Equal(t, tt.expectStrike, card.Strikethrough)
		})
	}
}

func TestNewCards(t *testing.T) {
	shoes := []model.ShoeCard{
		{Shoe: testShoe(nil), Variant: catalog.VariantDefault},
		{Shoe: testShoe(nil), Variant: catalog.VariantNewRelease},
	}

	cards := NewCards(shoes)

	assert.Len(t, cards, 2)
	assert.Equal(t, catalog.VariantNewRelease, cards[1].Variant)
	assert.NotNil(t, NewCards(nil))
}

func TestNewHeader(t *testing.T) {
	header := NewHeader("Sole Store", catalog.SectionNew)

	assert.Equal(t, "Sole Store", header.StoreName)
	assert.Len(t, header.Links, 6)
	for _, link := range header.Links {
		assert.Equal(t, link.Href == "/new", link.Active, link.Href)
	}
}
