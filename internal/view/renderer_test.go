package view

import (
	"bytes"
	"testing"

	"shoe-store/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLRenderer_RenderPage(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	require.NoError(t, err)

	sale := int64(12000)
	page := Page{
		Title:  "Sale",
		Header: NewHeader("Sole Store", catalog.SectionSale),
		Cards: []Card{
			NewCard(testShoe(&sale), catalog.VariantOnSale),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderer.RenderPage(&buf, page))
	html := buf.String()

	assert.Contains(t, html, `href="/shoe/pegasus"`)
	assert.Contains(t, html, "Pegasus")
	assert.Contains(t, html, `<span class="price strikethrough">$165</span>`)
	assert.Contains(t, html, `<span class="sale-price">$120</span>`)
	assert.Contains(t, html, ">Sale</label>")
	assert.Contains(t, html, "3 Colors")
	assert.Contains(t, html, `<a class="nav-link active" href="/sale">Sale</a>`)
	assert.Contains(t, html, `href="/collections"`)
}

func TestHTMLRenderer_RenderPage_DefaultCardHasNoBadge(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	require.NoError(t, err)

	page := Page{
		Title:  "All shoes",
		Header: NewHeader("Sole Store", ""),
		Cards:  []Card{NewCard(testShoe(nil), catalog.VariantDefault)},
	}

	var buf bytes.Buffer
	require.NoError(t, renderer.RenderPage(&buf, page))
	html := buf.String()

	assert.NotContains(t, html, "card-alert")
	assert.NotContains(t, html, "sale-price")
	assert.Contains(t, html, `<span class="price">$165</span>`)
	assert.NotContains(t, html, "nav-link active")
}

func TestHTMLRenderer_RenderPage_Empty(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.RenderPage(&buf, Page{Title: "Kids", Header: NewHeader("Sole Store", "kids")}))
	assert.Contains(t, buf.String(), "No shoes here yet.")
}

func TestHTMLRenderer_RenderDetail(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.RenderDetail(&buf, Page{Header: NewHeader("Sole Store", "")})
	require.Error(t, err)

	page := Page{
		Title:  "Pegasus",
		Header: NewHeader("Sole Store", ""),
		Cards:  []Card{NewCard(testShoe(nil), catalog.VariantNewRelease)},
	}
	require.NoError(t, renderer.RenderDetail(&buf, page))
	assert.Contains(t, buf.String(), "Just Released!")
}

func TestHTMLRenderer_EscapesDisplayStrings(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	require.NoError(t, err)

	shoe := testShoe(nil)
	shoe.Name = "<script>alert(1)</script>"

	var buf bytes.Buffer
	require.NoError(t, renderer.RenderPage(&buf, Page{
		Header: NewHeader("Sole Store", ""),
		Cards:  []Card{NewCard(shoe, catalog.VariantDefault)},
	}))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}
