package view

import "shoe-store/internal/catalog"

// NavLink is one entry of the header navigation.
type NavLink struct {
	Href   string
	Title  string
	Active bool
}

// Header is the page header: the store name and the section navigation.
type Header struct {
	StoreName string
	Links     []NavLink
}

// NewHeader builds the header, marking the section with slug active.
func NewHeader(storeName, active string) Header {
	sections := catalog.Sections()
	links := make([]NavLink, 0, len(sections))
	for _, s := range sections {
		links = append(links, NavLink{
			Href:   s.Href(),
			Title:  s.Title,
			Active: s.Slug == active,
		})
	}
	return Header{StoreName: storeName, Links: links}
}

// Page is everything needed to render a storefront page.
type Page struct {
	Title  string
	Header Header
	Cards  []Card
}
