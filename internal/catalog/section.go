package catalog

// Section is a storefront destination linked from the page header.
type Section struct {
	Slug  string
	Title string
}

// Href is the page path for the section.
func (s Section) Href() string {
	return "/" + s.Slug
}

// Section slugs.
const (
	SectionSale        = "sale"
	SectionNew         = "new"
	SectionMen         = "men"
	SectionWomen       = "women"
	SectionKids        = "kids"
	SectionCollections = "collections"
)

var sections = []Section{
	{Slug: SectionSale, Title: "Sale"},
	{Slug: SectionNew, Title: "New Releases"},
	{Slug: SectionMen, Title: "Men"},
	{Slug: SectionWomen, Title: "Women"},
	{Slug: SectionKids, Title: "Kids"},
	{Slug: SectionCollections, Title: "Collections"},
}

// Sections returns the header navigation in display order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// ParseSection resolves a section slug. The empty slug is the unfiltered catalogue.
func ParseSection(slug string) (Section, bool) {
	if slug == "" {
		return Section{}, true
	}
	for _, s := range sections {
		if s.Slug == slug {
			return s, true
		}
	}
	return Section{}, false
}

// Sort orders for catalogue listings.
const (
	SortNewest = "newest"
	SortPrice  = "price"
)

// ParseSort validates a sort order, defaulting to SortNewest.
func ParseSort(sort string) (string, bool) {
	switch sort {
	case "", SortNewest:
		return SortNewest, true
	case SortPrice:
		return SortPrice, true
	default:
		return "", false
	}
}
