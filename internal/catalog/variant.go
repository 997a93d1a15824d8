package catalog

import "time"

// Variant is the display state of a product card.
type Variant string

const (
	VariantOnSale     Variant = "on-sale"
	VariantNewRelease Variant = "new-release"
	VariantDefault    Variant = "default"
)

// RecencyWindow is how long after release a shoe is shown as a new release.
const RecencyWindow = 30 * 24 * time.Hour

// Classify picks the card variant for a shoe.
//
// A present sale price always wins, even when the shoe is also a new release
// and even when the sale price is zero. Otherwise a release date inside the
// recency window makes the shoe a new release. Release dates in the future
// count as new; there is no upper bound.
func Classify(salePrice *int64, releaseDate, now time.Time) Variant {
	if salePrice != nil {
		return VariantOnSale
	}
	if IsNewRelease(releaseDate, now) {
		return VariantNewRelease
	}
	return VariantDefault
}

// IsNewRelease reports whether releaseDate is strictly after RecencyCutoff(now).
func IsNewRelease(releaseDate, now time.Time) bool {
	return releaseDate.After(RecencyCutoff(now))
}

// RecencyCutoff returns the oldest release date (exclusive) that still counts as new.
func RecencyCutoff(now time.Time) time.Time {
	return now.Add(-RecencyWindow)
}

// Label returns the badge text shown on a card, or "" for no badge.
func Label(v Variant) string {
	switch v {
	case VariantOnSale:
		return "Sale"
	case VariantNewRelease:
		return "Just Released!"
	default:
		return ""
	}
}
