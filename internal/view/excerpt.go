package view

// ReviewExcerptLength is the number of characters of a review shown on a card
const ReviewExcerptLength = 100

// Ellipsis marks a truncated excerpt
const Ellipsis = "..."

// Excerpt returns the first limit characters (runes) of s and whether
// anything was cut off.
func Excerpt(s string, limit int) (string, bool) {
	if limit < 0 {
		limit = 0
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i], true
		}
		count++
	}
	return s, false
}
