package obsidian

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Slugify converts s to a lowercase ASCII slug.
// "Science Fiction" -> "science-fiction", "Ciencia Ficción" -> "ciencia-ficcion".
func Slugify(s string) string {
	// Decompose accented characters so the base letter survives
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeTag turns a tag into Obsidian form. A leading # is dropped and
// every /-separated segment is slugified, so "#Genre/Science Fiction"
// becomes "genre/science-fiction". Returns "" when nothing is left.
func NormalizeTag(tag string) string {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")

	var segments []string
	for _, segment := range strings.Split(tag, "/") {
		if slug := Slugify(segment); slug != "" {
			segments = append(segments, slug)
		}
	}
	return strings.Join(segments, "/")
}

// TagSet collects normalized, deduplicated tags.
type TagSet struct {
	tags map[string]struct{}
}

// NewTagSet creates an empty TagSet
func NewTagSet() *TagSet {
	return &TagSet{tags: make(map[string]struct{})}
}

// Add normalizes tag and adds it unless it is empty.
func (ts *TagSet) Add(tag string) {
	if normalized := NormalizeTag(tag); normalized != "" {
		ts.tags[normalized] = struct{}{}
	}
}

// AddIf adds tag when condition holds
func (ts *TagSet) AddIf(condition bool, tag string) {
	if condition {
		ts.Add(tag)
	}
}

// Sorted returns the tags in lexical order
func (ts *TagSet) Sorted() []string {
	result := make([]string, 0, len(ts.tags))
	for tag := range ts.tags {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}

// MergeTags returns the sorted union of both lists after normalization.
func MergeTags(existing, added []string) []string {
	ts := NewTagSet()
	for _, tag := range existing {
		ts.Add(tag)
	}
	for _, tag := range added {
		ts.Add(tag)
	}
	return ts.Sorted()
}

// TagsFromAny extracts strings from a decoded YAML value, which may be
// []string or []any.
func TagsFromAny(val any) []string {
	var result []string
	switch v := val.(type) {
	case []string:
		for _, s := range v {
			if s != "" {
				result = append(result, s)
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				result = append(result, s)
			}
		}
	}
	if result == nil {
		return []string{}
	}
	return result
}
