package view

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStars(t *testing.T) {
	for n := 0; n <= 5; n++ {
		t.Run(fmt.Sprintf("rating %d", n), func(t *testing.T) {
			row := Stars(n)

			assert.Len(t, row, 5)
			assert.Equal(t, n, row.Filled())
			for i, filled := range row {
				assert.Equal(t, i < n, filled, "star %d", i)
			}

			html := string(row.HTML())
			assert.Equal(t, 5, strings.Count(html, "<i "))
			assert.Equal(t, n, strings.Count(html, "bi-star-fill"))

			text := row.Text()
			assert.Equal(t, 5, len([]rune(text)))
			assert.Equal(t, n, strings.Count(text, "★"))
			assert.Equal(t, 5-n, strings.Count(text, "☆"))
		})
	}
}

func TestStarsClamps(t *testing.T) {
	assert.Equal(t, 0, Stars(-1).Filled())
	assert.Equal(t, 5, Stars(12).Filled())
	assert.Equal(t, "★★★★★", Stars(12).Text())
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		limit         int
		want          string
		wantTruncated bool
	}{
		{name: "short", input: "Great", limit: 100, want: "Great"},
		{name: "exact length", input: strings.Repeat("a", 100), limit: 100, want: strings.Repeat("a", 100)},
		{name: "one over", input: strings.Repeat("a", 101), limit: 100, want: strings.Repeat("a", 100), wantTruncated: true},
		{name: "counts characters not bytes", input: "ñandú ñandú", limit: 5, want: "ñandú", wantTruncated: true},
		{name: "empty", input: "", limit: 100, want: ""},
		{name: "zero limit", input: "abc", limit: 0, want: "", wantTruncated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := Excerpt(tt.input, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTruncated, truncated)
		})
	}
}
