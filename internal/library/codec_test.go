package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := NewCollection(nil, WithClock(fixedClock(testNow)))
	_, err := c.Add("Dune", "Frank Herbert", "Sci-Fi")
	require.NoError(t, err)
	second, err := c.Add("Emma", "Jane Austen", "")
	require.NoError(t, err)
	require.True(t, c.SetReview(second.ID, 4, "Witty \"and\" <sharp> & kind"))

	original := c.All()
	data, err := EncodeBooks(original)
	require.NoError(t, err)

	decoded := DecodeBooks(data)
	require.Len(t, decoded, len(original))
	for i := range original {
		assert.Equal(t, original[i].ID, decoded[i].ID)
		assert.Equal(t, original[i].Title, decoded[i].Title)
		assert.Equal(t, original[i].Author, decoded[i].Author)
		assert.Equal(t, original[i].Genre, decoded[i].Genre)
		assert.Equal(t, original[i].Rating, decoded[i].Rating)
		assert.Equal(t, original[i].Review, decoded[i].Review)
		assert.True(t, original[i].DateAdded.Equal(decoded[i].DateAdded),
			"dateAdded %v != %v", original[i].DateAdded, decoded[i].DateAdded)
	}
}

func TestEncodeBooksEmpty(t *testing.T) {
	data, err := EncodeBooks(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestEncodeBooksFieldNames(t *testing.T) {
	data, err := EncodeBooks([]Book{{
		ID:        1710000000000,
		Title:     "Dune",
		Author:    "Frank Herbert",
		Genre:     "Sci-Fi",
		Rating:    5,
		Review:    "Excellent",
		DateAdded: time.Date(2024, 3, 9, 16, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": 1710000000000,
		"title": "Dune",
		"author": "Frank Herbert",
		"genre": "Sci-Fi",
		"rating": 5,
		"review": "Excellent",
		"dateAdded": "2024-03-09T16:00:00Z"
	}]`, string(data))
}

func TestDecodeBooks(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantIDs []int64
		check   func(t *testing.T, books []Book)
	}{
		{
			name:    "not json",
			input:   `{{{`,
			wantIDs: []int64{},
		},
		{
			name:    "object instead of array",
			input:   `{"id": 1}`,
			wantIDs: []int64{},
		},
		{
			name:    "browser-written blob",
			input:   `[{"id":1709990000123,"title":"Dune","author":"Frank Herbert","genre":"Sci-Fi","rating":0,"review":"","dateAdded":"2024-03-09T13:13:20.123Z"}]`,
			wantIDs: []int64{1709990000123},
			check: func(t *testing.T, books []Book) {
				want := time.Date(2024, 3, 9, 13, 13, 20, 123000000, time.UTC)
				assert.True(t, books[0].DateAdded.Equal(want))
			},
		},
		{
			name:    "malformed entries dropped",
			input:   `[{"id":1,"title":"A","author":"B"}, 42, {"title":"no id","author":"x"}, {"id":"3","title":"string id","author":"x"}, {"id":4,"title":" ","author":"x"}]`,
			wantIDs: []int64{1},
		},
		{
			name:    "ratings coerced",
			input:   `[{"id":1,"title":"A","author":"B","rating":9},{"id":2,"title":"C","author":"D","rating":-2},{"id":3,"title":"E","author":"F","rating":3.6},{"id":4,"title":"G","author":"H"}]`,
			wantIDs: []int64{1, 2, 3, 4},
			check: func(t *testing.T, books []Book) {
				assert.Equal(t, 5, books[0].Rating)
				assert.Equal(t, 0, books[1].Rating)
				assert.Equal(t, 4, books[2].Rating)
				assert.Equal(t, 0, books[3].Rating)
			},
		},
		{
			name:    "duplicate ids keep first",
			input:   `[{"id":1,"title":"First","author":"B"},{"id":1,"title":"Second","author":"B"}]`,
			wantIDs: []int64{1},
			check: func(t *testing.T, books []Book) {
				assert.Equal(t, "First", books[0].Title)
			},
		},
		{
			name:    "bad date kept as zero",
			input:   `[{"id":1,"title":"A","author":"B","dateAdded":"yesterday"}]`,
			wantIDs: []int64{1},
			check: func(t *testing.T, books []Book) {
				assert.True(t, books[0].DateAdded.IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books := DecodeBooks([]byte(tt.input))
			require.NotNil(t, books)

			ids := make([]int64, 0, len(books))
			for _, b := range books {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)

			if tt.check != nil {
				tt.check(t, books)
			}
		})
	}
}
