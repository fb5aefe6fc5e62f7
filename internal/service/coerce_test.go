package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/catalogedit/internal/catalog"
)

func TestCoerce(t *testing.T) {
	p, err := coerce("p1", catalog.Fields{
		Title: " Pen ", Price: "1.50", Discount: "12.5", Category: "Book", Inventory: " 7 ",
		Keywords: "pen, ink",
	})
	require.NoError(t, err)
	require.Equal(t, "Pen", p.Title)
	require.Equal(t, 1.5, p.Price)
	require.Equal(t, 12.5, p.Discount)
	require.Equal(t, "book", p.Category)
	require.Equal(t, int64(7), p.Inventory)
}

func TestCoerceEmptyNumbersAreZero(t *testing.T) {
	p, err := coerce("p1", catalog.Fields{Title: "Pen", Category: catalog.CategoryBook})
	require.NoError(t, err)
	require.Zero(t, p.Price)
	require.Zero(t, p.Inventory)
}

func TestCoerceReportsEveryProblem(t *testing.T) {
	tests := []struct {
		name   string
		fields catalog.Fields
		want   string
	}{
		{"title", catalog.Fields{Category: "book"}, "title is required"},
		{"negative price", catalog.Fields{Title: "x", Category: "book", Price: "-1"}, "price must be >= 0"},
		{"nan price", catalog.Fields{Title: "x", Category: "book", Price: "NaN"}, "is not a number"},
		{"fractional inventory", catalog.Fields{Title: "x", Category: "book", Inventory: "1.5"}, "not a whole number"},
		{"negative inventory", catalog.Fields{Title: "x", Category: "book", Inventory: "-2"}, "inventory must be >= 0"},
		{"category", catalog.Fields{Title: "x", Category: "toys"}, "unknown category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := coerce("p1", tt.fields)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}
