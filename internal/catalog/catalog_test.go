package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("  Apparel ")
	require.NoError(t, err)
	require.Equal(t, CategoryApparel, c)

	_, err = ParseCategory("furniture")
	require.Error(t, err)
	require.False(t, Category("").Valid())
}

func TestEditStateFieldIndependence(t *testing.T) {
	var s EditState
	s.Load(Fields{Title: "Pen", Price: "10", Category: CategoryApparel, Brand: "Acme"})

	s.Set(FieldPrice, "11")
	s.Set(FieldPrice, "12")
	require.Equal(t, "12", s.Price)
	require.Equal(t, "Pen", s.Title)
	require.Equal(t, "Acme", s.Brand)
	require.Equal(t, CategoryApparel, s.Category)
	require.Equal(t, []Field{FieldPrice}, s.DirtyFields())

	s.Set(FieldPrice, "10")
	require.False(t, s.HasChanges())
}

func TestEditStateCloneIsDetached(t *testing.T) {
	var s EditState
	s.Load(Fields{Title: "Pen"})
	s.Set(FieldTitle, "Pencil")

	c := s.Clone()
	s.Set(FieldBrand, "Acme")
	require.True(t, s.Dirty(FieldBrand))
	require.False(t, c.Dirty(FieldBrand))
	require.Equal(t, "Pencil", c.Title)
}

func TestTags(t *testing.T) {
	f := Fields{Keywords: "ink, Pen,, pen ,office"}
	require.Equal(t, []string{"ink", "Pen", "office"}, f.Tags())
	require.Empty(t, Fields{}.Tags())
}

func TestUpdateRequestJSON(t *testing.T) {
	var s EditState
	s.Load(Fields{Title: "Pen", Price: "12", Category: CategoryApparel})
	raw, err := json.Marshal(s.UpdateRequest("p100", "v9"))
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, "12", body["price"])
	require.Equal(t, "p100", body["productId"])
	require.Equal(t, "v9", body["vendorId"])
	require.Len(t, body, 11)
}

func TestFieldNames(t *testing.T) {
	require.Len(t, AllFields(), 9)
	require.Equal(t, "discount", FieldDiscount.String())
	require.Equal(t, "In stock", FieldInventory.Label())
}
