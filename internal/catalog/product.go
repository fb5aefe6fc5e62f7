// Package catalog holds the product record edited by operators and the
// request payloads sent to the catalog backend.
package catalog

import (
	"fmt"
	"strings"
)

// Category is one of a fixed, closed set of product categories.
type Category string

const (
	CategoryBook        Category = "book"
	CategoryApparel     Category = "apparel"
	CategoryGrocery     Category = "grocery"
	CategoryElectronics Category = "electronics"
)

// Categories lists the selectable categories in display order.
func Categories() []Category {
	return []Category{CategoryBook, CategoryApparel, CategoryGrocery, CategoryElectronics}
}

// Valid reports whether c is a member of the category set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory normalizes s and checks it against the category set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Field identifies one of the nine mutable product attributes.
type Field int

const (
	FieldTitle Field = iota
	FieldPrice
	FieldImage
	FieldDiscount
	FieldCategory
	FieldBrand
	FieldInventory
	FieldKeywords
	FieldDescription
)

var fieldNames = [...]string{
	FieldTitle:       "title",
	FieldPrice:       "price",
	FieldImage:       "image",
	FieldDiscount:    "discount",
	FieldCategory:    "category",
	FieldBrand:       "brand",
	FieldInventory:   "inventory",
	FieldKeywords:    "keywords",
	FieldDescription: "description",
}

var fieldLabels = [...]string{
	FieldTitle:       "Title",
	FieldPrice:       "Price",
	FieldImage:       "Image URL",
	FieldDiscount:    "Discount %",
	FieldCategory:    "Category",
	FieldBrand:       "Brand",
	FieldInventory:   "In stock",
	FieldKeywords:    "Keywords",
	FieldDescription: "Description",
}

// AllFields returns the mutable fields in form order.
func AllFields() []Field {
	out := make([]Field, 0, len(fieldNames))
	for f := range fieldNames {
		out = append(out, Field(f))
	}
	return out
}

// String returns the wire name of the field.
func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Label returns the human readable form label.
func (f Field) Label() string {
	if f < 0 || int(f) >= len(fieldLabels) {
		return f.String()
	}
	return fieldLabels[f]
}

// Fields carries the nine mutable attributes of a product. Numeric-looking
// values stay as raw text; the backend owns coercion.
type Fields struct {
	Title       string   `json:"title"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Discount    string   `json:"discount"`
	Category    Category `json:"category"`
	Brand       string   `json:"brand"`
	Inventory   string   `json:"inventory"`
	Keywords    string   `json:"keywords"`
	Description string   `json:"description"`
}

// Get returns the raw value of f.
func (v Fields) Get(f Field) string {
	switch f {
	case FieldTitle:
		return v.Title
	case FieldPrice:
		return v.Price
	case FieldImage:
		return v.Image
	case FieldDiscount:
		return v.Discount
	case FieldCategory:
		return string(v.Category)
	case FieldBrand:
		return v.Brand
	case FieldInventory:
		return v.Inventory
	case FieldKeywords:
		return v.Keywords
	case FieldDescription:
		return v.Description
	}
	return ""
}

func (v *Fields) set(f Field, value string) {
	switch f {
	case FieldTitle:
		v.Title = value
	case FieldPrice:
		v.Price = value
	case FieldImage:
		v.Image = value
	case FieldDiscount:
		v.Discount = value
	case FieldCategory:
		v.Category = Category(value)
	case FieldBrand:
		v.Brand = value
	case FieldInventory:
		v.Inventory = value
	case FieldKeywords:
		v.Keywords = value
	case FieldDescription:
		v.Description = value
	}
}

// Tags splits the comma separated keywords into a de-duplicated tag set,
// preserving first-seen order. Comparison is case-insensitive.
func (v Fields) Tags() []string {
	seen := map[string]bool{}
	var out []string
	for _, raw := range strings.Split(v.Keywords, ",") {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}

// Product is a catalog record as returned by the backend.
type Product struct {
	ID string `json:"productId"`
	Fields
}

// UpdateRequest is the body of an update call: every mutable field, the
// product identifier and the acting vendor.
type UpdateRequest struct {
	Fields
	ProductID string `json:"productId"`
	VendorID  string `json:"vendorId"`
}

// DeleteRequest carries only the identifier of the product to remove.
type DeleteRequest struct {
	ProductID string `json:"productId"`
}
