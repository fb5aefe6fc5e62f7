package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jask/catalogedit/internal/catalog"
)

// text decodes a JSON scalar into its textual form. Strings are unquoted,
// numbers and booleans are kept as written. Null counts as absent.
type text struct {
	value   string
	present bool
}

func (t *text) UnmarshalJSON(b []byte) error {
	b = []byte(strings.TrimSpace(string(b)))
	if len(b) == 0 || string(b) == "null" {
		*t = text{}
		return nil
	}
	switch b[0] {
	case '"':
		if err := json.Unmarshal(b, &t.value); err != nil {
			return err
		}
	case '{', '[':
		return fmt.Errorf("expected a scalar, got %s", b)
	default:
		t.value = string(b)
	}
	t.present = true
	return nil
}

type wireProduct struct {
	Title       text `json:"title"`
	Price       text `json:"price"`
	Image       text `json:"image"`
	Discount    text `json:"discount"`
	Category    text `json:"category"`
	Brand       text `json:"brand"`
	Inventory   text `json:"inventory"`
	Keywords    text `json:"keywords"`
	Description text `json:"description"`
}

// product converts the wire form, reporting every missing field at once.
// Values are taken verbatim, including categories outside the known set.
func (w wireProduct) product(id string) (catalog.Product, error) {
	var missing []string
	get := func(f catalog.Field, t text) string {
		if !t.present {
			missing = append(missing, f.String())
		}
		return t.value
	}
	p := catalog.Product{
		ID: id,
		Fields: catalog.Fields{
			Title:       get(catalog.FieldTitle, w.Title),
			Price:       get(catalog.FieldPrice, w.Price),
			Image:       get(catalog.FieldImage, w.Image),
			Discount:    get(catalog.FieldDiscount, w.Discount),
			Category:    catalog.Category(get(catalog.FieldCategory, w.Category)),
			Brand:       get(catalog.FieldBrand, w.Brand),
			Inventory:   get(catalog.FieldInventory, w.Inventory),
			Keywords:    get(catalog.FieldKeywords, w.Keywords),
			Description: get(catalog.FieldDescription, w.Description),
		},
	}
	if len(missing) > 0 {
		return catalog.Product{}, fmt.Errorf("%w: missing %s", ErrIncompleteRecord, strings.Join(missing, ", "))
	}
	return p, nil
}
