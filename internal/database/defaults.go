package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/catalogedit/internal/database/repository"
)

// SampleProductID is the fixed id of the first seeded product.
const SampleProductID = "p100"

// SeedDefaults fills an empty database with a few products owned by vendorID.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB, vendorID string) error {
	repo := repository.NewProductRepo(db)
	n, err := repo.Count(ctx)
	if err == nil && n > 0 {
		return nil
	}
	seeds := []repository.Product{
		{ID: SampleProductID, Title: "Pen", Price: 1.5, Image: "http://x/pen.png", Discount: 0,
			Category: "book", Brand: "Bic", Inventory: 10, Keywords: "pen,ink", Description: "A pen"},
		{Title: "Field Notes", Price: 12.95, Image: "http://x/notes.png", Discount: 10,
			Category: "book", Brand: "Field Notes", Inventory: 40, Keywords: "notebook,paper", Description: "Pocket notebooks, pack of three"},
		{Title: "Rain Jacket", Price: 89, Image: "http://x/jacket.png", Discount: 25,
			Category: "apparel", Brand: "Patagonia", Inventory: 6, Keywords: "jacket,rain,outdoor", Description: "Lightweight shell"},
		{Title: "Espresso Beans", Price: 16.5, Image: "http://x/beans.png", Discount: 0,
			Category: "grocery", Brand: "Lavazza", Inventory: 120, Keywords: "coffee,beans", Description: "1kg bag, medium roast"},
		{Title: "USB-C Cable", Price: 9.99, Image: "http://x/cable.png", Discount: 5,
			Category: "electronics", Brand: "Anker", Inventory: 300, Keywords: "cable,usb", Description: "1m braided cable"},
	}
	for _, p := range seeds {
		if p.ID == "" {
			p.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("product:"+p.Title)).String()
		}
		p.VendorID = vendorID
		if err := repo.Upsert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
