package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// ErrNotFound is returned when no product row matches.
var ErrNotFound = errors.New("product not found")

// ProductFilters defines list filters.
type ProductFilters struct {
	VendorID string
	Category string
	Search   string
}

// ProductRepo handles products.
type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

const productColumns = "id, vendor_id, title, price, image, discount, category, brand, inventory, keywords, description, created_at, updated_at"

func (r *ProductRepo) Insert(ctx context.Context, p Product) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO products(
	 id, vendor_id, title, price, image, discount, category, brand, inventory, keywords, description,
	 created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`,
		p.ID, p.VendorID, p.Title, p.Price, p.Image, p.Discount, p.Category, p.Brand, p.Inventory,
		p.Keywords, p.Description)
	return err
}

// Upsert inserts p or overwrites every editable column of an existing row.
func (r *ProductRepo) Upsert(ctx context.Context, p Product) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO products(
	 id, vendor_id, title, price, image, discount, category, brand, inventory, keywords, description,
	 created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 vendor_id=excluded.vendor_id, title=excluded.title, price=excluded.price, image=excluded.image,
	 discount=excluded.discount, category=excluded.category, brand=excluded.brand,
	 inventory=excluded.inventory, keywords=excluded.keywords, description=excluded.description,
	 updated_at=CURRENT_TIMESTAMP;
	`,
		p.ID, p.VendorID, p.Title, p.Price, p.Image, p.Discount, p.Category, p.Brand, p.Inventory,
		p.Keywords, p.Description)
	return err
}

func (r *ProductRepo) Get(ctx context.Context, id string) (Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

// Update overwrites the editable columns. Vendor and creation time are kept.
func (r *ProductRepo) Update(ctx context.Context, p Product) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE products SET
	 title = ?, price = ?, image = ?, discount = ?, category = ?, brand = ?, inventory = ?,
	 keywords = ?, description = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ?`,
		p.Title, p.Price, p.Image, p.Discount, p.Category, p.Brand, p.Inventory,
		p.Keywords, p.Description, p.ID)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *ProductRepo) List(ctx context.Context, f ProductFilters) ([]Product, error) {
	var where []string
	var args []interface{}

	if f.VendorID != "" {
		where = append(where, "vendor_id = ?")
		args = append(args, f.VendorID)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Search != "" {
		where = append(where, "(title LIKE ? OR keywords LIKE ?)")
		args = append(args, "%"+f.Search+"%", "%"+f.Search+"%")
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY title ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s scanner) (Product, error) {
	var p Product
	err := s.Scan(&p.ID, &p.VendorID, &p.Title, &p.Price, &p.Image, &p.Discount, &p.Category,
		&p.Brand, &p.Inventory, &p.Keywords, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
