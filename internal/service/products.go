package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jask/catalogedit/internal/catalog"
	"github.com/jask/catalogedit/internal/database/repository"
)

// ErrForbidden is returned when a vendor edits a product it does not own.
var ErrForbidden = errors.New("product belongs to another vendor")

// ValidationError lists every problem found in a request.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Problems, "; ") }

func invalid(problem string) error { return &ValidationError{Problems: []string{problem}} }

// ProductService applies editor requests to the products table.
type ProductService struct {
	Products *repository.ProductRepo
}

func (s *ProductService) Get(ctx context.Context, id string) (repository.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return repository.Product{}, invalid("productId is required")
	}
	return s.Products.Get(ctx, id)
}

// Update coerces the text fields and overwrites the product. Products with
// an owner can only be changed by that vendor; unowned products are claimed
// by nobody and stay unowned.
func (s *ProductService) Update(ctx context.Context, req catalog.UpdateRequest) error {
	id := strings.TrimSpace(req.ProductID)
	if id == "" {
		return invalid("productId is required")
	}
	vendor := strings.TrimSpace(req.VendorID)
	if vendor == "" {
		return invalid("vendorId is required")
	}
	row, err := coerce(id, req.Fields)
	if err != nil {
		return err
	}
	existing, err := s.Products.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.VendorID != "" && existing.VendorID != vendor {
		return ErrForbidden
	}
	return s.Products.Update(ctx, row)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return invalid("productId is required")
	}
	return s.Products.Delete(ctx, id)
}

func (s *ProductService) List(ctx context.Context, f repository.ProductFilters) ([]repository.Product, error) {
	return s.Products.List(ctx, f)
}
