package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/catalogedit/internal/catalog"
	"github.com/jask/catalogedit/internal/database/repository"
)

func request(vendor string) catalog.UpdateRequest {
	return catalog.UpdateRequest{
		ProductID: "p100",
		VendorID:  vendor,
		Fields: catalog.Fields{
			Title: "Pen", Price: "2.00", Image: "http://x/pen.png", Discount: "0",
			Category: catalog.CategoryBook, Brand: "Bic", Inventory: "10",
			Keywords: "pen,ink", Description: "A pen",
		},
	}
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()
	repo, _ := testRepo(t)
	require.NoError(t, repo.Insert(ctx, repository.Product{ID: "p100", VendorID: "v9", Title: "Pen", Category: "book"}))
	svc := &ProductService{Products: repo}

	require.NoError(t, svc.Update(ctx, request("v9")))
	p, err := svc.Get(ctx, "p100")
	require.NoError(t, err)
	require.Equal(t, 2.0, p.Price)

	require.ErrorIs(t, svc.Update(ctx, request("v1")), ErrForbidden)

	bad := request("v9")
	bad.Price = "free"
	var verr *ValidationError
	require.True(t, errors.As(svc.Update(ctx, bad), &verr))
	require.Len(t, verr.Problems, 1)

	missing := request("v9")
	missing.ProductID = "nope"
	require.ErrorIs(t, svc.Update(ctx, missing), repository.ErrNotFound)

	require.True(t, errors.As(svc.Update(ctx, request("")), &verr))
}

func TestProductServiceUnownedProduct(t *testing.T) {
	ctx := context.Background()
	repo, _ := testRepo(t)
	require.NoError(t, repo.Insert(ctx, repository.Product{ID: "p100", Title: "Pen", Category: "book"}))
	svc := &ProductService{Products: repo}

	require.NoError(t, svc.Update(ctx, request("v1")))
	p, err := repo.Get(ctx, "p100")
	require.NoError(t, err)
	require.Empty(t, p.VendorID)
}

func TestProductServiceDelete(t *testing.T) {
	ctx := context.Background()
	repo, _ := testRepo(t)
	require.NoError(t, repo.Insert(ctx, repository.Product{ID: "p100", Title: "Pen", Category: "book"}))
	svc := &ProductService{Products: repo}

	var verr *ValidationError
	require.True(t, errors.As(svc.Delete(ctx, ""), &verr))
	require.NoError(t, svc.Delete(ctx, "p100"))
	require.ErrorIs(t, svc.Delete(ctx, "p100"), repository.ErrNotFound)
}
