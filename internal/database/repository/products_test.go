package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/catalogedit/internal/database"
	"github.com/jask/catalogedit/internal/database/repository"
)

func newRepo(t *testing.T) *repository.ProductRepo {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, database.RunMigrations(path))
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewProductRepo(db)
}

func pen() repository.Product {
	return repository.Product{
		ID: "p100", VendorID: "v9", Title: "Pen", Price: 1.5, Image: "http://x/pen.png",
		Category: "book", Brand: "Bic", Inventory: 10, Keywords: "pen,ink", Description: "A pen",
	}
}

func TestInsertGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, pen()))

	got, err := repo.Get(ctx, "p100")
	require.NoError(t, err)
	require.Equal(t, "Pen", got.Title)
	require.Equal(t, 1.5, got.Price)
	require.Equal(t, "v9", got.VendorID)
	require.False(t, got.CreatedAt.IsZero())
}

func TestGetMissing(t *testing.T) {
	repo := newRepo(t)
	_, err := repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateKeepsVendor(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, pen()))

	p := pen()
	p.VendorID = "someone-else"
	p.Title = "Blue Pen"
	p.Discount = 12.5
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.Get(ctx, "p100")
	require.NoError(t, err)
	require.Equal(t, "Blue Pen", got.Title)
	require.Equal(t, 12.5, got.Discount)
	require.Equal(t, "v9", got.VendorID)
}

func TestUpdateMissing(t *testing.T) {
	repo := newRepo(t)
	require.ErrorIs(t, repo.Update(context.Background(), pen()), repository.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, pen()))
	require.NoError(t, repo.Delete(ctx, "p100"))
	require.ErrorIs(t, repo.Delete(ctx, "p100"), repository.ErrNotFound)
	_, err := repo.Get(ctx, "p100")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NotErrorIs(t, err, sql.ErrNoRows)
}

func TestUpsertOverwrites(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, pen()))
	p := pen()
	p.Inventory = 3
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.Get(ctx, "p100")
	require.NoError(t, err)
	require.Equal(t, int64(3), got.Inventory)
}

func TestListFilters(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, pen()))
	jacket := repository.Product{ID: "p200", VendorID: "v9", Title: "Jacket", Category: "apparel", Keywords: "rain"}
	other := repository.Product{ID: "p300", VendorID: "v1", Title: "Beans", Category: "grocery", Keywords: "coffee"}
	require.NoError(t, repo.Insert(ctx, jacket))
	require.NoError(t, repo.Insert(ctx, other))

	all, err := repo.List(ctx, repository.ProductFilters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Beans", all[0].Title)

	mine, err := repo.List(ctx, repository.ProductFilters{VendorID: "v9"})
	require.NoError(t, err)
	require.Len(t, mine, 2)

	books, err := repo.List(ctx, repository.ProductFilters{Category: "book"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, "p100", books[0].ID)

	rain, err := repo.List(ctx, repository.ProductFilters{Search: "rain"})
	require.NoError(t, err)
	require.Len(t, rain, 1)
	require.Equal(t, "p200", rain[0].ID)
}
