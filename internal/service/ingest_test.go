package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/catalogedit/internal/database"
	"github.com/jask/catalogedit/internal/database/repository"
)

func testRepo(t *testing.T) (*repository.ProductRepo, *MaintenanceService) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewProductRepo(db), &MaintenanceService{DB: db}
}

func TestImportCSV(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo, _ := testRepo(t)
	svc := &IngestService{Products: repo}

	data := strings.Join([]string{
		"id,title,price,image,discount,category,brand,inventory,keywords,description",
		"p100,Pen,1.50,http://x/pen.png,0,book,Bic,10,\"pen,ink\",A pen",
		",Rain Jacket,89,http://x/jacket.png,25,apparel,Patagonia,6,rain,Shell",
		"p300,Broken,abc,,0,toys,,1,,",
		"p400,Short",
	}, "\n")

	res, err := svc.ImportCSV(ctx, strings.NewReader(data), "v9")
	require.NoError(t, err)
	require.Equal(t, 2, res.Imported)
	require.Equal(t, 0, res.Updated)
	require.Len(t, res.Errors, 2)
	require.Contains(t, res.Errors[0].Error(), "line 4")
	require.Contains(t, res.Errors[1].Error(), "expected 10 columns")

	p, err := repo.Get(ctx, "p100")
	require.NoError(t, err)
	require.Equal(t, "pen,ink", p.Keywords)
	require.Equal(t, "v9", p.VendorID)

	again, err := svc.ImportCSV(ctx, strings.NewReader(data), "v9")
	require.NoError(t, err)
	require.Equal(t, 0, again.Imported)
	require.Equal(t, 2, again.Updated)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestImportCSVRespectsOwner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _ := testRepo(t)
	require.NoError(t, repo.Insert(ctx, repository.Product{ID: "p100", VendorID: "v1", Title: "Pen", Category: "book"}))
	svc := &IngestService{Products: repo}

	res, err := svc.ImportCSV(ctx, strings.NewReader("p100,Mine now,1,,0,book,,1,,\n"), "v9")
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	require.ErrorIs(t, res.Errors[0], ErrForbidden)

	p, err := repo.Get(ctx, "p100")
	require.NoError(t, err)
	require.Equal(t, "Pen", p.Title)
}

func TestImportCSVNeedsVendor(t *testing.T) {
	repo, _ := testRepo(t)
	svc := &IngestService{Products: repo}
	_, err := svc.ImportCSV(context.Background(), strings.NewReader(""), " ")
	require.Error(t, err)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	repo, maint := testRepo(t)
	require.NoError(t, repo.Insert(ctx, repository.Product{ID: "p100", Title: "Pen", Category: "book"}))
	require.NoError(t, maint.Reset(ctx))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	require.Error(t, (&MaintenanceService{}).Reset(ctx))
}
