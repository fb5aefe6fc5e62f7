package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/catalogedit/internal/catalog"
	"github.com/jask/catalogedit/internal/database/repository"
)

// IngestService loads products from CSV exports.
type IngestService struct {
	Products *repository.ProductRepo
}

type IngestResult struct {
	Imported int
	Updated  int
	Errors   []error
}

// csvColumns is the column order of a product export. The header row is
// optional.
var csvColumns = []string{"id", "title", "price", "image", "discount", "category", "brand", "inventory", "keywords", "description"}

// ImportCSV upserts every row as a product owned by vendorID. Rows without
// an id get one derived from vendor and title, so re-importing the same file
// updates rather than duplicates. Rows that fail validation or belong to
// another vendor are reported and skipped.
func (s *IngestService) ImportCSV(ctx context.Context, r io.Reader, vendorID string) (IngestResult, error) {
	res := IngestResult{}
	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return res, fmt.Errorf("ingest: vendor id required")
	}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	line := 0
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "id") {
			continue
		}
		if len(rec) < len(csvColumns) {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: expected %d columns (%s)", line, len(csvColumns), strings.Join(csvColumns, ", ")))
			continue
		}

		id := strings.TrimSpace(rec[0])
		if id == "" {
			id = uuid.NewSHA1(uuid.NameSpaceOID, []byte("product:"+vendorID+":"+strings.TrimSpace(rec[1]))).String()
		}
		row, err := coerce(id, catalog.Fields{
			Title:       rec[1],
			Price:       rec[2],
			Image:       rec[3],
			Discount:    rec[4],
			Category:    catalog.Category(rec[5]),
			Brand:       rec[6],
			Inventory:   rec[7],
			Keywords:    rec[8],
			Description: rec[9],
		})
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		row.VendorID = vendorID

		existing, err := s.Products.Get(ctx, id)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			if err := s.Products.Insert(ctx, row); err != nil {
				res.Errors = append(res.Errors, fmt.Errorf("line %d insert: %w", line, err))
				continue
			}
			res.Imported++
		case err != nil:
			return res, err
		case existing.VendorID != "" && existing.VendorID != vendorID:
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %s: %w", line, id, ErrForbidden))
		default:
			if err := s.Products.Upsert(ctx, row); err != nil {
				res.Errors = append(res.Errors, fmt.Errorf("line %d update: %w", line, err))
				continue
			}
			res.Updated++
		}
	}
	return res, nil
}
