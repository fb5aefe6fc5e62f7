package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jask/catalogedit/internal/catalog"
	"github.com/jask/catalogedit/internal/database/repository"
)

// coerce turns the text fields sent by editors into a typed row. Every
// problem is collected into one *ValidationError.
func coerce(id string, f catalog.Fields) (repository.Product, error) {
	p := repository.Product{
		ID:          id,
		Title:       strings.TrimSpace(f.Title),
		Image:       strings.TrimSpace(f.Image),
		Brand:       strings.TrimSpace(f.Brand),
		Keywords:    strings.TrimSpace(f.Keywords),
		Description: f.Description,
	}
	var problems []string

	if p.Title == "" {
		problems = append(problems, "title is required")
	}
	if cat, err := catalog.ParseCategory(string(f.Category)); err != nil {
		problems = append(problems, err.Error())
	} else {
		p.Category = string(cat)
	}

	price, err := parseNumber(f.Price)
	switch {
	case err != nil:
		problems = append(problems, fmt.Sprintf("price: %v", err))
	case price < 0:
		problems = append(problems, "price must be >= 0")
	}
	p.Price = price

	discount, err := parseNumber(f.Discount)
	switch {
	case err != nil:
		problems = append(problems, fmt.Sprintf("discount: %v", err))
	case discount < 0 || discount > 100:
		problems = append(problems, "discount must be between 0 and 100")
	}
	p.Discount = discount

	inv, err := parseCount(f.Inventory)
	switch {
	case err != nil:
		problems = append(problems, fmt.Sprintf("inventory: %q is not a whole number", f.Inventory))
	case inv < 0:
		problems = append(problems, "inventory must be >= 0")
	}
	p.Inventory = inv

	if len(problems) > 0 {
		return p, &ValidationError{Problems: problems}
	}
	return p, nil
}

func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// parseNumber accepts plain decimals. Empty text counts as zero.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}
