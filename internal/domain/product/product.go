package product

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Category is the closed set of catalog sections a product can belong to.
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategoryDairy      Category = "dairy"
	CategoryGroceries  Category = "groceries"
	CategorySpices     Category = "spices"
)

// ErrUnknownCategory is returned when a catalog record carries a category
// outside the closed set.
var ErrUnknownCategory = errors.New("unknown product category")

// ParseCategory validates a raw category value from the catalog feed.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryVegetables, CategoryFruits, CategoryDairy, CategoryGroceries, CategorySpices:
		return c, nil
	default:
		return "", errors.Wrap(ErrUnknownCategory, s)
	}
}

// DisplayName maps a category to its storefront label.
func (c Category) DisplayName() string {
	switch c {
	case CategoryVegetables:
		return "Vegetables"
	case CategoryFruits:
		return "Fruits"
	case CategoryDairy:
		return "Dairy Products"
	case CategoryGroceries:
		return "Groceries"
	case CategorySpices:
		return "Spices & Condiments"
	}
	return string(c)
}

// Product is a catalog item available for purchase. Records are loaded once
// per session from the product feed and are immutable afterwards.
type Product struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal // pre-discount price, zero when not discounted
	Discount      int             // percent off, 0 when not discounted
	Category      Category
	Unit          string
	Image         string
	Description   string
	Features      []string
}
