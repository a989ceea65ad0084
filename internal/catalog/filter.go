package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/xenking/kirana-storefront/internal/domain/product"
)

// SortKey selects the ordering applied to a filtered product view.
type SortKey string

const (
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// Filter returns the subsequence of products matching the category (when
// non-empty) and whose name or description contains term case-insensitively
// (when non-empty). Relative catalog order is preserved.
func Filter(products []product.Product, category product.Category, term string) []product.Product {
	term = strings.ToLower(strings.TrimSpace(term))

	var out []product.Product
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProducts orders the filtered view in place. Name keys compare with an
// en-IN collator, price keys numerically (a zero-value price sorts as 0).
// Unknown keys leave the order unchanged.
func SortProducts(view []product.Product, key SortKey) {
	switch key {
	case SortNameAsc, SortNameDesc:
		col := collate.New(language.MustParse("en-IN"))
		sort.SliceStable(view, func(i, j int) bool {
			if key == SortNameDesc {
				i, j = j, i
			}
			return col.CompareString(view[i].Name, view[j].Name) < 0
		})
	case SortPriceAsc, SortPriceDesc:
		sort.SliceStable(view, func(i, j int) bool {
			if key == SortPriceDesc {
				i, j = j, i
			}
			return view[i].Price.LessThan(view[j].Price)
		})
	}
}
