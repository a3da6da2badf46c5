package csvimport

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Column names of the product import schema.
const (
	ColStoreCode       = "store_code"
	ColProductCategory = "product_category"
	ColProductName     = "product_name"
	ColStrainType      = "strain_type"
	ColStrainCross     = "strain_cross"
	ColDescription     = "description"
	ColTerpene         = "terpene"
	ColStrength        = "strength"
	ColTHCAPercent     = "thca_percent"
	ColDelta9Percent   = "delta9_percent"
	ColIsGummy         = "is_gummy"
	ColIsCookie        = "is_cookie"
)

// Categories is the closed product_category vocabulary, in display order.
var Categories = []string{
	"Flower",
	"Prerolls",
	"Vapes",
	"Edibles",
	"Concentrates",
	"Tinctures",
	"Topicals",
	"Accessories",
}

// CanonicalCategory returns the vocabulary spelling of s, matched
// case-insensitively after trimming.
func CanonicalCategory(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(c, s) {
			return c, true
		}
	}
	return "", false
}

// ValidatedProduct is a RowRecord after coercion into typed catalog fields.
type ValidatedProduct struct {
	StoreCode       string              `json:"store_code"`
	ProductCategory string              `json:"product_category"`
	ProductName     string              `json:"product_name"`
	StrainType      string              `json:"strain_type"`
	StrainCross     string              `json:"strain_cross"`
	Description     string              `json:"description"`
	Terpene         string              `json:"terpene"`
	Strength        string              `json:"strength"`
	THCAPercent     decimal.NullDecimal `json:"thca_percent"`
	Delta9Percent   decimal.NullDecimal `json:"delta9_percent"`
	IsGummy         bool                `json:"is_gummy"`
	IsCookie        bool                `json:"is_cookie"`
}

// ValidationError lists every problem found in one data row.
// Row is the 1-based position among data rows (the header is not counted).
type ValidationError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, strings.Join(e.Errors, "; "))
}

// ImportReport pairs the rows that passed validation with the rows that did
// not. Both slices are always non-nil.
type ImportReport struct {
	Valid  []ValidatedProduct `json:"valid"`
	Errors []ValidationError  `json:"errors"`
}
