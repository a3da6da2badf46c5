package core

import (
	"fmt"

	"github.com/JonMunkholm/menuboard/internal/csvimport"
)

// maxDuplicateWarnings bounds the per-key warnings added to a result.
const maxDuplicateWarnings = 10

// DuplicateKey is a product key shared by more than one valid row of the
// same upload. Rows are upserted in file order, so the last row wins.
type DuplicateKey struct {
	StoreCode       string `json:"store_code"`
	ProductCategory string `json:"product_category"`
	ProductName     string `json:"product_name"`
	Rows            []int  `json:"rows"`
}

type productKey struct {
	store, category, name string
}

// findDuplicates groups valid products by upsert key. report.Valid holds the
// rows that are not in report.Errors, in file order, which recovers each
// product's row number.
func findDuplicates(report csvimport.ImportReport, totalRows int) []DuplicateKey {
	failed := make(map[int]bool, len(report.Errors))
	for _, e := range report.Errors {
		failed[e.Row] = true
	}

	rows := make(map[productKey][]int, len(report.Valid))
	order := []productKey{}
	next := 0
	for row := 1; row <= totalRows && next < len(report.Valid); row++ {
		if failed[row] {
			continue
		}
		p := report.Valid[next]
		next++

		k := productKey{p.StoreCode, p.ProductCategory, p.ProductName}
		if _, seen := rows[k]; !seen {
			order = append(order, k)
		}
		rows[k] = append(rows[k], row)
	}

	dups := []DuplicateKey{}
	for _, k := range order {
		if len(rows[k]) < 2 {
			continue
		}
		dups = append(dups, DuplicateKey{
			StoreCode:       k.store,
			ProductCategory: k.category,
			ProductName:     k.name,
			Rows:            rows[k],
		})
	}
	return dups
}

func duplicateWarnings(dups []DuplicateKey) []string {
	warnings := make([]string, 0, min(len(dups), maxDuplicateWarnings)+1)
	for i, d := range dups {
		if i == maxDuplicateWarnings {
			warnings = append(warnings, fmt.Sprintf("%d more duplicated products", len(dups)-i))
			break
		}
		warnings = append(warnings, fmt.Sprintf("duplicate product %s/%s/%s on rows %v; the last row wins",
			d.StoreCode, d.ProductCategory, d.ProductName, d.Rows))
	}
	return warnings
}
