package csvimport

// workbook.go lets operators use Excel instead of CSV. A workbook is read into
// the same Document shape Parse returns, so validation does not care which
// format was uploaded.

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ProductsSheet is the sheet name the template writes and the reader prefers.
const ProductsSheet = "Products"

const instructionsSheet = "Instructions"

// columnHelp documents each template column on the Instructions sheet.
var columnHelp = map[string]string{
	ColStoreCode:       "Store code the product is listed under (stored upper-case)",
	ColProductCategory: "One of: " + strings.Join(Categories, ", "),
	ColProductName:     "Display name on the menu",
	ColStrainType:      "Indica, Sativa, Hybrid or blank",
	ColStrainCross:     "Parent strains",
	ColDescription:     "Free text shown under the product name",
	ColTerpene:         "Dominant terpene",
	ColStrength:        "Package size or dose, e.g. 3.5g or 100mg",
	ColTHCAPercent:     "Decimal number or blank",
	ColDelta9Percent:   "Decimal number or blank",
	ColIsGummy:         "true or false",
	ColIsCookie:        "true or false",
}

func isRequiredColumn(col string) bool {
	return col == ColStoreCode || col == ColProductCategory || col == ColProductName
}

// WriteTemplateWorkbook writes the import template as an XLSX workbook with a
// Products sheet holding the same header and examples as GenerateTemplate,
// plus an Instructions sheet describing every column.
func WriteTemplateWorkbook(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ProductsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	requiredStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return fmt.Errorf("required style: %w", err)
	}

	for i, col := range TemplateColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(ProductsSheet, cell, col); err != nil {
			return fmt.Errorf("write header %s: %w", col, err)
		}
		style := headerStyle
		if isRequiredColumn(col) {
			style = requiredStyle
		}
		if err := f.SetCellStyle(ProductsSheet, cell, cell, style); err != nil {
			return fmt.Errorf("style header %s: %w", col, err)
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(ProductsSheet, name, name, 20); err != nil {
			return fmt.Errorf("column width %s: %w", name, err)
		}
	}

	for r, row := range TemplateExamples {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			// Text cells keep numbers like "24.5" byte-identical to the CSV template.
			if err := f.SetCellStr(ProductsSheet, cell, v); err != nil {
				return fmt.Errorf("write example %s: %w", cell, err)
			}
		}
	}

	if _, err := f.NewSheet(instructionsSheet); err != nil {
		return fmt.Errorf("instructions sheet: %w", err)
	}
	instructions := [][]string{
		{"Product Import Instructions"},
		{},
		{"Column", "Required", "Description"},
	}
	for _, col := range TemplateColumns {
		required := "Optional"
		if isRequiredColumn(col) {
			required = "Required"
		}
		instructions = append(instructions, []string{col, required, columnHelp[col]})
	}
	for r, row := range instructions {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(instructionsSheet, cell, v); err != nil {
				return fmt.Errorf("write instructions %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ParseWorkbook reads the Products sheet (or the first sheet when there is
// none) of an XLSX workbook. Header and row pairing follow Parse: cells are
// trimmed, short rows are padded and long rows truncated.
func ParseWorkbook(r io.Reader) (Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Document{}, fmt.Errorf("invalid xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Document{}, fmt.Errorf("invalid xlsx: workbook has no sheets")
	}
	sheet := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, ProductsSheet) {
			sheet = name
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Document{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	doc := Document{Rows: []RowRecord{}}
	if len(rows) == 0 {
		return doc, nil
	}

	doc.Header = trimCells(rows[0])
	for _, cells := range rows[1:] {
		doc.Rows = append(doc.Rows, pairRow(doc.Header, trimCells(cells)))
	}
	return doc, nil
}

func trimCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
