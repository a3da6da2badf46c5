package csvimport

import "strings"

// TemplateColumns is the canonical header of the import template.
var TemplateColumns = []string{
	ColStoreCode,
	ColProductCategory,
	ColProductName,
	ColStrainType,
	ColStrainCross,
	ColDescription,
	ColTerpene,
	ColStrength,
	ColTHCAPercent,
	ColDelta9Percent,
	ColIsGummy,
	ColIsCookie,
}

// TemplateExamples are the illustrative rows shipped with the template.
// Every category in Categories appears at least once.
var TemplateExamples = [][]string{
	{"DT01", "Flower", "Blue Dream", "Hybrid", "Blueberry x Haze", "Sweet berry aroma, smooth finish", "Myrcene", "3.5g", "24.5", "0.2", "false", "false"},
	{"DT01", "Prerolls", "Sour Diesel Preroll", "Sativa", "Chemdawg x Super Skunk", "Single 1g joint", "Caryophyllene", "1g", "21", "0.3", "false", "false"},
	{"DT01", "Vapes", "Granddaddy Purple Cart", "Indica", "Purple Urkle x Big Bud", "510 thread cartridge", "Linalool", "0.5g", "", "85", "false", "false"},
	{"UP02", "Edibles", "Watermelon Gummies", "Hybrid", "", "10 pieces, 10mg each", "", "100mg", "", "100", "true", "false"},
	{"UP02", "Edibles", "Chocolate Chip Cookie", "Indica", "", "Single serving cookie", "", "10mg", "", "10", "false", "true"},
	{"UP02", "Concentrates", "Gelato Live Resin", "Hybrid", "Sunset Sherbet x Thin Mint", "Cold cured, terp rich", "Limonene", "1g", "78.2", "", "false", "false"},
	{"UP02", "Tinctures", "Calm CBD Tincture", "", "", "30ml dropper bottle", "", "1000mg", "", "", "false", "false"},
	{"DT01", "Topicals", "Relief Balm", "", "", "Cooling menthol, arnica", "", "500mg", "", "", "false", "false"},
	{"DT01", "Accessories", "Glass Spoon Pipe", "", "", "Hand blown glass", "", "", "", "", "false", "false"},
}

// GenerateTemplate renders TemplateColumns and TemplateExamples as CSV.
//
// Only values containing a comma are quoted, and embedded quotes are not
// doubled. The reader accepts more than this writer produces, so a value with
// a literal quote would not survive a write/read round trip.
func GenerateTemplate() string {
	lines := make([]string, 0, len(TemplateExamples)+1)
	lines = append(lines, encodeTemplateRow(TemplateColumns))
	for _, row := range TemplateExamples {
		lines = append(lines, encodeTemplateRow(row))
	}
	return strings.Join(lines, "\n")
}

func encodeTemplateRow(values []string) string {
	out := make([]string, len(values))
	for i, v := range values {
		if strings.Contains(v, ",") {
			v = `"` + v + `"`
		}
		out[i] = v
	}
	return strings.Join(out, ",")
}
