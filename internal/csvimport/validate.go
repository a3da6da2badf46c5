package csvimport

// validate.go coerces RowRecords into ValidatedProducts.
//
// Every rule runs for every row, so one ValidationError can carry several
// messages and a bad row never hides problems in the rows after it.
// Message order is fixed: required fields, then numeric fields, then flags.

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var categoryMessage = ColProductCategory + " must be one of: " + strings.Join(Categories, ", ")

// requiredFields is the part of a row checked by struct rules.
// Field order here is the order messages are reported in.
type requiredFields struct {
	StoreCode       string `json:"store_code" validate:"required"`
	ProductCategory string `json:"product_category" validate:"required,category"`
	ProductName     string `json:"product_name" validate:"required"`
}

// rules is safe for concurrent use once built.
var rules = newRules()

func newRules() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" {
			return fld.Name
		}
		return name
	})

	// The tag is registered on a package-level validator at init; a failure
	// here is a programming error.
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := CanonicalCategory(fl.Field().String())
		return ok
	}); err != nil {
		panic(err)
	}

	return v
}

// ValidateRow coerces row into a ValidatedProduct. index is the row's 1-based
// position among data rows and is only used for error reporting.
//
// The coerced product is always returned, including for rows with problems,
// so callers can see which fields were nulled. When any rule fails the
// returned *ValidationError is non-nil and the product must not be persisted.
func ValidateRow(row RowRecord, index int) (ValidatedProduct, *ValidationError) {
	var msgs []string

	req := requiredFields{
		StoreCode:       strings.TrimSpace(row[ColStoreCode]),
		ProductCategory: strings.TrimSpace(row[ColProductCategory]),
		ProductName:     strings.TrimSpace(row[ColProductName]),
	}
	msgs = append(msgs, ruleMessages(rules.Struct(req))...)

	p := ValidatedProduct{
		StoreCode:       strings.ToUpper(req.StoreCode),
		ProductCategory: titleCase(req.ProductCategory),
		ProductName:     req.ProductName,
		StrainType:      strings.TrimSpace(row[ColStrainType]),
		StrainCross:     strings.TrimSpace(row[ColStrainCross]),
		Description:     strings.TrimSpace(row[ColDescription]),
		Terpene:         strings.TrimSpace(row[ColTerpene]),
		Strength:        strings.TrimSpace(row[ColStrength]),
	}

	var ok bool
	if p.THCAPercent, ok = coerceNumeric(row[ColTHCAPercent]); !ok {
		msgs = append(msgs, ColTHCAPercent+" must be numeric")
	}
	if p.Delta9Percent, ok = coerceNumeric(row[ColDelta9Percent]); !ok {
		msgs = append(msgs, ColDelta9Percent+" must be numeric")
	}
	if p.IsGummy, ok = coerceBool(row[ColIsGummy]); !ok {
		msgs = append(msgs, ColIsGummy+" must be true or false")
	}
	if p.IsCookie, ok = coerceBool(row[ColIsCookie]); !ok {
		msgs = append(msgs, ColIsCookie+" must be true or false")
	}

	if len(msgs) > 0 {
		return p, &ValidationError{Row: index, Errors: msgs}
	}
	return p, nil
}

// ValidateDocument validates every row. Row indexes are 1-based positions in
// rows. There is no early exit: a document with one bad row still returns
// every other valid product.
func ValidateDocument(rows []RowRecord) ImportReport {
	report := ImportReport{
		Valid:  make([]ValidatedProduct, 0, len(rows)),
		Errors: []ValidationError{},
	}

	for i, row := range rows {
		p, verr := ValidateRow(row, i+1)
		if verr != nil {
			report.Errors = append(report.Errors, *verr)
			continue
		}
		report.Valid = append(report.Valid, p)
	}

	return report
}

// ruleMessages converts struct rule failures into operator-facing messages.
func ruleMessages(err error) []string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Field() == ColProductCategory {
			msgs = append(msgs, categoryMessage)
			continue
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return msgs
}

// coerceNumeric parses a decimal. Empty input is a valid null; anything that
// is not a finite decimal number is reported as invalid and also null.
func coerceNumeric(raw string) (decimal.NullDecimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, false
	}
	return decimal.NewNullDecimal(d), true
}

// coerceBool accepts "true" and "false" in any case. Empty input is false.
func coerceBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return false, true
	case strings.EqualFold(raw, "true"):
		return true, true
	case strings.EqualFold(raw, "false"):
		return false, true
	default:
		return false, false
	}
}

// titleCase upper-cases the first letter and lower-cases the rest.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
