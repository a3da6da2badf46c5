package core

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/menuboard/internal/csvimport"
	"github.com/JonMunkholm/menuboard/internal/metrics"
)

// Upload formats accepted by Import.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ImportRequest is one uploaded catalog file.
type ImportRequest struct {
	FileName string
	Data     []byte
	// DryRun validates without writing products or history.
	DryRun bool
}

// ImportResult summarizes one import.
type ImportResult struct {
	ImportID  uuid.UUID                   `json:"import_id"`
	FileName  string                      `json:"file_name"`
	Format    string                      `json:"format"`
	TotalRows int                         `json:"total_rows"`
	ValidRows int                         `json:"valid_rows"`
	Upserted  int64                       `json:"upserted"`
	Errors    []csvimport.ValidationError `json:"errors"`
	Warnings  []string                    `json:"warnings"`
	// Duplicates lists keys that more than one valid row writes to.
	Duplicates []DuplicateKey `json:"duplicates"`
	DryRun     bool           `json:"dry_run"`

	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
}

// ErrorRows returns the number of rows that failed validation.
func (r *ImportResult) ErrorRows() int {
	return len(r.Errors)
}

// Outcome classifies the result for metrics and history:
// "success", "partial" (some rows failed) or "rejected" (no row passed).
func (r *ImportResult) Outcome() string {
	switch {
	case len(r.Errors) == 0:
		return OutcomeSuccess
	case r.ValidRows == 0:
		return OutcomeRejected
	default:
		return OutcomePartial
	}
}

// Import outcomes recorded in history. Imports that end in an error are
// only counted by metrics.RecordFailure.
const (
	OutcomeSuccess  = metrics.OutcomeSuccess
	OutcomePartial  = metrics.OutcomePartial
	OutcomeRejected = metrics.OutcomeRejected
)

// ImportRecord is one entry of the import history.
type ImportRecord struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"file_name"`
	Format    string    `json:"format"`
	TotalRows int       `json:"total_rows"`
	ValidRows int       `json:"valid_rows"`
	ErrorRows int       `json:"error_rows"`
	Upserted  int64     `json:"upserted"`
	Outcome   string    `json:"outcome"`
	SourceIP  string    `json:"source_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductStore persists validated products and import history.
type ProductStore interface {
	// UpsertProducts inserts or updates products keyed by store code,
	// category and name, returning the number of rows written.
	UpsertProducts(ctx context.Context, products []csvimport.ValidatedProduct) (int64, error)
	RecordImport(ctx context.Context, rec ImportRecord) error
	ListImports(ctx context.Context, limit int) ([]ImportRecord, error)
}
