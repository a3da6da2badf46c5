package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/menuboard/internal/config"
	"github.com/JonMunkholm/menuboard/internal/csvimport"
	"github.com/JonMunkholm/menuboard/internal/logging"
	"github.com/JonMunkholm/menuboard/internal/metrics"
)

// ErrNoStore is returned when a non-dry-run import is attempted on a Service
// built without a ProductStore.
var ErrNoStore = errors.New("no product store configured")

// Import history page bounds.
const (
	DefaultImportListLimit = 20
	MaxImportListLimit     = 100
)

// requiredColumns must be present in an upload's header. A file without them
// still validates, but every row fails, so the header problem is reported
// once as a warning.
var requiredColumns = []string{
	csvimport.ColStoreCode,
	csvimport.ColProductCategory,
	csvimport.ColProductName,
}

// Service runs catalog imports.
type Service struct {
	store   ProductStore
	upload  config.UploadConfig
	limiter *UploadLimiter
}

// NewService creates a Service. store may be nil for validation-only use.
func NewService(store ProductStore, cfg *config.Config) *Service {
	var upload config.UploadConfig
	if cfg != nil {
		upload = cfg.Upload
	}
	return &Service{
		store:   store,
		upload:  upload,
		limiter: NewUploadLimiter(upload.MaxConcurrent, upload.MaxWaitTime),
	}
}

// Import decodes, validates and (unless req.DryRun) persists one catalog file.
//
// Rows that fail validation are reported in the result and never block the
// valid rows. An error is returned only when the import itself could not run:
// no free slot, an unreadable file or a storage failure.
func (s *Service) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	start := time.Now()
	log := logging.WithFields(ctx, "file", req.FileName, "dry_run", req.DryRun)

	if err := s.limiter.Acquire(ctx); err != nil {
		metrics.RecordFailure(time.Since(start))
		log.Warn("import rejected", "error", err)
		return nil, err
	}
	defer s.limiter.Release()

	result, err := s.runImport(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordFailure(elapsed)
		log.Error("import failed", "error", err, "duration", elapsed)
		return nil, err
	}

	result.Duration = elapsed
	result.DurationMS = elapsed.Milliseconds()
	metrics.RecordImport(result.Outcome(), result.ValidRows, result.ErrorRows(), elapsed)

	log.Info("import finished",
		"import_id", result.ImportID,
		"format", result.Format,
		"rows", result.TotalRows,
		"valid", result.ValidRows,
		"invalid", result.ErrorRows(),
		"upserted", result.Upserted,
		"outcome", result.Outcome(),
		"duration", elapsed,
	)
	return result, nil
}

// Preview is Import with DryRun set.
func (s *Service) Preview(ctx context.Context, fileName string, data []byte) (*ImportResult, error) {
	return s.Import(ctx, ImportRequest{FileName: fileName, Data: data, DryRun: true})
}

func (s *Service) runImport(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if s.upload.MaxFileSize > 0 && int64(len(req.Data)) > s.upload.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, len(req.Data), s.upload.MaxFileSize)
	}

	doc, format, err := Decode(req.FileName, req.Data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", req.FileName, err)
	}

	report := csvimport.ValidateDocument(doc.Rows)

	result := &ImportResult{
		ImportID:  uuid.New(),
		FileName:  req.FileName,
		Format:    format,
		TotalRows: len(doc.Rows),
		ValidRows: len(report.Valid),
		Errors:    report.Errors,
		Warnings:  documentWarnings(doc),
		DryRun:    req.DryRun,
	}
	result.Duplicates = findDuplicates(report, len(doc.Rows))
	result.Warnings = append(result.Warnings, duplicateWarnings(result.Duplicates)...)

	if req.DryRun {
		return result, nil
	}
	if s.store == nil {
		return nil, ErrNoStore
	}

	persistCtx := ctx
	if s.upload.Timeout > 0 {
		var cancel context.CancelFunc
		persistCtx, cancel = context.WithTimeout(ctx, s.upload.Timeout)
		defer cancel()
	}
	persistCtx = ContextWithImportID(persistCtx, result.ImportID)

	if len(report.Valid) > 0 {
		n, err := s.store.UpsertProducts(persistCtx, report.Valid)
		if err != nil {
			return nil, fmt.Errorf("upsert products: %w", err)
		}
		result.Upserted = n
	}

	rec := ImportRecord{
		ID:        result.ImportID,
		FileName:  result.FileName,
		Format:    result.Format,
		TotalRows: result.TotalRows,
		ValidRows: result.ValidRows,
		ErrorRows: result.ErrorRows(),
		Upserted:  result.Upserted,
		Outcome:   result.Outcome(),
		SourceIP:  IPAddressFromContext(ctx),
		UserAgent: UserAgentFromContext(ctx),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.RecordImport(persistCtx, rec); err != nil {
		// Products are already written; losing the history entry is not
		// worth failing the import over.
		logging.FromContext(ctx).Warn("import history not recorded", "import_id", rec.ID, "error", err)
		result.Warnings = append(result.Warnings, "import history could not be recorded")
	}

	return result, nil
}

// documentWarnings reports problems with the file as a whole.
func documentWarnings(doc csvimport.Document) []string {
	warnings := []string{}

	for _, col := range requiredColumns {
		if !slices.Contains(doc.Header, col) {
			warnings = append(warnings, "missing required column: "+col)
		}
	}
	for _, col := range doc.Header {
		if col != "" && !slices.Contains(csvimport.TemplateColumns, col) {
			warnings = append(warnings, "unrecognized column ignored: "+col)
		}
	}
	if doc.Header != nil && len(doc.Rows) == 0 {
		warnings = append(warnings, "file has a header but no data rows")
	}
	if doc.Unterminated {
		warnings = append(warnings, "last record has an unterminated quoted field and was skipped")
	}

	return warnings
}

// Template returns the import template in the requested format together
// with its content type and a download file name.
func (s *Service) Template(format string) (data []byte, contentType, fileName string, err error) {
	switch format {
	case "", FormatCSV:
		return []byte(csvimport.GenerateTemplate()), "text/csv; charset=utf-8", "catalog_template.csv", nil
	case FormatXLSX:
		var buf bytes.Buffer
		if err := csvimport.WriteTemplateWorkbook(&buf); err != nil {
			return nil, "", "", fmt.Errorf("build xlsx template: %w", err)
		}
		return buf.Bytes(),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"catalog_template.xlsx", nil
	default:
		return nil, "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// RecentImports returns up to limit history entries, newest first. limit is
// clamped to [1, MaxImportListLimit]; zero selects DefaultImportListLimit.
func (s *Service) RecentImports(ctx context.Context, limit int) ([]ImportRecord, error) {
	switch {
	case limit <= 0:
		limit = DefaultImportListLimit
	case limit > MaxImportListLimit:
		limit = MaxImportListLimit
	}

	if s.store == nil {
		return []ImportRecord{}, nil
	}
	records, err := s.store.ListImports(ctx, limit)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []ImportRecord{}
	}
	return records, nil
}

// UploadLimiterStatus returns the import limiter's current state.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until running imports finish or ctx is done.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
