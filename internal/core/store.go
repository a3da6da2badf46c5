package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JonMunkholm/menuboard/internal/csvimport"
	db "github.com/JonMunkholm/menuboard/internal/database"
)

// PgStore is the Postgres ProductStore.
type PgStore struct {
	q         *db.Queries
	batchSize int
}

// NewPgStore returns a store over conn. Products are sent in pgx batches of
// batchSize rows.
func NewPgStore(conn db.DBTX, batchSize int) *PgStore {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &PgStore{q: db.New(conn), batchSize: batchSize}
}

type importIDKey struct{}

// ContextWithImportID tags products written under ctx with the import id.
func ContextWithImportID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, importIDKey{}, id)
}

func importIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(importIDKey{}).(uuid.UUID)
	return id
}

// UpsertProducts writes products in batches and returns the rows written.
// Each batch commits on its own. On failure the failed batch is rolled back
// and the count covers only the batches committed before it.
func (s *PgStore) UpsertProducts(ctx context.Context, products []csvimport.ValidatedProduct) (int64, error) {
	importID := ToPgUUID(importIDFromContext(ctx))

	var total int64
	for start := 0; start < len(products); start += s.batchSize {
		end := min(start+s.batchSize, len(products))

		params := make([]db.UpsertProductParams, 0, end-start)
		for _, p := range products[start:end] {
			arg := productParams(p)
			arg.ImportID = importID
			params = append(params, arg)
		}

		n, err := s.q.UpsertProducts(ctx, params)
		if err != nil {
			return total, fmt.Errorf("upsert products %d-%d: %w", start+1, end, err)
		}
		total += n
	}
	return total, nil
}

func productParams(p csvimport.ValidatedProduct) db.UpsertProductParams {
	return db.UpsertProductParams{
		StoreCode:       p.StoreCode,
		ProductCategory: p.ProductCategory,
		ProductName:     p.ProductName,
		StrainType:      ToPgText(p.StrainType),
		StrainCross:     ToPgText(p.StrainCross),
		Description:     ToPgText(p.Description),
		Terpene:         ToPgText(p.Terpene),
		Strength:        ToPgText(p.Strength),
		ThcaPercent:     ToPgNumeric(p.THCAPercent),
		Delta9Percent:   ToPgNumeric(p.Delta9Percent),
		IsGummy:         p.IsGummy,
		IsCookie:        p.IsCookie,
	}
}

// RecordImport appends rec to the import history.
func (s *PgStore) RecordImport(ctx context.Context, rec ImportRecord) error {
	err := s.q.InsertCatalogImport(ctx, db.InsertCatalogImportParams{
		ID:        ToPgUUID(rec.ID),
		FileName:  rec.FileName,
		Format:    rec.Format,
		TotalRows: int32(rec.TotalRows),
		ValidRows: int32(rec.ValidRows),
		ErrorRows: int32(rec.ErrorRows),
		Upserted:  rec.Upserted,
		Outcome:   rec.Outcome,
		SourceIp:  ToPgText(rec.SourceIP),
		UserAgent: ToPgText(rec.UserAgent),
	})
	if err != nil {
		return fmt.Errorf("record import: %w", err)
	}
	return nil
}

// ListImports returns the most recent imports, newest first.
func (s *PgStore) ListImports(ctx context.Context, limit int) ([]ImportRecord, error) {
	rows, err := s.q.ListCatalogImports(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}

	out := make([]ImportRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, ImportRecord{
			ID:        FromPgUUID(r.ID),
			FileName:  r.FileName,
			Format:    r.Format,
			TotalRows: int(r.TotalRows),
			ValidRows: int(r.ValidRows),
			ErrorRows: int(r.ErrorRows),
			Upserted:  r.Upserted,
			Outcome:   r.Outcome,
			SourceIP:  PgTextToString(r.SourceIp),
			UserAgent: PgTextToString(r.UserAgent),
			CreatedAt: r.CreatedAt.Time,
		})
	}
	return out, nil
}
