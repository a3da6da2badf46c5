package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const upsertProduct = `-- name: UpsertProduct :exec
INSERT INTO catalog_products (
    store_code, product_category, product_name,
    strain_type, strain_cross, description, terpene, strength,
    thca_percent, delta9_percent, is_gummy, is_cookie, import_id
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
)
ON CONFLICT (store_code, product_category, product_name) DO UPDATE SET
    strain_type    = EXCLUDED.strain_type,
    strain_cross   = EXCLUDED.strain_cross,
    description    = EXCLUDED.description,
    terpene        = EXCLUDED.terpene,
    strength       = EXCLUDED.strength,
    thca_percent   = EXCLUDED.thca_percent,
    delta9_percent = EXCLUDED.delta9_percent,
    is_gummy       = EXCLUDED.is_gummy,
    is_cookie      = EXCLUDED.is_cookie,
    import_id      = EXCLUDED.import_id,
    updated_at     = now()
`

type UpsertProductParams struct {
	StoreCode       string         `json:"store_code"`
	ProductCategory string         `json:"product_category"`
	ProductName     string         `json:"product_name"`
	StrainType      pgtype.Text    `json:"strain_type"`
	StrainCross     pgtype.Text    `json:"strain_cross"`
	Description     pgtype.Text    `json:"description"`
	Terpene         pgtype.Text    `json:"terpene"`
	Strength        pgtype.Text    `json:"strength"`
	ThcaPercent     pgtype.Numeric `json:"thca_percent"`
	Delta9Percent   pgtype.Numeric `json:"delta9_percent"`
	IsGummy         bool           `json:"is_gummy"`
	IsCookie        bool           `json:"is_cookie"`
	ImportID        pgtype.UUID    `json:"import_id"`
}

func (arg UpsertProductParams) args() []any {
	return []any{
		arg.StoreCode,
		arg.ProductCategory,
		arg.ProductName,
		arg.StrainType,
		arg.StrainCross,
		arg.Description,
		arg.Terpene,
		arg.Strength,
		arg.ThcaPercent,
		arg.Delta9Percent,
		arg.IsGummy,
		arg.IsCookie,
		arg.ImportID,
	}
}

// UpsertProducts sends every row in one pgx.Batch and returns the number of
// rows written. Postgres runs the batch as one implicit transaction, so a
// failing row rolls back the whole batch and the count is 0.
func (q *Queries) UpsertProducts(ctx context.Context, args []UpsertProductParams) (int64, error) {
	if len(args) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, arg := range args {
		batch.Queue(upsertProduct, arg.args()...)
	}

	br := q.db.SendBatch(ctx, batch)
	defer br.Close()

	var written int64
	for i := range args {
		tag, err := br.Exec()
		if err != nil {
			return 0, fmt.Errorf("upsert %s/%s/%s: %w",
				args[i].StoreCode, args[i].ProductCategory, args[i].ProductName, err)
		}
		written += tag.RowsAffected()
	}
	return written, nil
}
