package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertCatalogImport = `-- name: InsertCatalogImport :exec
INSERT INTO catalog_imports (
    id, file_name, format, total_rows, valid_rows, error_rows,
    upserted, outcome, source_ip, user_agent
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
)
`

type InsertCatalogImportParams struct {
	ID        pgtype.UUID `json:"id"`
	FileName  string      `json:"file_name"`
	Format    string      `json:"format"`
	TotalRows int32       `json:"total_rows"`
	ValidRows int32       `json:"valid_rows"`
	ErrorRows int32       `json:"error_rows"`
	Upserted  int64       `json:"upserted"`
	Outcome   string      `json:"outcome"`
	SourceIp  pgtype.Text `json:"source_ip"`
	UserAgent pgtype.Text `json:"user_agent"`
}

func (q *Queries) InsertCatalogImport(ctx context.Context, arg InsertCatalogImportParams) error {
	_, err := q.db.Exec(ctx, insertCatalogImport,
		arg.ID,
		arg.FileName,
		arg.Format,
		arg.TotalRows,
		arg.ValidRows,
		arg.ErrorRows,
		arg.Upserted,
		arg.Outcome,
		arg.SourceIp,
		arg.UserAgent,
	)
	return err
}

const listCatalogImports = `-- name: ListCatalogImports :many
SELECT id, file_name, format, total_rows, valid_rows, error_rows,
       upserted, outcome, source_ip, user_agent, created_at
FROM catalog_imports
ORDER BY created_at DESC
LIMIT $1
`

func (q *Queries) ListCatalogImports(ctx context.Context, limit int32) ([]CatalogImport, error) {
	rows, err := q.db.Query(ctx, listCatalogImports, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CatalogImport
	for rows.Next() {
		var i CatalogImport
		if err := rows.Scan(
			&i.ID,
			&i.FileName,
			&i.Format,
			&i.TotalRows,
			&i.ValidRows,
			&i.ErrorRows,
			&i.Upserted,
			&i.Outcome,
			&i.SourceIp,
			&i.UserAgent,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
