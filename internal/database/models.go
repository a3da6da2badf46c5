package database

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type CatalogProduct struct {
	ID              int64              `json:"id"`
	StoreCode       string             `json:"store_code"`
	ProductCategory string             `json:"product_category"`
	ProductName     string             `json:"product_name"`
	StrainType      pgtype.Text        `json:"strain_type"`
	StrainCross     pgtype.Text        `json:"strain_cross"`
	Description     pgtype.Text        `json:"description"`
	Terpene         pgtype.Text        `json:"terpene"`
	Strength        pgtype.Text        `json:"strength"`
	ThcaPercent     pgtype.Numeric     `json:"thca_percent"`
	Delta9Percent   pgtype.Numeric     `json:"delta9_percent"`
	IsGummy         bool               `json:"is_gummy"`
	IsCookie        bool               `json:"is_cookie"`
	ImportID        pgtype.UUID        `json:"import_id"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

type CatalogImport struct {
	ID        pgtype.UUID        `json:"id"`
	FileName  string             `json:"file_name"`
	Format    string             `json:"format"`
	TotalRows int32              `json:"total_rows"`
	ValidRows int32              `json:"valid_rows"`
	ErrorRows int32              `json:"error_rows"`
	Upserted  int64              `json:"upserted"`
	Outcome   string             `json:"outcome"`
	SourceIp  pgtype.Text        `json:"source_ip"`
	UserAgent pgtype.Text        `json:"user_agent"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}
