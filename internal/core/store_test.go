package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/menuboard/internal/csvimport"
)

// batchConn answers each SendBatch with one affected row per statement and
// fails the batch numbered failBatch (0-based) at its first statement.
type batchConn struct {
	failBatch int
	sizes     []int
}

func (c *batchConn) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not implemented")
}

func (c *batchConn) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (c *batchConn) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

func (c *batchConn) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	c.sizes = append(c.sizes, b.Len())
	return &batchResult{fail: len(c.sizes)-1 == c.failBatch}
}

type batchResult struct {
	fail bool
}

func (r *batchResult) Exec() (pgconn.CommandTag, error) {
	if r.fail {
		return pgconn.CommandTag{}, errors.New("ERROR: value too long for type character varying")
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (r *batchResult) Query() (pgx.Rows, error) { return nil, errors.New("not implemented") }
func (r *batchResult) QueryRow() pgx.Row        { return nil }
func (r *batchResult) Close() error             { return nil }

func sampleProducts(n int) []csvimport.ValidatedProduct {
	out := make([]csvimport.ValidatedProduct, n)
	for i := range out {
		out[i] = csvimport.ValidatedProduct{
			StoreCode:       "DT01",
			ProductCategory: "Flower",
			ProductName:     fmt.Sprintf("Strain %d", i+1),
		}
	}
	return out
}

func TestPgStore_UpsertProducts(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		batchSize int
		failBatch int
		want      int64
		wantSizes []int
		wantErr   string
	}{
		{name: "all batches commit", rows: 5, batchSize: 2, failBatch: -1, want: 5, wantSizes: []int{2, 2, 1}},
		{name: "first batch fails", rows: 5, batchSize: 2, failBatch: 0, want: 0, wantSizes: []int{2}, wantErr: "upsert products 1-2"},
		{name: "second batch fails", rows: 5, batchSize: 2, failBatch: 1, want: 2, wantSizes: []int{2, 2}, wantErr: "upsert products 3-4"},
		{name: "last batch fails", rows: 5, batchSize: 2, failBatch: 2, want: 4, wantSizes: []int{2, 2, 1}, wantErr: "upsert products 5-5"},
		{name: "no rows", rows: 0, batchSize: 2, failBatch: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &batchConn{failBatch: tt.failBatch}
			store := NewPgStore(conn, tt.batchSize)
			ctx := ContextWithImportID(context.Background(), uuid.New())

			n, err := store.UpsertProducts(ctx, sampleProducts(tt.rows))

			assert.Equal(t, tt.want, n)
			assert.Equal(t, tt.wantSizes, conn.sizes)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
