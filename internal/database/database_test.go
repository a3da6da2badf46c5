package database

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB records statements and answers batches with canned results.
type fakeDB struct {
	execs   []string
	execErr error

	batches  []*pgx.Batch
	batchErr map[int]error
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...interface{}) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f *fakeDB) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

func (f *fakeDB) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	f.batches = append(f.batches, b)
	return &fakeBatchResults{errs: f.batchErr}
}

type fakeBatchResults struct {
	n      int
	errs   map[int]error
	closed bool
}

func (r *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	i := r.n
	r.n++
	if err := r.errs[i]; err != nil {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (r *fakeBatchResults) Query() (pgx.Rows, error) { return nil, errors.New("not implemented") }
func (r *fakeBatchResults) QueryRow() pgx.Row        { return nil }
func (r *fakeBatchResults) Close() error {
	r.closed = true
	return nil
}

func params(names ...string) []UpsertProductParams {
	out := make([]UpsertProductParams, len(names))
	for i, n := range names {
		out[i] = UpsertProductParams{StoreCode: "DT01", ProductCategory: "Flower", ProductName: n}
	}
	return out
}

func TestUpsertProducts_QueuesOneStatementPerRow(t *testing.T) {
	fake := &fakeDB{}

	n, err := New(fake).UpsertProducts(context.Background(), params("A", "B", "C"))

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.Len(t, fake.batches, 1)
	assert.Equal(t, 3, fake.batches[0].Len())
}

func TestUpsertProducts_Empty(t *testing.T) {
	fake := &fakeDB{}

	n, err := New(fake).UpsertProducts(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, fake.batches)
}

func TestUpsertProducts_FailingRowWritesNothing(t *testing.T) {
	tests := []struct {
		name    string
		failAt  int
		wantRow string
	}{
		{"first row", 0, "DT01/Flower/A"},
		{"middle row", 1, "DT01/Flower/B"},
		{"last row", 2, "DT01/Flower/C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeDB{batchErr: map[int]error{tt.failAt: errors.New("violates check constraint")}}

			n, err := New(fake).UpsertProducts(context.Background(), params("A", "B", "C"))

			require.Error(t, err)
			assert.Zero(t, n)
			assert.Contains(t, err.Error(), tt.wantRow)
		})
	}
}

func TestMigrate_ExecutesSchema(t *testing.T) {
	fake := &fakeDB{}

	require.NoError(t, Migrate(context.Background(), fake))

	require.Len(t, fake.execs, 1)
	assert.Equal(t, Schema(), fake.execs[0])
}

func TestMigrate_WrapsError(t *testing.T) {
	fake := &fakeDB{execErr: errors.New("permission denied")}

	err := Migrate(context.Background(), fake)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply schema")
}

func TestSchema_DeclaresUpsertKey(t *testing.T) {
	s := Schema()

	assert.Contains(t, s, "CREATE TABLE IF NOT EXISTS catalog_products")
	assert.Contains(t, s, "CREATE TABLE IF NOT EXISTS catalog_imports")
	assert.Contains(t, s, "UNIQUE (store_code, product_category, product_name)")
	assert.True(t, strings.Contains(upsertProduct, "ON CONFLICT (store_code, product_category, product_name)"))
}

// TestQueries_Postgres runs against a real database when
// MENUBOARD_TEST_DATABASE_URL is set.
func TestQueries_Postgres(t *testing.T) {
	url := os.Getenv("MENUBOARD_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("MENUBOARD_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Migrate(ctx, pool))

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx) //nolint:errcheck

	q := New(tx)

	var thca pgtype.Numeric
	require.NoError(t, thca.Scan("24.5"))
	rows := params("Test Dream")
	rows[0].StoreCode = "ZZTEST"
	rows[0].ThcaPercent = thca

	_, err = q.UpsertProducts(ctx, rows)
	require.NoError(t, err)
	// Second upsert of the same key updates instead of duplicating.
	_, err = q.UpsertProducts(ctx, rows)
	require.NoError(t, err)

	var count int64
	require.NoError(t, tx.QueryRow(ctx, "SELECT count(*) FROM catalog_products WHERE store_code = $1", "ZZTEST").Scan(&count))
	assert.Equal(t, int64(1), count)

	var id pgtype.UUID
	require.NoError(t, id.Scan("6f1c2d3e-4b5a-4c6d-8e7f-0a1b2c3d4e5f"))
	require.NoError(t, q.InsertCatalogImport(ctx, InsertCatalogImportParams{
		ID: id, FileName: "menu.csv", Format: "csv", TotalRows: 1, ValidRows: 1, Upserted: 1, Outcome: "success",
	}))

	imports, err := q.ListCatalogImports(ctx, 5)
	require.NoError(t, err)
	require.NotEmpty(t, imports)
	assert.Equal(t, "menu.csv", imports[0].FileName)
}
