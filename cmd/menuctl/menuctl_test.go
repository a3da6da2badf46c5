package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/menuboard/internal/core"
	"github.com/JonMunkholm/menuboard/internal/csvimport"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTemplateCmd_StdoutCSV(t *testing.T) {
	out, err := run(t, "template")

	require.NoError(t, err)
	assert.Equal(t, csvimport.GenerateTemplate(), out)
}

func TestTemplateCmd_XLSXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.xlsx")

	_, err := run(t, "template", "--format", "xlsx", "-o", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(csvimport.ProductsSheet)
	require.NoError(t, err)
	assert.Equal(t, csvimport.TemplateColumns, rows[0])
}

func TestTemplateCmd_UnknownFormat(t *testing.T) {
	_, err := run(t, "template", "--format", "ods")

	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
}

func TestValidateCmd_AllValid(t *testing.T) {
	path := writeFile(t, "menu.csv", csvimport.GenerateTemplate())

	out, err := run(t, "validate", path)

	require.NoError(t, err)
	assert.Contains(t, out, "menu.csv:")
	assert.Contains(t, out, "0 invalid")
}

func TestValidateCmd_RowErrorsExitNonZero(t *testing.T) {
	path := writeFile(t, "menu.csv", "store_code,product_category,product_name\n,Flower,A\nDT01,Snacks,B\nDT01,Vapes,C")

	out, err := run(t, "validate", path)

	assert.ErrorIs(t, err, errRowsFailed)
	assert.Contains(t, out, "3 rows, 1 valid, 2 invalid")
	assert.Contains(t, out, "row 1: store_code is required")
	assert.Contains(t, out, "row 2: product_category must be one of:")
}

func TestValidateCmd_JSON(t *testing.T) {
	path := writeFile(t, "menu.csv", "store_code,product_category,product_name,flavor\nDT01,Flower,A,x")

	out, err := run(t, "validate", "--json", path)
	require.NoError(t, err)

	var result core.ImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.ValidRows)
	assert.Contains(t, result.Warnings, "unrecognized column ignored: flavor")
}

func TestValidateCmd_MissingFile(t *testing.T) {
	_, err := run(t, "validate", filepath.Join(t.TempDir(), "nope.csv"))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, errRowsFailed)
}

func TestValidateCmd_RequiresOneArg(t *testing.T) {
	_, err := run(t, "validate")

	assert.Error(t, err)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "database unreachable",
			err:  fmt.Errorf("connect: %w", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")),
			want: "error: Unable to connect to database (Code: DB001). Please try again in a few moments\n" +
				"  connect: dial tcp 127.0.0.1:5432: connect: connection refused",
		},
		{
			name: "unsupported file",
			err:  core.ErrUnsupportedFormat,
			want: "error: " + core.FormatUserError(core.ErrUnsupportedFormat) + "\n  " + core.ErrUnsupportedFormat.Error(),
		},
		{
			name: "unmapped",
			err:  errors.New("open menu.csv: permission denied"),
			want: "error: open menu.csv: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage(tt.err))
		})
	}
}
