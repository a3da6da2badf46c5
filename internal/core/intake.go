package core

// intake.go turns uploaded bytes into a csvimport.Document.
//
// Operators export catalogs from Excel on Windows, so uploads arrive with a
// UTF-8 BOM, in Windows-1252, or as .xlsx workbooks. Everything is normalized
// here so the parser only ever sees UTF-8 text.

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/JonMunkholm/menuboard/internal/csvimport"
)

var (
	// ErrEmptyFile is returned for uploads with no content.
	ErrEmptyFile = errors.New("empty file")

	// ErrUnsupportedFormat is returned for file types other than CSV and XLSX.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrFileTooLarge is returned when an upload exceeds Upload.MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")
)

var (
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
	zipMagic = []byte("PK\x03\x04")
)

// textExtensions are accepted as delimited text. An empty extension is too,
// for clients that do not send a file name.
var textExtensions = map[string]bool{
	"":     true,
	".csv": true,
	".txt": true,
}

// DetectFormat reports whether an upload is CSV or XLSX. XLSX is recognized
// by extension or by its zip signature, so a renamed workbook still parses.
func DetectFormat(fileName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch {
	case ext == ".xlsx" || bytes.HasPrefix(data, zipMagic):
		return FormatXLSX, nil
	case textExtensions[ext]:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// Decode parses an upload into a Document and returns the detected format.
func Decode(fileName string, data []byte) (csvimport.Document, string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return csvimport.Document{}, "", ErrEmptyFile
	}

	format, err := DetectFormat(fileName, data)
	if err != nil {
		return csvimport.Document{}, "", err
	}

	if format == FormatXLSX {
		doc, err := csvimport.ParseWorkbook(bytes.NewReader(data))
		if err != nil {
			return csvimport.Document{}, format, err
		}
		return doc, format, nil
	}

	text, err := DecodeText(data)
	if err != nil {
		return csvimport.Document{}, format, err
	}
	return csvimport.Parse(text), format, nil
}

// DecodeText strips a UTF-8 BOM and converts non-UTF-8 input from
// Windows-1252.
func DecodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("encoding error: %w", err)
	}
	return string(decoded), nil
}
