// Package core runs catalog imports end to end.
//
// The parsing and validation rules live in internal/csvimport and are pure.
// This package adds everything around them that touches the outside world:
// upload decoding, concurrency limits, persistence through a ProductStore,
// import history, metrics and user-facing error messages. It is shared by
// the HTTP server and the menuctl CLI.
//
// # Import Flow
//
//  1. [Service.Import] acquires a slot from the [UploadLimiter]
//  2. [Decode] turns the uploaded bytes into a csvimport.Document (CSV or XLSX)
//  3. csvimport.ValidateDocument splits rows into valid products and row errors
//  4. Valid products are upserted through the [ProductStore] and the import
//     is recorded in history, unless the request is a dry run
//
// Valid rows that share an upsert key are reported in [ImportResult.Duplicates].
//
// Row validation failures are data returned in [ImportResult.Errors]. Only
// infrastructure failures (limits, decoding, storage) are returned as errors.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - DB001-DB005: Database errors (connections, timeouts, constraints)
//   - FILE001-FILE006: File errors (size, format, encoding, missing or empty upload)
//   - IMP001-IMP003: Import errors (busy, cancelled, timeout)
//   - RATE001: Rate limit exceeded
//   - ERR000: Anything unrecognized
package core
