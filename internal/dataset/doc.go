// Package dataset holds the in-memory asset table at the heart of the
// dashboard. A Table is created from an uploaded CSV or XLSX file, coerced
// once (known date columns normalized, financial columns typed) and then
// treated as immutable: filtering and projection return views that share
// the underlying rows.
//
// The lifecycle mirrors a dashboard session: a table is created on upload,
// replaced wholesale by the next upload, and never persisted.
package dataset
