// Package exporter serializes a filtered dataset back to downloadable
// flat-file formats. Writers stream into an io.Writer so exports go
// straight to the HTTP response without touching disk, preserving the
// session-only lifecycle of the dataset.
package exporter
