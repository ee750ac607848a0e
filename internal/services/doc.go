// Package services contains the business logic layer between the HTTP
// handlers and the dataset packages. DatasetService owns the session's
// in-memory table and serializes access to it; handlers talk to services
// through narrow interfaces declared in the transport package.
package services
