// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, so handlers and services can be exercised
// against in-memory fakes and the PostgreSQL implementations alike.
package store
