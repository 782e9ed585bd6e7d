// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles query execution, per-call timeouts, translation of driver errors
// into store errors, and the embedded schema migrations.
package postgres
