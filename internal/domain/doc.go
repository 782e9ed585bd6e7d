// Package domain contains the core business entities of the media API: users,
// media items and generic items, plus the per-request Identity produced by
// authentication. It is independent of HTTP and storage concerns.
package domain
