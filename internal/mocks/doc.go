// Package mocks provides test doubles for the store, object storage and
// auth interfaces. The in-memory stores count every call so tests can
// assert that a request never reached the data layer.
package mocks
