// Package store defines the persistence interfaces for the catalog and the
// sentinel errors their implementations return. Implementations live in
// internal/platform/postgres; handlers depend only on these interfaces so
// tests can substitute in-memory mocks.
package store
