// Package postgres contains the PostgreSQL implementations of the store
// interfaces. All implementations work through database/sql on top of the
// pgx stdlib driver and translate PostgreSQL constraint violations into the
// store package's sentinel errors.
package postgres
