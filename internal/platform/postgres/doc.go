// Package postgres contains the PostgreSQL implementations of the store
// interfaces. Stores accept a store.DBTX so they run equally against a bare
// connection pool or inside a transaction, and translate driver errors into
// the store package's sentinel errors.
package postgres
