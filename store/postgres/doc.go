// Package postgres provides a PostgreSQL-backed credential store built on pgx.
//
// It satisfies the same [github.com/MrEthical07/goCred/store.Store] contract as
// the Redis default and maps PostgreSQL error conditions onto the store
// sentinel errors, so the Engine behaves identically over either backend.
package postgres
