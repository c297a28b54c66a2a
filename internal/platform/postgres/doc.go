// Package postgres provides PostgreSQL-backed implementations of the
// store interfaces, including the task query engine.
package postgres
