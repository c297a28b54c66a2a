// Package mocks provides centralized mock implementations for testing.
//
// Each mock exposes function fields to override individual methods plus
// an in-memory default implementation faithful to the store contracts,
// so service and handler tests can run without a database.
package mocks
