// Package store defines the persistence interfaces consumed by the rest
// of the application, together with the sentinel errors all
// implementations return.
package store
