// Package service contains the application services that sit between
// the HTTP handlers and the stores, enforcing ownership and visibility.
package service
