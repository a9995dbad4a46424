// Package storage holds the string-keyed JSON store every service persists
// through. Values are whole documents; there are no transactions, so a
// read-modify-write by one caller can overwrite a concurrent one.
package storage

import "context"

const (
	KeyFlights     = "flights"
	KeyBookings    = "bookings"
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
	KeyContacts    = "contacts"
)

type Store interface {
	// Get decodes the value under key into dst. It reports false when the
	// key has never been set.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
