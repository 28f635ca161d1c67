// errors/expiry_errors.go
package errors

import "errors"

var (
	ErrKeyScanFailed     = errors.New("key scan failed")
	ErrCacheOperation    = errors.New("cache operation failed")
	ErrDatabaseOperation = errors.New("database operation failed")
	ErrMalformedExpiry   = errors.New("malformed expiration value")
)
