package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies for store endpoints.
	MaxRequestBody = 1 << 20
	// RequestTimeout bounds the storage work done per request.
	RequestTimeout = 5 * time.Second
	// DefaultPageSize is used when a listing omits limit.
	DefaultPageSize = 10
)
