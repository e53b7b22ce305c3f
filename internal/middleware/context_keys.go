package middleware

// ContextKey is the type of the keys this package stores in a request context.
type ContextKey string

const (
	// RequestIDCtxKey holds the request id assigned by RequestID.
	RequestIDCtxKey = ContextKey("request_id")
)
