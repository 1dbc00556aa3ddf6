package types

type contextKey string

// UserIDKey holds the authenticated user's ID (int64) in a request context.
const UserIDKey contextKey = "user_id"
