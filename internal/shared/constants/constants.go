package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Pagination defaults shared by every list endpoint.
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Gin context keys set by the auth middleware.
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// RoleAdmin is the back-office principal. It is not an actor role.
	RoleAdmin = "admin"
)
