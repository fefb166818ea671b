package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Validation limits
const (
	MaxTitleLength = 256
)

// Token defaults
const (
	DefaultAccessTokenTTLMinutes = 15
	DefaultRefreshTokenTTLDays   = 30
	RefreshTokenByteLength       = 64
	TokenRoleUser                = "user"
)
