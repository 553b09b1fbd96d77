package auth

const (
	ContextKeyPrincipal = "principal"

	jsonKeyError = "error"

	headerAuthorization = "Authorization"

	bearerScheme    = "bearer"
	authHeaderParts = 2
)

const (
	msgMissingAuthorization  = "missing authorization token"
	msgInvalidOrExpiredToken = "invalid or expired token"
	msgAccessDenied          = "access denied"
	msgNotAuthenticated      = "request not authenticated"
	msgInvalidPrincipalCtx   = "invalid principal in context"

	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgEmptyTokenSubject       = "token has empty subject"
)
