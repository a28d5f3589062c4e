package apperrors

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

const (
	// Generic / infrastructure
	CodeAppError           ErrorCode = "APP_ERROR"
	CodeDBUnavailable      ErrorCode = "DB_UNAVAILABLE"
	CodeDBQueryError       ErrorCode = "DB_QUERY_ERROR"
	CodeConfigurationError ErrorCode = "CONFIGURATION_ERROR"

	// Domain
	CodeDomainError        ErrorCode = "DOMAIN_ERROR"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeValidationError    ErrorCode = "VALIDATION_ERROR"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeUnapprovedBehavior ErrorCode = "UNAPPROVED_BEHAVIOR"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"

	// Accounts
	CodeAccountNotFound      ErrorCode = "ACCOUNT_NOT_FOUND"
	CodeAccountAlreadyExists ErrorCode = "ACCOUNT_ALREADY_EXISTS"

	// Email verification tokens
	CodeTokenNotFound          ErrorCode = "TOKEN_NOT_FOUND"
	CodeTokenExpired           ErrorCode = "TOKEN_EXPIRED"
	CodeTokenAlreadyUsed       ErrorCode = "TOKEN_ALREADY_USED"
	CodeEmailVerificationError ErrorCode = "EMAIL_VERIFICATION_ERROR"
)
