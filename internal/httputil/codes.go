package httputil

// Machine-readable error codes returned alongside error messages.
// Clients should branch on these, not on message text.
const (
	CodeInvalidRequestBody = "invalid_request_body"
	CodeInvalidQueryParam  = "invalid_query_param"
	CodeInternalError      = "internal_error"

	// Validation
	CodeEmailRequired      = "email_required"
	CodeInvalidEmailFormat = "invalid_email_format"
	CodeUsernameRequired   = "username_required"
	CodeInvalidUsername    = "invalid_username"
	CodePasswordRequired   = "password_required"
	CodePasswordTooShort   = "password_too_short"
	CodePasswordTooLong    = "password_too_long"
	CodeFullNameTooLong    = "full_name_too_long"

	// Conflicts
	CodeEmailAlreadyExists    = "email_already_exists"
	CodeUsernameAlreadyExists = "username_already_exists"

	// Authentication
	CodeInvalidCredentials   = "invalid_credentials"
	CodeUserDisabled         = "user_disabled"
	CodeMissingAuth          = "missing_authentication"
	CodeInvalidAuthHeader    = "invalid_auth_header"
	CodeTokenExpired         = "token_expired"
	CodeInvalidToken         = "invalid_token"
	CodeInvalidTokenUserID   = "invalid_token_user_id"
	CodeRefreshTokenRequired = "refresh_token_required"
	CodeInvalidRefreshToken  = "invalid_refresh_token"

	// Authorization and lookup
	CodeForbidden    = "insufficient_permissions"
	CodeUserNotFound = "user_not_found"

	// Throttling
	CodeTooManyRequests = "too_many_requests"
)
