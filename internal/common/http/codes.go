package http

const (
	CodeUnknown            = "UNKNOWN"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInvalidJSON        = "INVALID_JSON"
	CodeBadRequest         = "BAD_REQUEST"
	CodeInvalidPath        = "INVALID_PATH"
	CodeMissingEmailHeader = "MISSING_EMAIL_HEADER"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeRateLimited        = "RATE_LIMITED"
	CodeRequestTooLarge    = "REQUEST_TOO_LARGE"
	CodeNotReady           = "NOT_READY"
	CodeInternal           = "INTERNAL_ERROR"
)
