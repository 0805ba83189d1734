package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Request errors
const (
	// ErrCodeValidation indicates a request failed a domain rule (bad index, no-op edit).
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeInvalidInput indicates a malformed request.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidAudioFile indicates an uploaded file is not usable audio.
	ErrCodeInvalidAudioFile ErrorCode = "INVALID_AUDIO_FILE"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeTokenExpired indicates a signed access URL is past its expiry.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
)

// Speech platform and storage errors
const (
	// ErrCodeTranscription indicates the recognition session failed.
	ErrCodeTranscription ErrorCode = "TRANSCRIPTION_ERROR"
	// ErrCodePlatform indicates the remote speech platform rejected a call.
	ErrCodePlatform ErrorCode = "PLATFORM_ERROR"
	// ErrCodeStorage indicates an object storage failure.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
	// ErrCodeConfiguration indicates missing or invalid service configuration.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
)

// Availability errors (retryable)
const (
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	ErrCodeRateLimited        ErrorCode = "RATE_LIMITED"
)

// ErrCodeInternal indicates an internal server error.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeTimeout:            true,
	ErrCodeRateLimited:        true,
	ErrCodePlatform:           false,
	ErrCodeInternal:           false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
