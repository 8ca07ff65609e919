package registrant

import "fmt"

type ErrorReason string

const (
	REASON_VALIDATION_FAILED               ErrorReason = "VALIDATION_FAILED"
	REASON_DUPLICATE_EMAIL                 ErrorReason = "DUPLICATE_EMAIL"
	REASON_REGISTRANT_DOES_NOT_EXIST       ErrorReason = "REGISTRANT_DOES_NOT_EXIST"
	REASON_MISSING_ARTIFACT                ErrorReason = "MISSING_ARTIFACT"
	REASON_UNSUPPORTED_ARTIFACT_TYPE       ErrorReason = "UNSUPPORTED_ARTIFACT_TYPE"
	REASON_ARTIFACT_TOO_LARGE              ErrorReason = "ARTIFACT_TOO_LARGE"
	REASON_FAILED_TO_STORE_ARTIFACT        ErrorReason = "FAILED_TO_STORE_ARTIFACT"
	REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL ErrorReason = "FAILED_TO_TRANSLATE_TO_DB_MODEL"
	REASON_FAILED_TO_WRITE                 ErrorReason = "FAILED_TO_WRITE"
	REASON_FAILED_TO_FETCH                 ErrorReason = "FAILED_TO_FETCH"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error

	// Per-field validation messages, set only for VALIDATION_FAILED.
	Details []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newRegistrantError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationError(details []string) *Error {
	err := newRegistrantError(REASON_VALIDATION_FAILED, fmt.Sprintf("Validation failed: %v", details), nil)
	err.Details = details
	return err
}

func NewDuplicateEmailError(email string, cause error) *Error {
	return newRegistrantError(REASON_DUPLICATE_EMAIL, fmt.Sprintf("Registrant with email %q already exists", email), cause)
}

func NewRegistrantDoesNotExistError(email string, cause error) *Error {
	return newRegistrantError(REASON_REGISTRANT_DOES_NOT_EXIST, fmt.Sprintf("No registrant found with email %q", email), cause)
}

func NewMissingArtifactError() *Error {
	return newRegistrantError(REASON_MISSING_ARTIFACT, "No payment screenshot was supplied", nil)
}

func NewUnsupportedArtifactTypeError(contentType string) *Error {
	return newRegistrantError(REASON_UNSUPPORTED_ARTIFACT_TYPE, fmt.Sprintf("Content type %q is not an accepted screenshot format", contentType), nil)
}

func NewArtifactTooLargeError(size int64) *Error {
	return newRegistrantError(REASON_ARTIFACT_TOO_LARGE, fmt.Sprintf("Screenshot is %d bytes, which is over the %d byte limit", size, MaxArtifactSize), nil)
}

func NewFailedToStoreArtifactError(message string, cause error) *Error {
	return newRegistrantError(REASON_FAILED_TO_STORE_ARTIFACT, message, cause)
}

func NewFailedToTranslateToDBModelError(message string, cause error) *Error {
	return newRegistrantError(REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL, message, cause)
}

func NewFailedToWriteError(message string, cause error) *Error {
	return newRegistrantError(REASON_FAILED_TO_WRITE, message, cause)
}

func NewFailedToFetchError(message string, cause error) *Error {
	return newRegistrantError(REASON_FAILED_TO_FETCH, message, cause)
}
