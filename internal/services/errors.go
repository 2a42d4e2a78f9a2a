package services

import (
	"errors"
	"net/http"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
)

// Standard service errors
var (
	// Source and bucket errors
	ErrSourceNotFound = errors.New("storage source not found")
	ErrAccessDenied   = errors.New("access denied")
	ErrNotFound       = errors.New("resource not found")

	// Input errors
	ErrInvalidInput = errors.New("invalid input provided")
	ErrNoSelection  = errors.New("no objects selected")

	// Preview errors
	ErrPreviewUnsupported = errors.New("preview not supported for this object")
	ErrPreviewTooLarge    = errors.New("preview image too large")
)

// IsPermanentError determines if an error is permanent and should not be retried
func IsPermanentError(err error) bool {
	return errors.Is(err, ErrSourceNotFound) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNoSelection) ||
		errors.Is(err, ErrPreviewUnsupported) ||
		errors.Is(err, ErrPreviewTooLarge)
}

// statusCode extracts the HTTP status of an S3 failure, 0 if there is none.
func statusCode(err error) int {
	var re *awshttp.ResponseError
	if errors.As(err, &re) {
		return re.HTTPStatusCode()
	}
	return 0
}

// errorCode extracts the S3 error code, "" if there is none.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

func isAuthFailure(err error) bool {
	switch statusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	switch errorCode(err) {
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return true
	}
	return false
}

func isNotFound(err error) bool {
	if statusCode(err) == http.StatusNotFound {
		return true
	}
	switch errorCode(err) {
	case "NoSuchBucket", "NoSuchKey", "NotFound":
		return true
	}
	return false
}
