package api

import "github.com/bitmark-inc/safecare-api/store"

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1010: "invalid parameters",
		1011: "cannot parse request",
		1012: "uploaded file is too large",
		1013: "unsupported file type",

		1020: "rate limit exceeded",

		1030: "upstream service unavailable",
		1031: "API key not configured",

		1040: store.ErrPinNotFound.Error(),
		1041: "no facility found",
	}

	errorInternalServer = errorJSON(999)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)
	errorFileTooLarge       = errorJSON(1012)
	errorUnsupportedFile    = errorJSON(1013)

	errorRateLimitExceeded = errorJSON(1020)

	errorUpstreamUnavailable = errorJSON(1030)
	errorNotConfigured       = errorJSON(1031)

	errorPinNotFound      = errorJSON(1040)
	errorFacilityNotFound = errorJSON(1041)
)

type ErrorResponse struct {
	Code  int64  `json:"code"`
	Error string `json:"error"`

	// Fallback is set when a degraded local answer exists for the request
	Fallback *bool `json:"fallback,omitempty"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:  code,
		Error: message,
	}
}

// withFallback marks an error response with the given fallback flag
func withFallback(e ErrorResponse, fallback bool) ErrorResponse {
	e.Fallback = &fallback
	return e
}
