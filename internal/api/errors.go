// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package api

import (
	"net/http"

	"github.com/samber/oops"
)

// Error codes attached to every failure the client surfaces. The server's
// own message and numeric code, when present, ride along verbatim in the
// error context under server_message and server_code.
const (
	// CodeNetworkFailure marks a transport-level failure with no response.
	CodeNetworkFailure = "NETWORK_FAILURE"

	// CodeRateLimited marks an HTTP 429. It is always distinguished from
	// credential failures so callers can back off instead of re-prompting.
	CodeRateLimited = "RATE_LIMITED"

	// CodeInvalidCredentials marks a phase-1 rejection, including a 401
	// that carries no OTP-secret header.
	CodeInvalidCredentials = "INVALID_CREDENTIALS"

	// CodeInvalidOTP marks a phase-2 rejection.
	CodeInvalidOTP = "INVALID_OTP"

	// CodeOTPDeliveryFailed marks a failed one-time-passcode delivery
	// request. The pending challenge stays usable.
	CodeOTPDeliveryFailed = "OTP_DELIVERY_FAILED"

	// CodeSessionNotEstablished marks an authenticated operation attempted
	// with no token held.
	CodeSessionNotEstablished = "SESSION_NOT_ESTABLISHED"

	// CodeMalformedResponse marks a response missing fields its status
	// promised, e.g. a 200 without an access token.
	CodeMalformedResponse = "MALFORMED_RESPONSE"

	// CodeInvalidRequest marks a request that could not be built, e.g. a
	// body that does not marshal. Nothing was sent.
	CodeInvalidRequest = "INVALID_REQUEST"
)

// errorEnvelope is the structured failure body the API returns.
type errorEnvelope struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// FailureFromResponse maps a non-success response to a coded error,
// preserving the server's error detail. HTTP 429 always maps to
// RATE_LIMITED; everything else gets fallbackCode. The response body is
// consumed but not closed.
func FailureFromResponse(resp *http.Response, fallbackCode string) error {
	code := fallbackCode
	if resp.StatusCode == http.StatusTooManyRequests {
		code = CodeRateLimited
	}

	builder := oops.Code(code).With("http_status", resp.StatusCode)

	var envelope errorEnvelope
	if err := DecodeJSON(resp, &envelope); err == nil && envelope.Error.Message != "" {
		builder = builder.
			With("server_message", envelope.Error.Message).
			With("server_code", envelope.Error.Code)
		return builder.Errorf("%s", envelope.Error.Message)
	}

	return builder.Errorf("request rejected with status %d", resp.StatusCode)
}
