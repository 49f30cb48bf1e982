// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package api

import "net/http"

// Header names used by the login protocol.
const (
	HeaderDeviceID  = "device-id"
	HeaderOTPSecret = "venmo-otp-secret"
	HeaderOTP       = "venmo-otp"

	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
	contentTypeJSON     = "application/json"
)

// AuthHeaders enumerates everything a login-protocol request may carry.
// The device id is always required; the OTP fields are set only on
// two-factor delivery and completion requests.
type AuthHeaders struct {
	DeviceID  string
	OTPSecret string
	OTPCode   string
}

// Build renders the header set deterministically: the same inputs always
// produce the same headers, and a field that is unset never leaves an
// empty header behind.
func (h AuthHeaders) Build() http.Header {
	hdr := http.Header{}
	hdr.Set(HeaderDeviceID, h.DeviceID)
	hdr.Set(headerContentType, contentTypeJSON)
	if h.OTPSecret != "" {
		hdr.Set(HeaderOTPSecret, h.OTPSecret)
	}
	if h.OTPCode != "" {
		hdr.Set(HeaderOTP, h.OTPCode)
	}
	return hdr
}

// BearerHeader renders the Authorization header for an authenticated call.
func BearerHeader(token string) http.Header {
	hdr := http.Header{}
	hdr.Set(headerAuthorization, "Bearer "+token)
	return hdr
}
