// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

// Package auth implements the two-phase login protocol and the session
// token lifecycle.
//
// # Login protocol
//
// A Flow drives one login attempt. Phase 1 submits the credentials along
// with a freshly minted device identity. The server either issues a
// bearer token straight away, or answers 401 with a venmo-otp-secret
// header, which opens a two-factor challenge bound to that device
// identity. Phase 2 resends the request with the secret and a
// user-entered code; the flow always reuses the device identity from
// phase 1 because the server binds the secret to it.
//
// Each Flow is single use: one device identity, one challenge, no
// internal retries or timeouts. A caller abandons a pending challenge by
// discarding the Flow. Concurrent logins need independent Flows.
//
// # Session lifecycle
//
// A successful flow stores the issued token in the shared
// session.Credential as its final act. Revoker invalidates a token
// server-side and clears the credential only when the revoked token is
// the one currently held.
package auth
