// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

// Package session holds the bearer token for an authenticated Venmo session.
package session

import "sync"

// Credential is the single holder of the current session token. It holds
// at most one token; setting a token replaces any prior value. The zero
// value is ready to use and holds nothing.
//
// A Credential is safe for concurrent use: every authenticated request
// reads the same credential, while writes happen only as the final step
// of a successful login or a revocation.
type Credential struct {
	mu    sync.RWMutex
	token string
	held  bool
}

// Get returns the held token and whether one is held. The token content
// is opaque; no validation is ever applied to it.
func (c *Credential) Get() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.held
}

// Set stores token as the current session token, replacing any prior value.
func (c *Credential) Set(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.held = true
}

// Clear discards the held token, if any.
func (c *Credential) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.held = false
}

// CompareAndClear discards the held token only if it still equals token,
// and reports whether a clear happened. A revocation snapshots the token
// before its network call; checking again under the lock keeps it from
// wiping a fresh token stored by a login that finished in between.
func (c *Credential) CompareAndClear(token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.held || c.token != token {
		return false
	}
	c.token = ""
	c.held = false
	return true
}
