// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

// Package venmo implements the collaborator endpoints of the API: profile
// lookup, transaction history, friend listing, and payment requests.
//
// Every operation here is a single stateless request/response mapping.
// The authenticated ones read the shared session credential produced by
// the auth package and treat HTTP 429 as a distinguished rate-limit
// failure.
package venmo

import (
	"net/http"

	"github.com/samber/oops"

	"github.com/pineapplelol/venmogo/internal/api"
	"github.com/pineapplelol/venmogo/internal/session"
)

// Venmo bundles the collaborator endpoints over one transport and one
// session credential.
type Venmo struct {
	Users        *Users
	Transactions *Transactions
	Friends      *Friends
	Payments     *Payments
}

// New creates the collaborator set.
func New(client *api.Client, cred *session.Credential) (*Venmo, error) {
	if client == nil {
		return nil, oops.Code("VENMO_INVALID_DEPS").Errorf("api client is required")
	}
	if cred == nil {
		return nil, oops.Code("VENMO_INVALID_DEPS").Errorf("session credential is required")
	}
	return &Venmo{
		Users:        &Users{client: client},
		Transactions: &Transactions{client: client, cred: cred},
		Friends:      &Friends{client: client, cred: cred},
		Payments:     &Payments{client: client, cred: cred},
	}, nil
}

// bearer renders the Authorization header from the held session token.
func bearer(cred *session.Credential) (http.Header, error) {
	token, held := cred.Get()
	if !held {
		return nil, oops.Code(api.CodeSessionNotEstablished).
			Errorf("operation requires an authenticated session")
	}
	return api.BearerHeader(token), nil
}
