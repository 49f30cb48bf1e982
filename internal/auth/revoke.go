// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/samber/oops"

	"github.com/pineapplelol/venmogo/internal/api"
	"github.com/pineapplelol/venmogo/internal/session"
)

// Revoker invalidates session tokens server-side and keeps the local
// credential consistent with what was revoked.
type Revoker struct {
	client *api.Client
	cred   *session.Credential
	logger *slog.Logger
}

// NewRevoker creates a Revoker.
func NewRevoker(client *api.Client, cred *session.Credential, logger *slog.Logger) (*Revoker, error) {
	if client == nil {
		return nil, oops.Code("REVOKER_INVALID_DEPS").Errorf("api client is required")
	}
	if cred == nil {
		return nil, oops.Code("REVOKER_INVALID_DEPS").Errorf("session credential is required")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Revoker{client: client, cred: cred, logger: logger}, nil
}

// Logout revokes token server-side. An empty token means the currently
// held one. The local credential is cleared if and only if the revoked
// token still equals the held token, and the clear happens regardless of
// whether the revoke request itself succeeded: a network failure must not
// leave a locally trusted token that the caller meant to discard. A token
// stored by a login that completed while the revoke was in flight is left
// alone.
func (r *Revoker) Logout(ctx context.Context, token string) error {
	if token == "" {
		held, ok := r.cred.Get()
		if !ok {
			return oops.Code(api.CodeSessionNotEstablished).
				Errorf("no session token to revoke")
		}
		token = held
	}

	revokeErr := r.revoke(ctx, token)

	if r.cred.CompareAndClear(token) {
		r.logger.InfoContext(ctx, "session credential cleared")
	}

	return revokeErr
}

func (r *Revoker) revoke(ctx context.Context, token string) error {
	resp, err := r.client.Do(ctx, http.MethodDelete, pathAccessToken, api.BearerHeader(token), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close failure is inconsequential

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return api.FailureFromResponse(resp, "REVOKE_FAILED")
	}
	return nil
}
