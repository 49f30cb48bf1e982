// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package venmo

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pineapplelol/venmogo/internal/api"
	"github.com/pineapplelol/venmogo/internal/session"
)

// Friends lists a user's friends. Requires an authenticated session.
type Friends struct {
	client *api.Client
	cred   *session.Credential
}

type friendsEnvelope struct {
	Data []wireUser `json:"data"`
}

// List returns up to limit friends of the given user.
func (f *Friends) List(ctx context.Context, userID string, limit int) ([]User, error) {
	if limit <= 0 {
		limit = defaultStoryLimit
	}

	hdr, err := bearer(f.cred)
	if err != nil {
		return nil, err
	}

	path := "/users/" + url.PathEscape(userID) + "/friends?limit=" + strconv.Itoa(limit)
	resp, err := f.client.Do(ctx, http.MethodGet, path, hdr, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close failure is inconsequential

	if resp.StatusCode != http.StatusOK {
		return nil, api.FailureFromResponse(resp, "FRIEND_LIST_FAILED")
	}

	var envelope friendsEnvelope
	if err := api.DecodeJSON(resp, &envelope); err != nil {
		return nil, err
	}

	friends := make([]User, 0, len(envelope.Data))
	for _, w := range envelope.Data {
		friends = append(friends, w.toUser())
	}
	return friends, nil
}
