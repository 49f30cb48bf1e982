// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package venmo

import (
	"context"
	"net/http"
	"net/url"

	"github.com/samber/oops"

	"github.com/pineapplelol/venmogo/internal/api"
)

// Users looks up public profile information. These endpoints do not
// require authentication.
type Users struct {
	client *api.Client
}

// User is a Venmo user profile.
type User struct {
	ID                string
	Username          string
	DisplayName       string
	DateJoined        string
	ProfilePictureURL string
}

type wireUser struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	DisplayName       string `json:"display_name"`
	DateJoined        string `json:"date_joined"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

func (w wireUser) toUser() User {
	return User{
		ID:                w.ID,
		Username:          w.Username,
		DisplayName:       w.DisplayName,
		DateJoined:        w.DateJoined,
		ProfilePictureURL: w.ProfilePictureURL,
	}
}

type userEnvelope struct {
	Data wireUser `json:"data"`
}

// Get returns profile information for a username.
func (u *Users) Get(ctx context.Context, username string) (*User, error) {
	resp, err := u.client.Do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close failure is inconsequential

	if resp.StatusCode != http.StatusOK {
		return nil, api.FailureFromResponse(resp, "USER_LOOKUP_FAILED")
	}

	var envelope userEnvelope
	if err := api.DecodeJSON(resp, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data.ID == "" {
		return nil, oops.Code(api.CodeMalformedResponse).
			With("username", username).
			Errorf("user response carried no id")
	}

	user := envelope.Data.toUser()
	return &user, nil
}

// ID returns the unique Venmo user id for a username.
func (u *Users) ID(ctx context.Context, username string) (string, error) {
	user, err := u.Get(ctx, username)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
