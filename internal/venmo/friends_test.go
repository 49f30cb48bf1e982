// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package venmo_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pineapplelol/venmogo/internal/api"
	"github.com/pineapplelol/venmogo/internal/venmo"
	"github.com/pineapplelol/venmogo/pkg/errutil"
)

func TestFriends_List(t *testing.T) {
	var gotPath, gotQuery, gotAuth string

	v, cred := newTestVenmo(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":[
			{"id":"42","username":"mangohaha","display_name":"Mango Haha"},
			{"id":"43","username":"kiwilmao","display_name":"Kiwi Lmao"}
		]}`)) //nolint:errcheck
	})
	cred.Set("T1")

	friends, err := v.Friends.List(context.Background(), "1337", 50)
	require.NoError(t, err)

	assert.Equal(t, "/users/1337/friends", gotPath)
	assert.Equal(t, "limit=50", gotQuery)
	assert.Equal(t, "Bearer T1", gotAuth)

	require.Len(t, friends, 2)
	assert.Equal(t, venmo.User{ID: "42", Username: "mangohaha", DisplayName: "Mango Haha"}, friends[0])
	assert.Equal(t, "kiwilmao", friends[1].Username)
}

func TestFriends_List_RequiresSession(t *testing.T) {
	v, _ := newTestVenmo(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := v.Friends.List(context.Background(), "1337", 0)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, api.CodeSessionNotEstablished)
}
