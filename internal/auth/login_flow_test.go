// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pineapplelol/venmogo/internal/api"
	"github.com/pineapplelol/venmogo/internal/auth"
	"github.com/pineapplelol/venmogo/internal/device"
	"github.com/pineapplelol/venmogo/internal/session"
	"github.com/pineapplelol/venmogo/pkg/errutil"
)

// capturedRequest records what the fake API saw on one request.
type capturedRequest struct {
	Method    string
	Path      string
	DeviceID  string
	OTPSecret string
	OTPCode   string
	Body      map[string]any
}

func capture(r *http.Request) capturedRequest {
	c := capturedRequest{
		Method:    r.Method,
		Path:      r.URL.Path,
		DeviceID:  r.Header.Get("device-id"),
		OTPSecret: r.Header.Get("venmo-otp-secret"),
		OTPCode:   r.Header.Get("venmo-otp"),
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&c.Body) //nolint:errcheck // Empty bodies are fine
	}
	return c
}

func newTestFlow(t *testing.T, handler http.HandlerFunc, opts ...auth.FlowOption) (*auth.Flow, *session.Credential, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	cred := &session.Credential{}
	client := api.NewClient(api.WithBaseURL(ts.URL), api.WithHTTPClient(ts.Client()))
	flow, err := auth.NewFlow(client, cred, opts...)
	require.NoError(t, err)
	return flow, cred, ts
}

// assertDeviceIdentityShape checks that id has the template's length and
// character-class layout.
func assertDeviceIdentityShape(t *testing.T, id string) {
	t.Helper()
	template := device.Template()
	require.Len(t, id, len(template))
	for i := 0; i < len(template); i++ {
		switch {
		case template[i] == '-':
			assert.Equal(t, byte('-'), id[i])
		case template[i] >= '0' && template[i] <= '9':
			assert.True(t, id[i] >= '0' && id[i] <= '9')
		default:
			assert.True(t, id[i] >= 'A' && id[i] <= 'Z')
		}
	}
}

func TestNewFlow_NilDependencies(t *testing.T) {
	cred := &session.Credential{}
	client := api.NewClient()

	tests := []struct {
		name   string
		client *api.Client
		cred   *session.Credential
	}{
		{name: "nil api client", client: nil, cred: cred},
		{name: "nil session credential", client: client, cred: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, err := auth.NewFlow(tt.client, tt.cred)
			require.Error(t, err)
			assert.Nil(t, flow)
			errutil.AssertErrorCode(t, err, "FLOW_INVALID_DEPS")
		})
	}
}

func TestFlow_Begin_TokenIssued(t *testing.T) {
	ctx := context.Background()
	var seen capturedRequest

	flow, cred, _ := newTestFlow(t, func(w http.ResponseWriter, r *http.Request) {
		seen = capture(r)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"access_token":"T1"}`)) //nolint:errcheck
	})

	out, err := flow.Begin(ctx, "pineapplelol", "pineapplesaregreat")
	require.NoError(t, err)
	require.True(t, out.TokenIssued())
	assert.Equal(t, "T1", out.Token)
	assert.Equal(t, auth.StateAuthenticated, flow.State())

	token, held := cred.Get()
	assert.True(t, held)
	assert.Equal(t, "T1", token)

	// Wire shape of phase 1.
	assert.Equal(t, http.MethodPost, seen.Method)
	assert.Equal(t, "/oauth/access_token", seen.Path)
	assert.Equal(t, "pineapplelol", seen.Body["phone_email_or_username"])
	assert.Equal(t, "1", seen.Body["client_id"])
	assert.Equal(t, "pineapplesaregreat", seen.Body["password"])
	assert.Empty(t, seen.OTPSecret)
	assert.Empty(t, seen.OTPCode)
	assertDeviceIdentityShape(t, seen.DeviceID)
}

func TestFlow_Begin_ChallengeRequired(t *testing.T) {
	ctx := context.Background()
	var seen capturedRequest

	flow, cred, _ := newTestFlow(t, func(w http.ResponseWriter, r *http.Request) {
		seen = capture(r)
		w.Header().Set("venmo-otp-secret", "S1")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Additional authentication is required","code":81109}}`)) //nolint:errcheck
	})

	out, err := flow.Begin(ctx, "pineapplelol", "pw")
	require.NoError(t, err)
	require.True(t, out.ChallengeRequired())
	assert.Equal(t, "S1", out.Challenge.OTPSecret)
	assert.Equal(t, seen.DeviceID, out.Challenge.DeviceID, "challenge must carry the device identity that was sent")
	assert.Equal(t, auth.StateChallengeIssued, flow.State())

	_, held := cred.Get()
	assert.False(t, held, "no token may be stored while a challenge is pending")
}

func TestFlow_Begin_UnauthorizedWithoutSecretIsInvalidCredentials(t *testing.T) {
	ctx := context.Background()

	flow, cred, _ := newTestFlow(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Your email or password was incorrect.","code":264}}`)) //nolint:errcheck
	})

	out, err := flow.Begin(ctx, "pineapplelol", "wrong")
	require.Error(t, err)
	assert.Nil(t, out)
	errutil.AssertErrorCode(t, err, api.CodeInvalidCredentials)
	errutil.AssertErrorContext(t, err, "server_message", "Your email or password was incorrect.")
	errutil.AssertErrorContext(t, err, "server_code", 264)
	assert.Equal(t, auth.StateFailed, flow.State())

	_, held := cred.Get()
	assert.False(t, held)
}

func TestFlow_Begin_RateLimited(t *testing.T) {
	ctx := context.Background()

	flow, _, _ := newTestFlow(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit exceeded.","code":429}}`)) //nolint:errcheck
	})

	_, err := flow.Begin(ctx, "pineapplelol", "pw")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, api.CodeRateLimited)
	assert.NotEqual(t, api.CodeInvalidCredentials, errutil.Code(err))
}

func TestFlow_Begin_SuccessWithoutTokenIsMalformed(t *testing.T) {
	ctx := context.Background()

	flow, cred, _ := newTestFlow(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`)) //nolint:errcheck
	})

	_, err := flow.Begin(ctx, "pineapplelol", "pw")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, api.CodeMalformedResponse)
	assert.Equal(t, auth.StateFailed, flow.State())

	_, held := cred.Get()
	assert.False(t, held)
}

func TestFlow_Begin_NetworkFailure(t *testing.T) {
	ctx := context.Background()

	flow, _, ts := newTestFlow(t, func(_ http.ResponseWriter, _ *http.Request) {})
	ts.Close()

	_, err := flow.Begin(ctx, "pineapplelol", "pw")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, api.CodeNetworkFailure)
	assert.Equal(t, auth.StateFailed, flow.State())
}

func TestFlow_Begin_IsSingleUse(t *testing.T) {
	ctx := context.Background()

	flow, _, _ := newTestFlow(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"access_token":"T1"}`)) //nolint:errcheck
	})

	_, err := flow.Begin(ctx, "pineapplelol", "pw")
	require.NoError(t, err)

	_, err = flow.Begin(ctx, "pineapplelol", "pw")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "FLOW_ALREADY_USED")
}

// fakeAPI scripts the full two-phase protocol and records every request.
type fakeAPI struct {
	otpSecret string
	token     string
	requests  []capturedRequest
}

func (f *fakeAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := capture(r)
		f.requests = append(f.requests, c)

		switch {
		case c.Path == "/account/two-factor/token":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"data":{"status":"sent"}}`)) //nolint:errcheck
		case c.OTPCode != "":
			// Phase 2: the secret must match and the device identity must
			// be the one the secret was issued to.
			if c.OTPSecret != f.otpSecret || c.DeviceID != f.requests[0].DeviceID {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"message":"Invalid device","code":81110}}`)) //nolint:errcheck
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"access_token":"` + f.token + `"}`)) //nolint:errcheck
		default:
			// Phase 1: demand two-factor verification.
			w.Header().Set("venmo-otp-secret", f.otpSecret)
			w.WriteHeader(http.StatusUnauthorized)
		}
	}
}

func TestFlow_Complete_ReusesPhaseOneDeviceIdentity(t *testing.T) {
	ctx := context.Background()
	server := &fakeAPI{otpSecret: "S1", token: "T2"}

	flow, cred, _ := newTestFlow(t, server.handler())

	out, err := flow.Begin(ctx, "pineapplelol", "pw")
	require.NoError(t, err)
	require.True(t, out.ChallengeRequired())

	require.NoError(t, flow.RequestCode(ctx))
	assert.Equal(t, auth.StateOTPSent, flow.State())

	out, err = flow.Complete(ctx, "123456")
	require.NoError(t, err)
	require.True(t, out.TokenIssued())
	assert.Equal(t, "T2", out.Token)
	assert.Equal(t, auth.StateAuthenticated, flow.State())

	token, held := cred.Get()
	assert.True(t, held)
	assert.Equal(t, "T2", token)

	require.Len(t, server.requests, 3)
	phase1, delivery, phase2 := server.requests[0], server.requests[1], server.requests[2]

	// One device identity for the whole attempt.
	assert.Equal(t, phase1.DeviceID, delivery.DeviceID)
	assert.Equal(t, phase1.DeviceID, phase2.DeviceID)

	// Delivery request shape.
	assert.Equal(t, "/account/two-factor/token", delivery.Path)
	assert.Equal(t, "S1", delivery.OTPSecret)
	assert.Equal(t, "sms", delivery.Body["via"])

	// Phase 2 carries the secret and code but no password.
	assert.Equal(t, "S1", phase2.OTPSecret)
	assert.Equal(t, "123456", phase2.OTPCode)
	assert.Equal(t, map[string]any{"client_id": "1"}, phase2.Body)
}

func TestFlow_Complete_InvalidCode(t *testing.T) {
	ctx := context.Background()
	phase := 0

	flow, cred, _ := newTestFlow(t, func(w http.ResponseWriter, r *http.Request) {
		_ = capture(r)
		phase++
		if phase == 1 {
			w.Header().Set("venmo-otp-secret", "S1")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Please try again.","code":81108}}`)) //nolint:errcheck
	})

	_, err := flow.Begin(ctx, "pineapplelol", "pw")
	require.NoError(t, err)

	out, err := flow.Complete(ctx, "000000")
	require.Error(t, err)
	assert.Nil(t, out)
	errutil.AssertErrorCode(t, err, api.CodeInvalidOTP)
	errutil.AssertErrorContext(t, err, "server_message", "Please try again.")
	assert.Equal(t, auth.StateFailed, flow.State())

	_, held := cred.Get()
	assert.False(t, held)
}

func TestFlow_Complete_WithoutChallenge(t *testing.T) {
	flow, _, _ := newTestFlow(t, func(_ http.ResponseWriter, _ *http.Request) {})

	_, err := flow.Complete(context.Background(), "123456")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "FLOW_NOT_CHALLENGED")
}

func TestFlow_RequestCode_FailureKeepsChallengeUsable(t *testing.T) {
	ctx := context.Background()
	phase := 0

	flow, cred, _ := newTestFlow(t, func(w http.ResponseWriter, r *http.Request) {
		c := capture(r)
		phase++
		switch {
		case phase == 1:
			w.Header().Set("venmo-otp-secret", "S1")
			w.WriteHeader(http.StatusUnauthorized)
		case c.Path == "/account/two-factor/token":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Delivery failed","code":263}}`)) //nolint:errcheck
		default:
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"access_token":"T3"}`)) //nolint:errcheck
		}
	})

	_, err := flow.Begin(ctx, "pineapplelol", "pw")
	require.NoError(t, err)

	err = flow.RequestCode(ctx)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, api.CodeOTPDeliveryFailed)
	assert.Equal(t, auth.StateChallengeIssued, flow.State(), "delivery failure must not terminalize the flow")

	// The challenge is still usable: completion goes through.
	out, err := flow.Complete(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, "T3", out.Token)

	token, _ := cred.Get()
	assert.Equal(t, "T3", token)
}

func TestFlow_Login_EndToEnd(t *testing.T) {
	ctx := context.Background()
	server := &fakeAPI{otpSecret: "S1", token: "T2"}

	var prompted *auth.Challenge
	prompter := auth.CodePrompterFunc(func(_ context.Context, ch *auth.Challenge) (string, error) {
		prompted = ch
		return "123456", nil
	})

	flow, cred, _ := newTestFlow(t, server.handler(), auth.WithPrompter(prompter))

	token, err := flow.Login(ctx, "pineapplelol", "pw")
	require.NoError(t, err)
	assert.Equal(t, "T2", token)

	require.NotNil(t, prompted)
	assert.Equal(t, "S1", prompted.OTPSecret)

	held, _ := cred.Get()
	assert.Equal(t, "T2", held)
}

func TestFlow_Login_WithoutTwoFactor(t *testing.T) {
	ctx := context.Background()

	flow, _, _ := newTestFlow(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"access_token":"T1"}`)) //nolint:errcheck
	})

	token, err := flow.Login(ctx, "pineapplelol", "pw")
	require.NoError(t, err)
	assert.Equal(t, "T1", token)
}

func TestFlow_Login_NoPrompterConfigured(t *testing.T) {
	ctx := context.Background()

	flow, _, _ := newTestFlow(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("venmo-otp-secret", "S1")
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := flow.Login(ctx, "pineapplelol", "pw")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "FLOW_NO_PROMPTER")
}

func TestFlow_Login_PromptFailure(t *testing.T) {
	ctx := context.Background()
	server := &fakeAPI{otpSecret: "S1", token: "T2"}

	prompter := auth.CodePrompterFunc(func(_ context.Context, _ *auth.Challenge) (string, error) {
		return "", errors.New("stdin closed")
	})

	flow, cred, _ := newTestFlow(t, server.handler(), auth.WithPrompter(prompter))

	_, err := flow.Login(ctx, "pineapplelol", "pw")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "FLOW_PROMPT_FAILED")

	_, held := cred.Get()
	assert.False(t, held)
}
