// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/pineapplelol/venmogo/internal/api"
	"github.com/pineapplelol/venmogo/internal/device"
	"github.com/pineapplelol/venmogo/internal/session"
)

// Paths of the login protocol.
const (
	pathAccessToken = "/oauth/access_token"
	pathOTPDelivery = "/account/two-factor/token"
)

// clientID identifies this client to the API on both login phases.
const clientID = "1"

// otpDeliverySMS asks the service to deliver the one-time passcode by SMS.
const otpDeliverySMS = "sms"

// State is the login flow's position in the protocol.
type State int

// Login flow states. Authenticated and Failed are terminal.
const (
	StateInit State = iota
	StateSubmitted
	StateAuthenticated
	StateChallengeIssued
	StateOTPSent
	StateFailed
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateSubmitted:
		return "submitted"
	case StateAuthenticated:
		return "authenticated"
	case StateChallengeIssued:
		return "challenge_issued"
	case StateOTPSent:
		return "otp_sent"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of a login phase that reached the server and was
// not rejected. Exactly one of the two fields is set.
type Outcome struct {
	// Token is the issued bearer token when the attempt authenticated.
	Token string

	// Challenge is the pending two-factor verification when the server
	// demanded one.
	Challenge *Challenge
}

// TokenIssued reports whether the attempt produced a bearer token.
func (o *Outcome) TokenIssued() bool {
	return o.Token != ""
}

// ChallengeRequired reports whether the attempt is waiting on a
// one-time passcode.
func (o *Outcome) ChallengeRequired() bool {
	return o.Challenge != nil
}

// Flow drives one login attempt through the two-phase protocol. It mints
// a single device identity at Begin and reuses it verbatim on the
// delivery and completion requests; callers never supply one, which makes
// a device-identity mismatch between phases impossible to express.
//
// A Flow is not safe for concurrent use and cannot be restarted. Per-attempt
// state (device identity, OTP secret) must never be shared across attempts.
type Flow struct {
	client   *api.Client
	cred     *session.Credential
	prompter CodePrompter
	logger   *slog.Logger

	attemptID ulid.ULID
	deviceID  string
	challenge *Challenge
	state     State
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithPrompter supplies the collaborator that obtains the user-entered
// one-time passcode. Only Login requires it; callers driving Begin and
// Complete themselves can leave it unset.
func WithPrompter(p CodePrompter) FlowOption {
	return func(f *Flow) { f.prompter = p }
}

// WithLogger enables structured logging of state transitions. Credentials
// and tokens are never logged.
func WithLogger(l *slog.Logger) FlowOption {
	return func(f *Flow) { f.logger = l }
}

// NewFlow creates a Flow for a single login attempt.
func NewFlow(client *api.Client, cred *session.Credential, opts ...FlowOption) (*Flow, error) {
	if client == nil {
		return nil, oops.Code("FLOW_INVALID_DEPS").Errorf("api client is required")
	}
	if cred == nil {
		return nil, oops.Code("FLOW_INVALID_DEPS").Errorf("session credential is required")
	}

	f := &Flow{
		client:    client,
		cred:      cred,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		attemptID: ulid.Make(),
		state:     StateInit,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.With("attempt_id", f.attemptID.String())
	return f, nil
}

// State returns the flow's current protocol state.
func (f *Flow) State() State {
	return f.state
}

// Challenge returns the pending two-factor challenge, or nil when the
// flow is not waiting on one.
func (f *Flow) Challenge() *Challenge {
	return f.challenge
}

type phaseOneRequest struct {
	Identifier string `json:"phone_email_or_username"`
	ClientID   string `json:"client_id"`
	Password   string `json:"password"`
}

type phaseTwoRequest struct {
	ClientID string `json:"client_id"`
}

type otpDeliveryRequest struct {
	Via string `json:"via"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Begin submits phase 1 of the login protocol. It mints the attempt's
// device identity, sends the credentials, and returns either an issued
// token (stored in the session credential) or a pending challenge.
// identifier may be a username, email, or phone number; neither it nor
// the password is retained beyond this call.
func (f *Flow) Begin(ctx context.Context, identifier, password string) (*Outcome, error) {
	if f.state != StateInit {
		return nil, oops.Code("FLOW_ALREADY_USED").
			With("state", f.state.String()).
			Errorf("login flow has already been started")
	}

	f.deviceID = device.Generate()
	f.state = StateSubmitted

	hdr := api.AuthHeaders{DeviceID: f.deviceID}.Build()
	body := phaseOneRequest{Identifier: identifier, ClientID: clientID, Password: password}

	resp, err := f.client.Do(ctx, http.MethodPost, pathAccessToken, hdr, body)
	if err != nil {
		f.state = StateFailed
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close failure is inconsequential

	switch {
	case resp.StatusCode == http.StatusOK:
		token, err := decodeToken(resp)
		if err != nil {
			f.state = StateFailed
			return nil, err
		}
		f.cred.Set(token)
		f.state = StateAuthenticated
		f.logger.InfoContext(ctx, "login authenticated", "phase", 1)
		return &Outcome{Token: token}, nil

	case resp.StatusCode == http.StatusUnauthorized && resp.Header.Get(api.HeaderOTPSecret) != "":
		f.challenge = &Challenge{
			DeviceID:  f.deviceID,
			OTPSecret: resp.Header.Get(api.HeaderOTPSecret),
		}
		f.state = StateChallengeIssued
		f.logger.InfoContext(ctx, "two-factor challenge issued")
		return &Outcome{Challenge: f.challenge}, nil

	default:
		// A 401 without the OTP-secret header is a credential rejection,
		// not a two-factor demand. The header's presence is the only
		// distinguishing signal.
		f.state = StateFailed
		return nil, api.FailureFromResponse(resp, api.CodeInvalidCredentials)
	}
}

// RequestCode asks the service to deliver a one-time passcode (by SMS)
// for the pending challenge. A delivery failure is reported but does not
// terminalize the flow: the challenge stays usable until the caller
// gives up.
func (f *Flow) RequestCode(ctx context.Context) error {
	if f.challenge == nil {
		return oops.Code("FLOW_NOT_CHALLENGED").
			With("state", f.state.String()).
			Errorf("no two-factor challenge is pending")
	}

	hdr := api.AuthHeaders{
		DeviceID:  f.challenge.DeviceID,
		OTPSecret: f.challenge.OTPSecret,
	}.Build()

	resp, err := f.client.Do(ctx, http.MethodPost, pathOTPDelivery, hdr, otpDeliveryRequest{Via: otpDeliverySMS})
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close failure is inconsequential

	if resp.StatusCode != http.StatusOK {
		return api.FailureFromResponse(resp, api.CodeOTPDeliveryFailed)
	}

	f.state = StateOTPSent
	f.logger.InfoContext(ctx, "one-time passcode delivery requested", "via", otpDeliverySMS)
	return nil
}

// Complete submits phase 2 with the caller-supplied code. The device
// identity and OTP secret come from the flow's own challenge; the request
// body carries only the client identifier.
func (f *Flow) Complete(ctx context.Context, code string) (*Outcome, error) {
	if f.state != StateChallengeIssued && f.state != StateOTPSent {
		return nil, oops.Code("FLOW_NOT_CHALLENGED").
			With("state", f.state.String()).
			Errorf("login flow is not waiting on a one-time passcode")
	}

	hdr := api.AuthHeaders{
		DeviceID:  f.challenge.DeviceID,
		OTPSecret: f.challenge.OTPSecret,
		OTPCode:   code,
	}.Build()

	resp, err := f.client.Do(ctx, http.MethodPost, pathAccessToken, hdr, phaseTwoRequest{ClientID: clientID})
	if err != nil {
		f.state = StateFailed
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close failure is inconsequential

	if resp.StatusCode != http.StatusOK {
		f.state = StateFailed
		return nil, api.FailureFromResponse(resp, api.CodeInvalidOTP)
	}

	token, err := decodeToken(resp)
	if err != nil {
		f.state = StateFailed
		return nil, err
	}
	f.cred.Set(token)
	f.state = StateAuthenticated
	f.logger.InfoContext(ctx, "login authenticated", "phase", 2)
	return &Outcome{Token: token}, nil
}

// Login runs the whole protocol end to end: phase 1, and when challenged,
// passcode delivery, the injected prompt, and phase 2. It returns the
// issued bearer token, which is also stored in the session credential.
func (f *Flow) Login(ctx context.Context, identifier, password string) (string, error) {
	out, err := f.Begin(ctx, identifier, password)
	if err != nil {
		return "", err
	}
	if out.TokenIssued() {
		return out.Token, nil
	}

	if f.prompter == nil {
		return "", oops.Code("FLOW_NO_PROMPTER").
			Errorf("two-factor verification required but no code prompter is configured")
	}

	if err := f.RequestCode(ctx); err != nil {
		return "", err
	}

	code, err := f.prompter.Prompt(ctx, f.challenge)
	if err != nil {
		return "", oops.Code("FLOW_PROMPT_FAILED").
			With("operation", "obtain one-time passcode").
			Wrap(err)
	}

	out, err = f.Complete(ctx, code)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

func decodeToken(resp *http.Response) (string, error) {
	var body tokenResponse
	if err := api.DecodeJSON(resp, &body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", oops.Code(api.CodeMalformedResponse).
			With("http_status", resp.StatusCode).
			Errorf("success response carried no access token")
	}
	return body.AccessToken, nil
}
