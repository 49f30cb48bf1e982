// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package venmo

import (
	"context"
	"net/http"

	"github.com/samber/oops"

	"github.com/pineapplelol/venmogo/internal/api"
	"github.com/pineapplelol/venmogo/internal/session"
)

// Audience controls who can see a payment.
type Audience string

// Payment audiences.
const (
	AudiencePrivate Audience = "private"
	AudienceFriends Audience = "friends"
	AudiencePublic  Audience = "public"
)

// Payments sends payment requests. Requires an authenticated session.
type Payments struct {
	client *api.Client
	cred   *session.Credential
}

// Payment is the created payment record.
type Payment struct {
	ID     string
	Status string
}

type paymentRequest struct {
	UserID   string  `json:"user_id"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
	Audience string  `json:"audience"`
}

type paymentEnvelope struct {
	Data struct {
		Payment struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"payment"`
	} `json:"data"`
}

// Request asks userID to pay the given amount. The wire amount is a
// decimal-dollar value and a charge request is expressed by its sign, so
// the cents are converted and negated here at the edge and nowhere else.
func (p *Payments) Request(ctx context.Context, userID string, amountCents int64, note string, audience Audience) (*Payment, error) {
	if amountCents <= 0 {
		return nil, oops.Code("PAYMENT_INVALID_AMOUNT").
			With("amount_cents", amountCents).
			Errorf("payment request amount must be positive")
	}
	if audience == "" {
		audience = AudiencePrivate
	}

	hdr, err := bearer(p.cred)
	if err != nil {
		return nil, err
	}

	body := paymentRequest{
		UserID:   userID,
		Amount:   -float64(amountCents) / 100,
		Note:     note,
		Audience: string(audience),
	}

	resp, err := p.client.Do(ctx, http.MethodPost, "/payments", hdr, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close failure is inconsequential

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, api.FailureFromResponse(resp, "PAYMENT_REQUEST_FAILED")
	}

	var envelope paymentEnvelope
	if err := api.DecodeJSON(resp, &envelope); err != nil {
		return nil, err
	}
	return &Payment{
		ID:     envelope.Data.Payment.ID,
		Status: envelope.Data.Payment.Status,
	}, nil
}
