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

// defaultStoryLimit matches the API's page size when the caller does not
// choose one.
const defaultStoryLimit = 10

// Transactions lists the payment stories a user appears in. Requires an
// authenticated session.
type Transactions struct {
	client *api.Client
	cred   *session.Credential
}

// Counterparty identifies one side of a payment.
type Counterparty struct {
	Name     string
	Username string
}

// Transaction is the cleaned view of a payment story: the completion
// date, the note, the action the actor took (pay or charge), and the two
// parties involved.
type Transaction struct {
	Date   string
	Note   string
	Action string
	Actor  Counterparty
	Target Counterparty
}

// Story is a raw feed entry. Entries that are not payments (transfers,
// disputes) carry no payment.
type Story struct {
	Payment *StoryPayment `json:"payment"`
}

// StoryPayment is the payment portion of a feed entry, as the API shapes it.
type StoryPayment struct {
	DateCompleted string     `json:"date_completed"`
	Note          string     `json:"note"`
	Action        string     `json:"action"`
	Actor         wirePerson `json:"actor"`
	Target        struct {
		User wirePerson `json:"user"`
	} `json:"target"`
}

type wirePerson struct {
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
}

type storyEnvelope struct {
	Data []Story `json:"data"`
}

// Fetch returns the raw feed entries for a user, newest first.
func (t *Transactions) Fetch(ctx context.Context, userID string, limit int) ([]Story, error) {
	if limit <= 0 {
		limit = defaultStoryLimit
	}

	hdr, err := bearer(t.cred)
	if err != nil {
		return nil, err
	}

	path := "/stories/target-or-actor/" + url.PathEscape(userID) + "?limit=" + strconv.Itoa(limit)
	resp, err := t.client.Do(ctx, http.MethodGet, path, hdr, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close failure is inconsequential

	if resp.StatusCode != http.StatusOK {
		return nil, api.FailureFromResponse(resp, "TRANSACTION_FETCH_FAILED")
	}

	var envelope storyEnvelope
	if err := api.DecodeJSON(resp, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// List returns the cleaned transactions for a user. Feed entries without
// a payment are skipped.
func (t *Transactions) List(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	stories, err := t.Fetch(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(stories))
	for _, story := range stories {
		if story.Payment == nil {
			continue
		}
		p := story.Payment
		transactions = append(transactions, Transaction{
			Date:   p.DateCompleted,
			Note:   p.Note,
			Action: p.Action,
			Actor:  Counterparty{Name: p.Actor.DisplayName, Username: p.Actor.Username},
			Target: Counterparty{Name: p.Target.User.DisplayName, Username: p.Target.User.Username},
		})
	}
	return transactions, nil
}
