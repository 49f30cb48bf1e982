// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/pineapplelol/venmogo/internal/venmo"
)

// requestConfig holds configuration for the request command.
type requestConfig struct {
	audience string
}

// NewRequestCmd creates the request subcommand.
func NewRequestCmd() *cobra.Command {
	cfg := &requestConfig{}

	cmd := &cobra.Command{
		Use:   "request <user-id> <amount> <note>",
		Short: "Request a payment from a user",
		Long: `Ask a user to pay you. The amount is in dollars, e.g. 12.50.
Requires an authenticated session (--token or VENMO_TOKEN).`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, cfg, args[0], args[1], strings.Join(args[2:], " "))
		},
	}

	cmd.Flags().StringVar(&cfg.audience, "audience", string(venmo.AudiencePrivate),
		"who can see the payment: private, friends, or public")

	return cmd
}

func runRequest(cmd *cobra.Command, cfg *requestConfig, userID, amount, note string) error {
	cents, err := parseAmount(amount)
	if err != nil {
		return err
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	payment, err := e.venmo.Payments.Request(cmd.Context(), userID, cents, note, venmo.Audience(cfg.audience))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Requested $%s from user %s (payment %s, %s)\n", amount, userID, payment.ID, payment.Status)
	return nil
}

// parseAmount converts a decimal-dollar string like "12.50" to cents.
// At most two fractional digits are accepted; there is no rounding.
func parseAmount(s string) (int64, error) {
	fail := func() (int64, error) {
		return 0, oops.Code("AMOUNT_INVALID").
			With("amount", s).
			Errorf("amount must be a positive dollar value like 12.50")
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || strings.HasPrefix(whole, "-") || strings.HasPrefix(whole, "+") {
		return fail()
	}

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return fail()
	}

	cents := int64(0)
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 || strings.ContainsAny(frac, "+-") {
			return fail()
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return fail()
		}
	}

	total := dollars*100 + cents
	if total <= 0 {
		return fail()
	}
	return total, nil
}
