// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pineapplelol/venmogo/internal/venmo"
)

// transactionsConfig holds configuration for the transactions command.
type transactionsConfig struct {
	limit int
}

// NewTransactionsCmd creates the transactions subcommand.
func NewTransactionsCmd() *cobra.Command {
	cfg := &transactionsConfig{}

	cmd := &cobra.Command{
		Use:   "transactions <user-id>",
		Short: "List a user's recent transactions",
		Long: `List the payments a user appears in, newest first. Requires an
authenticated session (--token or VENMO_TOKEN).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransactions(cmd, cfg, args[0])
		},
	}

	cmd.Flags().IntVar(&cfg.limit, "limit", 10, "maximum number of transactions")

	return cmd
}

func runTransactions(cmd *cobra.Command, cfg *transactionsConfig, userID string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	transactions, err := e.venmo.Transactions.List(cmd.Context(), userID, cfg.limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatTransactions(transactions))
	return nil
}

func formatTransactions(transactions []venmo.Transaction) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "DATE\tACTION\tACTOR\tTARGET\tNOTE")
	for _, tx := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tx.Date, tx.Action, tx.Actor.Username, tx.Target.Username, tx.Note)
	}
	_ = w.Flush() //nolint:errcheck // strings.Builder writes cannot fail

	return strings.TrimRight(b.String(), "\n")
}
