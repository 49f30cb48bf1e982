// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// friendsConfig holds configuration for the friends command.
type friendsConfig struct {
	limit int
}

// NewFriendsCmd creates the friends subcommand.
func NewFriendsCmd() *cobra.Command {
	cfg := &friendsConfig{}

	cmd := &cobra.Command{
		Use:   "friends <user-id>",
		Short: "List a user's friends",
		Long: `List a user's friends. Requires an authenticated session
(--token or VENMO_TOKEN).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFriends(cmd, cfg, args[0])
		},
	}

	cmd.Flags().IntVar(&cfg.limit, "limit", 10, "maximum number of friends")

	return cmd
}

func runFriends(cmd *cobra.Command, cfg *friendsConfig, userID string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	friends, err := e.venmo.Friends.List(cmd.Context(), userID, cfg.limit)
	if err != nil {
		return err
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tNAME")
	for _, friend := range friends {
		fmt.Fprintf(w, "%s\t%s\t%s\n", friend.ID, friend.Username, friend.DisplayName)
	}
	_ = w.Flush() //nolint:errcheck // strings.Builder writes cannot fail

	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(b.String(), "\n"))
	return nil
}
