// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the venmogo CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "venmogo",
		Short: "venmogo - a client for Venmo's private API",
		Long: `venmogo talks to Venmo's private REST API: log in (with SMS
two-factor verification when the account demands it), look up profiles,
list transactions and friends, and send payment requests.

Tokens live in process memory only. Authenticated commands take the
bearer token issued by a previous login via --token or VENMO_TOKEN.`,
		SilenceUsage: true,
	}

	// Global flags available to all subcommands.
	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file path (default: XDG config dir)")
	flags.String("base-url", "", "API base URL override")
	flags.Duration("timeout", 0, "HTTP request timeout")
	flags.String("log-format", "", "log format: json or text")
	flags.String("log-level", "", "log level: debug, info, warn, or error")
	flags.String("token", "", "bearer token for authenticated commands")

	// Add subcommands
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewUserCmd())
	cmd.AddCommand(NewTransactionsCmd())
	cmd.AddCommand(NewFriendsCmd())
	cmd.AddCommand(NewRequestCmd())

	return cmd
}
