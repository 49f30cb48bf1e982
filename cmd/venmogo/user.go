// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package main

import (
	"encoding/json"
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// userConfig holds configuration for the user command.
type userConfig struct {
	jsonOutput bool
}

// NewUserCmd creates the user subcommand.
func NewUserCmd() *cobra.Command {
	cfg := &userConfig{}

	cmd := &cobra.Command{
		Use:   "user <username>",
		Short: "Look up a user's public profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUser(cmd, cfg, args[0])
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output the profile as JSON")

	return cmd
}

func runUser(cmd *cobra.Command, cfg *userConfig, username string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	user, err := e.venmo.Users.Get(cmd.Context(), username)
	if err != nil {
		return err
	}

	if cfg.jsonOutput {
		out, err := json.MarshalIndent(user, "", "  ")
		if err != nil {
			return oops.Code("OUTPUT_FAILED").Wrap(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "id:       %s\n", user.ID)
	fmt.Fprintf(w, "username: %s\n", user.Username)
	fmt.Fprintf(w, "name:     %s\n", user.DisplayName)
	fmt.Fprintf(w, "joined:   %s\n", user.DateJoined)
	return nil
}
