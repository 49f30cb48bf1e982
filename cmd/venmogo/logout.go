// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/pineapplelol/venmogo/internal/auth"
	"github.com/pineapplelol/venmogo/pkg/errutil"
)

// NewLogoutCmd creates the logout subcommand.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke a bearer token",
		Long: `Revoke the bearer token given via --token or VENMO_TOKEN
server-side. The token is unusable afterwards even if the revoke request
itself fails.`,
		RunE: runLogout,
	}
}

func runLogout(cmd *cobra.Command, _ []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	revoker, err := auth.NewRevoker(e.client, e.cred, e.logger)
	if err != nil {
		return err
	}

	if err := revoker.Logout(cmd.Context(), ""); err != nil {
		// The local session is gone either way; report the revoke failure
		// without pretending the logout did not happen.
		errutil.LogError(e.logger, "token revocation failed", err)
		return err
	}

	cmd.Println("Logged out.")
	return nil
}
