// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/pineapplelol/venmogo/internal/auth"
)

// loginConfig holds configuration for the login command.
type loginConfig struct {
	username string
}

// NewLoginCmd creates the login subcommand.
func NewLoginCmd() *cobra.Command {
	cfg := &loginConfig{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		Long: `Log in with a username (or email or phone number) and password.
When the account requires two-factor verification, a code is sent by SMS
and prompted for interactively.

The username comes from --username or VENMO_USERNAME; the password comes
from VENMO_PASSWORD. Both can live in a .env file in the working
directory. The issued token is printed to stdout for use with --token.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.username, "username", "", "username, email, or phone number")

	return cmd
}

func runLogin(cmd *cobra.Command, cfg *loginConfig) error {
	// A missing .env is fine; the variables may come from the process
	// environment directly.
	_ = godotenv.Load() //nolint:errcheck

	username := cfg.username
	if username == "" {
		username = os.Getenv("VENMO_USERNAME")
	}
	if username == "" {
		return oops.Code("CONFIG_INVALID").Errorf("a username is required: pass --username or set VENMO_USERNAME")
	}

	password := os.Getenv("VENMO_PASSWORD")
	if password == "" {
		return oops.Code("CONFIG_INVALID").Errorf("VENMO_PASSWORD is required")
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	prompter := &terminalPrompter{in: cmd.InOrStdin(), out: cmd.ErrOrStderr()}
	flow, err := auth.NewFlow(e.client, e.cred,
		auth.WithPrompter(prompter),
		auth.WithLogger(e.logger),
	)
	if err != nil {
		return err
	}

	token, err := flow.Login(cmd.Context(), username, password)
	if err != nil {
		return err
	}

	// The token goes to stdout so it can be captured; everything else the
	// command says goes to stderr.
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

// terminalPrompter reads the one-time passcode from an interactive
// terminal. The prompt goes to stderr so a redirected stdout still
// captures only the token.
type terminalPrompter struct {
	in  io.Reader
	out io.Writer
}

func (p *terminalPrompter) Prompt(_ context.Context, _ *auth.Challenge) (string, error) {
	fmt.Fprint(p.out, "Enter the code sent to your phone: ")

	code, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && code == "" {
		return "", oops.Code("OTP_PROMPT_FAILED").
			With("operation", "read code from terminal").
			Wrap(err)
	}
	return strings.TrimSpace(code), nil
}
