// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pineapplelol/venmogo/internal/api"
	"github.com/pineapplelol/venmogo/internal/logging"
	"github.com/pineapplelol/venmogo/internal/session"
	"github.com/pineapplelol/venmogo/internal/venmo"
	"github.com/pineapplelol/venmogo/internal/xdg"
)

// config holds the CLI's effective settings: defaults, then the config
// file, then explicitly set flags, in increasing precedence.
type config struct {
	BaseURL   string
	Timeout   time.Duration
	LogFormat string
	LogLevel  string
	Token     string
}

func loadConfig(flags *pflag.FlagSet) (*config, error) {
	k := koanf.New(".")

	path, _ := flags.GetString("config") //nolint:errcheck // Flag is registered on the root command
	explicit := path != ""
	if !explicit {
		path = xdg.ConfigFile()
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_INVALID").
				With("path", path).
				Wrap(err)
		}
	} else if explicit {
		return nil, oops.Code("CONFIG_INVALID").
			With("path", path).
			Errorf("config file does not exist")
	}

	// Flags that were explicitly set win over file values.
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, oops.Code("CONFIG_INVALID").
			With("operation", "merge flags").
			Wrap(err)
	}

	cfg := &config{
		BaseURL:   k.String("base-url"),
		Timeout:   k.Duration("timeout"),
		LogFormat: k.String("log-format"),
		LogLevel:  k.String("log-level"),
		Token:     k.String("token"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = api.DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("VENMO_TOKEN")
	}
	return cfg, nil
}

// env bundles everything a subcommand needs to talk to the API.
type env struct {
	cfg    *config
	logger *slog.Logger
	client *api.Client
	cred   *session.Credential
	venmo  *venmo.Venmo
}

func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := logging.Setup("venmogo", version, cfg.LogFormat, cfg.LogLevel, cmd.ErrOrStderr())

	client := api.NewClient(
		api.WithBaseURL(cfg.BaseURL),
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		api.WithLogger(logger),
	)

	cred := &session.Credential{}
	if cfg.Token != "" {
		cred.Set(cfg.Token)
	}

	v, err := venmo.New(client, cred)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:    cfg,
		logger: logger,
		client: client,
		cred:   cred,
		venmo:  v,
	}, nil
}
