// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

// Package errutil provides helpers for logging, inspecting, and asserting
// on coded errors.
package errutil

import (
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs an error with structured context if it's an oops error.
// For oops errors, it extracts and logs the message, code, and context.
// For standard errors, it logs the error string.
func LogError(logger *slog.Logger, msg string, err error) {
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs := []any{
			"error", oopsErr.Error(),
		}
		if code := oopsErr.Code(); code != "" {
			attrs = append(attrs, "code", code)
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			attrs = append(attrs, "context", ctx)
		}
		logger.Error(msg, attrs...)
	} else {
		logger.Error(msg, "error", err)
	}
}

// Code returns the oops code carried by err, or "" for uncoded errors.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	return oopsErr.Code()
}

// ServerDetail extracts the upstream service's verbatim error message and
// numeric code from err's context, when the failure carried them. ok
// reports whether a server message was present.
func ServerDetail(err error) (message string, code int, ok bool) {
	oopsErr, isOops := oops.AsOops(err)
	if !isOops {
		return "", 0, false
	}
	ctx := oopsErr.Context()
	message, ok = ctx["server_message"].(string)
	if !ok {
		return "", 0, false
	}
	code, _ = ctx["server_code"].(int)
	return message, code, true
}
