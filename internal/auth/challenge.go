// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

package auth

import "context"

// Challenge represents a pending two-factor verification tied to one
// login attempt. The OTP secret is bound server-side to the device
// identity that requested it, so both travel together. A challenge lives
// only as long as its attempt and is never reused.
type Challenge struct {
	DeviceID  string
	OTPSecret string
}

// CodePrompter obtains the user-entered one-time passcode for a pending
// challenge. Implementations may block indefinitely; the login flow sits
// at the challenge state until the prompter returns or the context is
// cancelled.
type CodePrompter interface {
	Prompt(ctx context.Context, ch *Challenge) (string, error)
}

// CodePrompterFunc adapts a function to the CodePrompter interface.
type CodePrompterFunc func(ctx context.Context, ch *Challenge) (string, error)

// Prompt calls f.
func (f CodePrompterFunc) Prompt(ctx context.Context, ch *Challenge) (string, error) {
	return f(ctx, ch)
}
