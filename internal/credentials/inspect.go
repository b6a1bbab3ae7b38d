// Betsync - Real-time Sync Client for the Betting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/betsync

package credentials

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned by Inspect when the token cannot be parsed as a JWT.
var ErrNotJWT = errors.New("credential is not a JWT")

// Info describes a token for logging. The signature is never verified; the
// server is the only authority on whether a token is valid.
type Info struct {
	Subject   string
	ExpiresAt time.Time // zero when the token has no exp claim
}

// Expired reports whether the exp claim is in the past relative to now.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Inspect reads the subject and expiry of a JWT without verifying it.
func Inspect(token string) (Info, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrNotJWT, err)
	}

	var info Info
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
