// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned by TokenExpiry when the token is a JWT without an
// "exp" claim.
var ErrNoExpiry = errors.New("token has no expiry claim")

// TokenExpiry reads the "exp" claim of a JWT without verifying its
// signature. The sidebar never holds the signing key; the expiry is only
// used to skip a request that is bound to be rejected.
//
// Returns an error when the token is not a JWT or has no expiry.
func TokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing token: %w", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("error reading expiry: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}

	return exp.Time, nil
}

// IsTokenExpired reports whether tokenString is a JWT whose expiry lies
// before now. Opaque tokens and JWTs without "exp" are never considered
// expired; the server remains the authority for those.
func IsTokenExpired(tokenString string, now time.Time) bool {
	exp, err := TokenExpiry(tokenString)
	if err != nil {
		return false
	}

	return !now.Before(exp)
}
