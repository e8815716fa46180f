// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for talking to the repository API.
package httputil

import (
	"fmt"
	"io"
	"net/http"
)

// MaxErrorBody is the number of characters of a failed response body kept
// for diagnostics.
const MaxErrorBody = 400

// errorBodyReadLimit caps how much of a failed response is read at all.
const errorBodyReadLimit = 64 << 10

// StatusError reports a response whose status is outside 2xx.
type StatusError struct {
	StatusCode int
	// Body holds at most MaxErrorBody characters of the response body.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// CheckStatus returns nil for a 2xx response. Otherwise it reads a bounded
// prefix of the body and returns a *StatusError. The caller still owns
// resp.Body and must close it.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Body:       Truncate(string(data), MaxErrorBody),
	}
}

// Truncate returns the first n characters of s. It counts runes so a
// multi-byte character is never split.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
