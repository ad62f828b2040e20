// Package vbconv is the public façade over internal/vbconv's VBA6-to-JS
// source translator. It exposes the two operations spec.md §6 names —
// convert(lines) and convert(text) — plus the stable error type a caller
// can match on.
package vbconv

import (
	"strings"

	"github.com/cwbudde/vba2js/internal/vbconv"
)

// Convert translates an ordered sequence of VBA6 source lines into an
// approximately equivalent JS script.
func Convert(lines []string) (string, error) {
	return vbconv.Translate(lines)
}

// ConvertText splits text on the platform line separator and delegates to
// Convert.
func ConvertText(text string) (string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return Convert(strings.Split(text, "\n"))
}

// Code identifies the kind of a ParseException.
type Code = vbconv.Code

// Stable error codes a caller can match ParseException.Code against.
const (
	ErrNestingUnbalanced = vbconv.ErrNestingUnbalanced
	ErrUnexpectedEOF      = vbconv.ErrUnexpectedEOF
	ErrUnknownToken       = vbconv.ErrUnknownToken
	ErrRunawayPeek        = vbconv.ErrRunawayPeek
	ErrEmptyWithStack     = vbconv.ErrEmptyWithStack
)

// ParseException is the sole error variant Convert/ConvertText raise.
type ParseException = vbconv.ParseException
