// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package reject

import "errors"

// Payload is the immutable description of a reject. Category is
// always derived from Code by [CategoryForCode].
type Payload struct {
	Code      string `json:"code"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	Surface   string `json:"surface"`
	Operation string `json:"operation"`
	Retryable bool   `json:"retryable"`
	Details   string `json:"details"`
}

// Error is the error type returned by every contract validator. Use
// [As] or errors.As to recover it from a wrapped error chain.
type Error struct {
	payload Payload
}

// Error returns "<code>: <message>".
func (e *Error) Error() string {
	return e.payload.Code + ": " + e.payload.Message
}

// Payload returns a copy of the reject's payload.
func (e *Error) Payload() Payload {
	return e.payload
}

// Option adjusts the optional payload fields at construction time.
type Option func(*Payload)

// Retryable marks the reject as safe for the caller to retry.
func Retryable() Option {
	return func(p *Payload) { p.Retryable = true }
}

// WithDetails attaches free-form details, typically the path, id, or
// value that caused the reject.
func WithDetails(details string) Option {
	return func(p *Payload) { p.Details = details }
}

// New builds a reject. The category is derived from code; a malformed
// code is not an error here and simply resolves to the conformance
// category.
func New(code, message, surface, operation string, options ...Option) *Error {
	payload := Payload{
		Code:      code,
		Category:  CategoryForCode(code),
		Message:   message,
		Surface:   surface,
		Operation: operation,
	}
	for _, option := range options {
		option(&payload)
	}
	return &Error{payload: payload}
}

// As reports whether err's chain contains a reject and returns it.
func As(err error) (*Error, bool) {
	var rejectErr *Error
	if errors.As(err, &rejectErr) {
		return rejectErr, true
	}
	return nil, false
}

// CodeOf returns the reject code carried by err, or "" when err is
// nil or not a reject.
func CodeOf(err error) string {
	if rejectErr, ok := As(err); ok {
		return rejectErr.payload.Code
	}
	return ""
}
