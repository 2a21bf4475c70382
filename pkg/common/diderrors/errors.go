/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package diderrors defines the error taxonomy shared by the DID parser, codecs, method engines and registry.
//
// Every failure is an *Error carrying a Kind (the broad class) and a Reason (the exact cause).
// Kind sentinels such as ErrEncoding match any error of that kind through errors.Is, while
// reason sentinels such as ErrUnknownCodec match only that cause.
package diderrors

import (
	"errors"
	"fmt"
)

// Kind is the class of a DID engine error.
type Kind int32

const (
	// Grammar is a malformed DID or DID URL.
	Grammar Kind = iota + 1

	// Encoding is a bad multicodec, multibase, base64url, JWK or service payload.
	Encoding

	// Key is a wrong key length, curve mismatch or undecodable public key.
	Key

	// Integrity is a self-certification or document consistency failure.
	Integrity

	// UnsupportedMethod is a DID no resolver can handle.
	UnsupportedMethod
)

// String returns the readable name of the kind.
func (k Kind) String() string {
	switch k {
	case Grammar:
		return "grammar error"
	case Encoding:
		return "encoding error"
	case Key:
		return "key error"
	case Integrity:
		return "integrity error"
	case UnsupportedMethod:
		return "unsupported method"
	default:
		return fmt.Sprintf("unknown error kind %d", int32(k))
	}
}

// Kind sentinels, matching every error of the given kind.
var (
	ErrGrammar           = &Error{Kind: Grammar}
	ErrEncoding          = &Error{Kind: Encoding}
	ErrKey               = &Error{Kind: Key}
	ErrIntegrity         = &Error{Kind: Integrity}
	ErrUnsupportedMethod = &Error{Kind: UnsupportedMethod}
)

// Grammar reasons.
var (
	ErrMissingScheme   = errors.New("missing did scheme")
	ErrTooFewParts     = errors.New("too few parts")
	ErrInvalidMethod   = errors.New("invalid method name")
	ErrInvalidMethodID = errors.New("invalid method specific id")
	ErrInvalidDIDURL   = errors.New("invalid did url")
)

// Encoding reasons.
var (
	ErrUnknownCodec             = errors.New("unknown codec")
	ErrInvalidMultibase         = errors.New("invalid multibase")
	ErrInvalidJWK               = errors.New("invalid jwk")
	ErrNotPeerDID               = errors.New("not a numalgo2 peer did")
	ErrInvalidKeyEncoding       = errors.New("invalid key encoding")
	ErrInvalidServiceEncoding   = errors.New("invalid service encoding")
	ErrUnsupportedOperationType = errors.New("unsupported operation type")
	ErrInvalidOperation         = errors.New("invalid operation encoding")
)

// Key reasons.
var (
	ErrInvalidLength        = errors.New("invalid key length")
	ErrCurveMismatch        = errors.New("curve mismatch")
	ErrPublicKeyDecodeError = errors.New("public key decode error")
	ErrKeyNotFound          = errors.New("key not found")
)

// Integrity reasons.
var (
	ErrInitialStateChanged = errors.New("initial state changed")
	ErrDanglingReference   = errors.New("dangling verification method reference")
)

// UnsupportedMethod reasons.
var (
	ErrShortFormUnresolvable = errors.New("short form did is unresolvable")
	ErrNoResolver            = errors.New("no resolver for method")
)

// Error is a DID engine failure.
type Error struct {
	Kind   Kind
	Reason error
	Detail string
	Err    error
}

// New returns an error of the given kind and reason with a formatted detail.
func New(kind Kind, reason error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// Wrap is New with an underlying cause.
func Wrap(err error, kind Kind, reason error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Reason: reason, Detail: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.String()

	if e.Reason != nil {
		msg += ": " + e.Reason.Error()
	}

	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Is reports whether target is this error's reason, or a kind sentinel of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Reason == nil && t.Detail == "" && t.Err == nil {
			return t.Kind == e.Kind
		}

		return t == e
	}

	return e.Reason != nil && target == e.Reason
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or zero if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}
