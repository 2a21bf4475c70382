/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package api holds the resolver contracts implemented by the built-in DID method engines and by externally
// supplied resolvers plugged into the registry.
package api

import (
	"context"
	"errors"

	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
)

// ErrNotFound is returned when a DID resolver does not find the DID.
var ErrNotFound = errors.New("DID not found")

// Resolver reads DID documents for one DID method.
// Implementations backed by network or disk I/O must honour ctx cancellation.
type Resolver interface {
	Read(ctx context.Context, didID string, opts ...DIDMethodOption) (*did.DocResolution, error)
}

// VDR verifiable data registry interface of a DID method engine.
type VDR interface {
	Resolver
	Accept(method string) bool
}

// Registry dispatches resolution to the resolver of the DID's method.
type Registry interface {
	Resolve(ctx context.Context, didID string, opts ...DIDMethodOption) (*did.DocResolution, error)
}

// ResolverFunc is an adapter to allow the use of ordinary functions as resolvers.
type ResolverFunc func(ctx context.Context, didID string, opts ...DIDMethodOption) (*did.DocResolution, error)

// Read calls f(ctx, didID, opts...).
func (f ResolverFunc) Read(ctx context.Context, didID string, opts ...DIDMethodOption) (*did.DocResolution, error) {
	return f(ctx, didID, opts...)
}

// DIDMethodOpts did method opts.
type DIDMethodOpts struct {
	Values map[string]interface{}
}

// DIDMethodOption is a did method option.
type DIDMethodOption func(opts *DIDMethodOpts)

// WithOption add option for did method.
func WithOption(name string, value interface{}) DIDMethodOption {
	return func(didMethodOpts *DIDMethodOpts) {
		didMethodOpts.Values[name] = value
	}
}

// NewDIDMethodOpts applies opts to an empty option set.
func NewDIDMethodOpts(opts ...DIDMethodOption) *DIDMethodOpts {
	o := &DIDMethodOpts{Values: make(map[string]interface{})}

	for _, opt := range opts {
		opt(o)
	}

	return o
}
