/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package vdr dispatches DID resolution to the resolver registered for the DID's method.
package vdr

import (
	"context"
	"fmt"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
	"github.com/hyperledger/aries-did-engine/pkg/common/log"
	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/api"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/peer"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/prism"
)

var logger = log.New("did-engine/vdr")

// Entry binds a DID method name to its resolver.
type Entry struct {
	Method   string
	Resolver api.Resolver
}

// Option is a vdr instance option.
type Option func(opts *Registry)

// Registry vdr registry. Its entries are fixed by New and searched in order.
type Registry struct {
	prepended []Entry
	appended  []Entry
	entries   []Entry
}

// New returns a registry holding, in order: prepended resolvers, the peer and prism engines, appended resolvers.
func New(opts ...Option) *Registry {
	r := &Registry{}

	// Apply options
	for _, opt := range opts {
		opt(r)
	}

	r.entries = make([]Entry, 0, len(r.prepended)+len(r.appended)+2) //nolint:gomnd
	r.entries = append(r.entries, r.prepended...)
	r.entries = append(r.entries,
		Entry{Method: peer.DIDMethod, Resolver: peer.New()},
		Entry{Method: prism.DIDMethod, Resolver: prism.New()})
	r.entries = append(r.entries, r.appended...)

	return r
}

// WithPrependedResolver adds a resolver searched before the built-in engines, so it can override them.
func WithPrependedResolver(method string, resolver api.Resolver) Option {
	return func(opts *Registry) {
		opts.prepended = append(opts.prepended, Entry{Method: method, Resolver: resolver})
	}
}

// WithResolver adds a resolver searched after the built-in engines.
func WithResolver(method string, resolver api.Resolver) Option {
	return func(opts *Registry) {
		opts.appended = append(opts.appended, Entry{Method: method, Resolver: resolver})
	}
}

// Resolve did document.
func (r *Registry) Resolve(ctx context.Context, didID string, opts ...api.DIDMethodOption) (*did.DocResolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := did.Parse(didID)
	if err != nil {
		return nil, err
	}

	// resolve did method
	resolver, err := r.resolverFor(parsed.Method)
	if err != nil {
		return nil, err
	}

	// Obtain the DID Document
	didDocResolution, err := resolver.Read(ctx, didID, opts...)
	if err != nil {
		logger.Debugf("resolve %s failed: %v", didID, err)

		return nil, fmt.Errorf("did method read failed: %w", err)
	}

	return didDocResolution, nil
}

// Methods lists the registered method names in search order.
func (r *Registry) Methods() []string {
	methods := make([]string, 0, len(r.entries))

	for _, e := range r.entries {
		methods = append(methods, e.Method)
	}

	return methods
}

func (r *Registry) resolverFor(method string) (api.Resolver, error) {
	for _, e := range r.entries {
		if e.Method == method {
			return e.Resolver, nil
		}
	}

	return nil, diderrors.New(diderrors.UnsupportedMethod, diderrors.ErrNoResolver, "did method %s", method)
}
