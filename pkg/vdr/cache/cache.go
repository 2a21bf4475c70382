/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cache keeps recently resolved DID documents in memory in front of a registry.
package cache

import (
	"context"
	"errors"

	"github.com/bluele/gcache"
	"golang.org/x/exp/slices"

	"github.com/hyperledger/aries-did-engine/pkg/common/log"
	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/api"
)

const defaultSize = 100

var logger = log.New("did-engine/vdr/cache")

// Option configures the cache.
type Option func(opts *Registry)

// WithSize sets the maximum number of cached resolutions. A size below one keeps the default.
func WithSize(size int) Option {
	return func(opts *Registry) {
		if size > 0 {
			opts.size = size
		}
	}
}

// Registry is a least recently used cache of successful resolutions.
// Resolutions requested with method options bypass the cache.
// The underlying gcache is thread safe, no locks needed here.
type Registry struct {
	next  api.Registry
	size  int
	store gcache.Cache
}

// New wraps next with an LRU cache.
func New(next api.Registry, opts ...Option) *Registry {
	r := &Registry{next: next, size: defaultSize}

	for _, opt := range opts {
		opt(r)
	}

	r.store = gcache.New(r.size).LRU().Build()

	return r
}

// Resolve returns a cached copy of the resolution of didID, resolving it through the wrapped registry on a miss.
func (r *Registry) Resolve(ctx context.Context, didID string,
	opts ...api.DIDMethodOption) (*did.DocResolution, error) {
	if len(opts) > 0 {
		return r.next.Resolve(ctx, didID, opts...)
	}

	v, err := r.store.Get(didID)
	if err == nil {
		logger.Debugf("cache hit for %s", didID)

		return cloneResolution(v.(*did.DocResolution)), nil //nolint:forcetypeassert
	}

	if !errors.Is(err, gcache.KeyNotFoundError) {
		return nil, err
	}

	res, err := r.next.Resolve(ctx, didID)
	if err != nil {
		return nil, err
	}

	if err := r.store.Set(didID, cloneResolution(res)); err != nil {
		logger.Warnf("failed to cache resolution of %s: %v", didID, err)
	}

	return res, nil
}

// Contains reports whether a resolution of didID is cached.
func (r *Registry) Contains(didID string) bool {
	return r.store.Has(didID)
}

// Purge drops every cached resolution.
func (r *Registry) Purge() {
	r.store.Purge()
}

func cloneResolution(res *did.DocResolution) *did.DocResolution {
	if res == nil {
		return nil
	}

	c := &did.DocResolution{Context: slices.Clone(res.Context)}

	if res.DIDDocument != nil {
		c.DIDDocument = cloneDoc(res.DIDDocument)
	}

	return c
}

func cloneDoc(doc *did.Doc) *did.Doc {
	c := &did.Doc{
		Context: slices.Clone(doc.Context),
		ID:      doc.ID,
	}

	for _, vm := range doc.VerificationMethod {
		c.VerificationMethod = append(c.VerificationMethod, cloneVerificationMethod(vm))
	}

	c.Authentication = cloneVerifications(doc.Authentication)
	c.KeyAgreement = cloneVerifications(doc.KeyAgreement)

	for _, svc := range doc.Service {
		c.Service = append(c.Service, did.Service{
			ID:   svc.ID,
			Type: slices.Clone(svc.Type),
			ServiceEndpoint: did.Endpoint{
				URI:         svc.ServiceEndpoint.URI,
				Accept:      slices.Clone(svc.ServiceEndpoint.Accept),
				RoutingKeys: slices.Clone(svc.ServiceEndpoint.RoutingKeys),
			},
		})
	}

	return c
}

func cloneVerifications(refs []did.Verification) []did.Verification {
	var c []did.Verification

	for _, ref := range refs {
		c = append(c, did.Verification{
			VerificationMethod: cloneVerificationMethod(ref.VerificationMethod),
			Relationship:       ref.Relationship,
		})
	}

	return c
}

// the JWK, when present, is shared: it is never modified after construction.
func cloneVerificationMethod(vm did.VerificationMethod) did.VerificationMethod {
	vm.Value = slices.Clone(vm.Value)

	return vm
}
