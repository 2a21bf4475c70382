/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package controller assembles the command and REST handlers of the DID engine.
package controller

import (
	"github.com/hyperledger/aries-did-engine/pkg/controller/command"
	vdrcmd "github.com/hyperledger/aries-did-engine/pkg/controller/command/vdr"
	"github.com/hyperledger/aries-did-engine/pkg/controller/rest"
	vdrrest "github.com/hyperledger/aries-did-engine/pkg/controller/rest/vdr"
	vdrapi "github.com/hyperledger/aries-did-engine/pkg/vdr/api"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/cache"
)

type allOpts struct {
	cacheSize int
}

// Opt represents a controller option.
type Opt func(opts *allOpts)

// WithCacheSize keeps up to size resolutions in an LRU cache in front of the registry.
// Zero, the default, disables caching.
func WithCacheSize(size int) Opt {
	return func(opts *allOpts) {
		opts.cacheSize = size
	}
}

// GetRESTHandlers returns all REST handlers provided by controller.
func GetRESTHandlers(registry vdrapi.Registry, opts ...Opt) []rest.Handler {
	vdrOp := vdrrest.New(withCache(registry, opts))

	var allHandlers []rest.Handler
	allHandlers = append(allHandlers, vdrOp.GetRESTHandlers()...)

	return allHandlers
}

// GetCommandHandlers returns all command handlers provided by controller.
func GetCommandHandlers(registry vdrapi.Registry, opts ...Opt) []command.Handler {
	vcmd := vdrcmd.New(withCache(registry, opts))

	var allHandlers []command.Handler
	allHandlers = append(allHandlers, vcmd.GetHandlers()...)

	return allHandlers
}

func withCache(registry vdrapi.Registry, opts []Opt) vdrapi.Registry {
	o := &allOpts{}
	// Apply options
	for _, opt := range opts {
		opt(o)
	}

	if o.cacheSize <= 0 {
		return registry
	}

	return cache.New(registry, cache.WithSize(o.cacheSize))
}
