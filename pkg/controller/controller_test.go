/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package controller

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-did-engine/pkg/vdr"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/cache"
)

func TestGetRESTHandlers(t *testing.T) {
	handlers := GetRESTHandlers(vdr.New())
	require.Len(t, handlers, 4)

	handlers = GetRESTHandlers(vdr.New(), WithCacheSize(10))
	require.Len(t, handlers, 4)
}

func TestGetCommandHandlers(t *testing.T) {
	handlers := GetCommandHandlers(vdr.New(), WithCacheSize(10))
	require.Len(t, handlers, 4)
}

func TestWithCache(t *testing.T) {
	registry := vdr.New()

	require.Same(t, registry, withCache(registry, nil))
	require.Same(t, registry, withCache(registry, []Opt{WithCacheSize(0)}))

	cached, ok := withCache(registry, []Opt{WithCacheSize(5)}).(*cache.Registry)
	require.True(t, ok)
	require.NotNil(t, cached)
}
