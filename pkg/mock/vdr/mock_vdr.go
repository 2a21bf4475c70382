/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package vdr provides test doubles for resolvers and registries.
package vdr

import (
	"context"

	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/api"
)

// MockVDR mock implementation of vdr
// to be used only for unit tests.
type MockVDR struct {
	AcceptValue bool
	AcceptFunc  func(method string) bool
	ReadValue   *did.DocResolution
	ReadErr     error
	ReadFunc    func(ctx context.Context, didID string, opts ...api.DIDMethodOption) (*did.DocResolution, error)
	ReadCalls   []string
}

// Read did.
func (m *MockVDR) Read(ctx context.Context, didID string, opts ...api.DIDMethodOption) (*did.DocResolution, error) {
	m.ReadCalls = append(m.ReadCalls, didID)

	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, didID, opts...)
	}

	if m.ReadErr != nil {
		return nil, m.ReadErr
	}

	return m.ReadValue, nil
}

// Accept did.
func (m *MockVDR) Accept(method string) bool {
	if m.AcceptFunc != nil {
		return m.AcceptFunc(method)
	}

	return m.AcceptValue
}

// MockVDRegistry mock implementation of vdr registry
// to be used only for unit tests.
type MockVDRegistry struct {
	ResolveErr   error
	ResolveValue *did.Doc
	ResolveFunc  func(ctx context.Context, didID string, opts ...api.DIDMethodOption) (*did.DocResolution, error)
}

// Resolve did document.
func (m *MockVDRegistry) Resolve(ctx context.Context, didID string,
	opts ...api.DIDMethodOption) (*did.DocResolution, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, didID, opts...)
	}

	if m.ResolveErr != nil {
		return nil, m.ResolveErr
	}

	if m.ResolveValue == nil {
		return nil, api.ErrNotFound
	}

	return &did.DocResolution{Context: []string{did.ResolutionContext}, DIDDocument: m.ResolveValue}, nil
}
