/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package peer

import (
	"context"

	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/api"
)

// VDR implements the did:peer numalgo 2 method. It keeps no state.
type VDR struct{}

// New returns a new peer VDR.
func New() *VDR {
	return &VDR{}
}

// Accept did method.
func (v *VDR) Accept(method string) bool {
	return method == DIDMethod
}

// Read implements didresolver.DidMethod.Read interface (https://w3c-ccg.github.io/did-resolution/#resolving-input)
func (v *VDR) Read(_ context.Context, didID string, _ ...api.DIDMethodOption) (*did.DocResolution, error) {
	doc, err := Resolve(didID)
	if err != nil {
		return nil, err
	}

	return &did.DocResolution{Context: []string{did.ResolutionContext}, DIDDocument: doc}, nil
}

// Create builds a peer DID from keys and services and returns its resolved document.
func (v *VDR) Create(keys []Key, services []did.Service) (*did.DocResolution, error) {
	id, err := CreateDID(keys, services)
	if err != nil {
		return nil, err
	}

	return v.Read(context.Background(), id.String())
}
