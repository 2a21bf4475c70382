/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prism

import (
	"context"

	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/api"
)

// VDR implements long-form did:prism resolution. It keeps no state.
type VDR struct{}

// New returns a new prism VDR.
func New() *VDR {
	return &VDR{}
}

// Accept did method.
func (v *VDR) Accept(method string) bool {
	return method == DIDMethod
}

// Read resolves a long-form prism DID.
func (v *VDR) Read(_ context.Context, didID string, _ ...api.DIDMethodOption) (*did.DocResolution, error) {
	doc, err := Resolve(didID)
	if err != nil {
		return nil, err
	}

	return &did.DocResolution{Context: []string{did.ResolutionContext}, DIDDocument: doc}, nil
}

// Create builds a long-form prism DID and returns its resolved document.
func (v *VDR) Create(keys []PublicKey, services []Service) (*did.DocResolution, error) {
	id, err := CreateDID(keys, services)
	if err != nil {
		return nil, err
	}

	return v.Read(context.Background(), id.String())
}
