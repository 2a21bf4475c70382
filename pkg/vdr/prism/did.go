/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package prism implements long-form did:prism identifiers: the DID embeds its create DID operation and the
// SHA-256 of that operation, so it resolves offline and self-certifies its initial state.
package prism

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/minio/sha256-simd"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
	"github.com/hyperledger/aries-did-engine/pkg/common/log"
	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
)

const (
	// DIDMethod is the prism did method name.
	DIDMethod = "prism"

	longFormSeparator = ":"
)

var logger = log.New("did-engine/prism")

// CreateDID builds the long-form prism DID of a create DID operation holding keys and services.
func CreateDID(keys []PublicKey, services []Service) (*did.DID, error) {
	op := &createOperation{PublicKeys: keys, Services: services}

	encoded, err := op.marshal()
	if err != nil {
		return nil, fmt.Errorf("create prism did: %w", err)
	}

	stateHash := sha256.Sum256(encoded)

	id := &did.DID{
		Scheme: "did",
		Method: DIDMethod,
		MethodSpecificID: hex.EncodeToString(stateHash[:]) + longFormSeparator +
			base64.RawURLEncoding.EncodeToString(encoded),
	}

	logger.Debugf("created prism did with %d keys and %d services, state hash %x", len(keys), len(services), stateHash)

	return id, nil
}

// ShortForm returns the canonical short form did:prism:<state hash> of a long-form DID.
func ShortForm(longForm *did.DID) (*did.DID, error) {
	if longForm.Method != DIDMethod {
		return nil, diderrors.New(diderrors.UnsupportedMethod, diderrors.ErrNoResolver, "method %q", longForm.Method)
	}

	stateHash, _, _ := strings.Cut(longForm.MethodSpecificID, longFormSeparator)

	return &did.DID{Scheme: "did", Method: DIDMethod, MethodSpecificID: stateHash}, nil
}
