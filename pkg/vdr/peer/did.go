/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package peer implements the did:peer numalgo 2 method: the DID encodes its ordered key list and services
// directly, so it can be resolved offline.
// Reference: https://identity.foundation/peer-did-method-spec/#method-2-multiple-inception-key-without-doc
package peer

import (
	"fmt"
	"strings"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
	"github.com/hyperledger/aries-did-engine/pkg/common/log"
	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
	"github.com/hyperledger/aries-did-engine/pkg/doc/jose/jwk"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/fingerprint"
)

const (
	// DIDMethod is the peer did method name: https://identity.foundation/peer-did-method-spec/#method-name.
	DIDMethod = "peer"
	// numAlgo is the algorithm for choosing a numeric basis.
	numAlgo = "2"

	peerPrefix = "did:" + DIDMethod + ":"
	separator  = "."

	agreementPrefix      = 'E'
	authenticationPrefix = 'V'
	servicePrefix        = 'S'
)

var logger = log.New("did-engine/peer")

// Role is the purpose a key is published for in a numalgo 2 DID.
type Role int

const (
	// KeyAgreement keys are X25519 keys, encoded with purpose code 'E'.
	KeyAgreement Role = iota + 1
	// Authentication keys are Ed25519 keys, encoded with purpose code 'V'.
	Authentication
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case KeyAgreement:
		return "agreement"
	case Authentication:
		return "authentication"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

func (r Role) spec() (byte, string, fingerprint.Codec, error) {
	switch r {
	case KeyAgreement:
		return agreementPrefix, jwk.X25519Crv, fingerprint.X25519PubKeyMultiCodec, nil
	case Authentication:
		return authenticationPrefix, jwk.Ed25519Crv, fingerprint.ED25519PubKeyMultiCodec, nil
	default:
		return 0, "", 0, diderrors.New(diderrors.Key, diderrors.ErrCurveMismatch, "unknown key role %s", r)
	}
}

// Key is a raw public key together with the role it is published for.
type Key struct {
	Role  Role
	Value []byte
}

// CreateDID builds a numalgo 2 peer DID.
// Key agreement keys come first, then authentication keys, each group in input order.
func CreateDID(keys []Key, services []did.Service) (*did.DID, error) {
	var agreements, authentications []string

	for i, key := range keys {
		entry, err := encodeKey(key)
		if err != nil {
			return nil, fmt.Errorf("create peer did: key %d: %w", i, err)
		}

		if key.Role == KeyAgreement {
			agreements = append(agreements, entry)
		} else {
			authentications = append(authentications, entry)
		}
	}

	segments := append([]string{numAlgo}, agreements...)
	segments = append(segments, authentications...)

	if len(services) > 0 {
		encoded, err := encodeServices(services)
		if err != nil {
			return nil, fmt.Errorf("create peer did: %w", err)
		}

		segments = append(segments, string(servicePrefix)+encoded)
	}

	id := &did.DID{Scheme: "did", Method: DIDMethod, MethodSpecificID: strings.Join(segments, separator)}

	logger.Debugf("created peer did with %d keys and %d services: %s", len(keys), len(services), id)

	return id, nil
}

// ComputeEcnumbasis returns the multibase encoding of key as it appears in the peer DID didID,
// without its purpose code. "<did>#<ecnumbasis>" identifies the key in the resolved document.
func ComputeEcnumbasis(didID string, key Key) (string, error) {
	entry, err := encodeKey(key)
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(didID, peerPrefix) {
		return "", diderrors.New(diderrors.Encoding, diderrors.ErrNotPeerDID, "%q", didID)
	}

	for _, segment := range strings.Split(strings.TrimPrefix(didID, peerPrefix), separator) {
		if segment == entry {
			return entry[1:], nil
		}
	}

	return "", diderrors.New(diderrors.Key, diderrors.ErrKeyNotFound, "%s key is not part of %s", key.Role, didID)
}

// encodeKey renders one key as purpose code + multibase(multicodec(key)).
func encodeKey(key Key) (string, error) {
	prefix, crv, codec, err := key.Role.spec()
	if err != nil {
		return "", err
	}

	j, err := jwk.ToJWK(key.Value, crv)
	if err != nil {
		return "", err
	}

	raw, err := j.PublicKeyBytes()
	if err != nil {
		return "", err
	}

	fp, err := fingerprint.KeyFingerprint(codec, raw)
	if err != nil {
		return "", err
	}

	return string(prefix) + fp, nil
}
