/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package peer

import (
	"strings"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
	"github.com/hyperledger/aries-did-engine/pkg/doc/jose/jwk"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/fingerprint"
)

// jsonWebKey2020Context defines the JsonWebKey2020 verification method type.
const jsonWebKey2020Context = "https://w3id.org/security/suites/jws-2020/v1"

// Resolve decodes a numalgo 2 peer DID into its DID document.
func Resolve(didID string) (*did.Doc, error) {
	parsed, err := did.Parse(didID)
	if err != nil {
		return nil, err
	}

	if parsed.Method != DIDMethod {
		return nil, diderrors.New(diderrors.Encoding, diderrors.ErrNotPeerDID, "method %q", parsed.Method)
	}

	methodID := parsed.MethodSpecificID
	if !strings.HasPrefix(methodID, numAlgo) || (len(methodID) > 1 && methodID[1] != separator[0]) {
		return nil, diderrors.New(diderrors.Encoding, diderrors.ErrNotPeerDID, "numalgo of %q", methodID)
	}

	var (
		vms                []did.VerificationMethod
		auth, keyAgreement []string
		services           []did.Service
	)

	for _, segment := range strings.Split(methodID, separator)[1:] {
		if segment == "" {
			return nil, diderrors.New(diderrors.Encoding, diderrors.ErrInvalidKeyEncoding, "empty segment in %q", didID)
		}

		switch segment[0] {
		case authenticationPrefix, agreementPrefix:
			vm, err := decodeKey(didID, segment)
			if err != nil {
				return nil, err
			}

			vms = append(vms, *vm)

			if segment[0] == authenticationPrefix {
				auth = append(auth, vm.ID)
			} else {
				keyAgreement = append(keyAgreement, vm.ID)
			}
		case servicePrefix:
			decoded, err := decodeServices(didID, segment[1:], len(services))
			if err != nil {
				return nil, err
			}

			services = append(services, decoded...)
		default:
			return nil, diderrors.New(diderrors.Encoding, diderrors.ErrInvalidKeyEncoding,
				"unsupported purpose code %q", segment[0])
		}
	}

	logger.Debugf("resolved peer did %s: %d keys, %d services", didID, len(vms), len(services))

	return did.NewDoc(didID, vms,
		did.WithContext(did.ContextV1, jsonWebKey2020Context),
		did.WithAuthentication(auth...),
		did.WithKeyAgreement(keyAgreement...),
		did.WithService(services...))
}

func decodeKey(didID, segment string) (*did.VerificationMethod, error) {
	expected, crv := fingerprint.ED25519PubKeyMultiCodec, jwk.Ed25519Crv
	if segment[0] == agreementPrefix {
		expected, crv = fingerprint.X25519PubKeyMultiCodec, jwk.X25519Crv
	}

	ecnumbasis := segment[1:]

	tagged, err := fingerprint.FromMultibase(ecnumbasis)
	if err != nil {
		return nil, invalidKey(err, segment)
	}

	codec, raw, err := fingerprint.Untag(tagged)
	if err != nil {
		return nil, invalidKey(err, segment)
	}

	if codec != expected {
		return nil, invalidKey(diderrors.New(diderrors.Key, diderrors.ErrCurveMismatch,
			"expected %s, got %s", expected, codec), segment)
	}

	j, err := jwk.ToJWK(raw, crv)
	if err != nil {
		return nil, invalidKey(err, segment)
	}

	vm, err := did.NewVerificationMethodFromJWK(didID+"#"+ecnumbasis, did.JSONWebKey2020, didID, j)
	if err != nil {
		return nil, invalidKey(err, segment)
	}

	return vm, nil
}

func invalidKey(err error, segment string) error {
	return diderrors.Wrap(err, diderrors.Encoding, diderrors.ErrInvalidKeyEncoding, "segment %q", segment)
}
