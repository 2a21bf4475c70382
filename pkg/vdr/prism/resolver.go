/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prism

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/minio/sha256-simd"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/fingerprint"
)

// Resolve decodes a long-form prism DID into its DID document.
// Short-form DIDs need the ledger and are not resolvable here.
func Resolve(didID string) (*did.Doc, error) {
	parsed, err := did.Parse(didID)
	if err != nil {
		return nil, err
	}

	if parsed.Method != DIDMethod {
		return nil, diderrors.New(diderrors.UnsupportedMethod, diderrors.ErrNoResolver, "method %q", parsed.Method)
	}

	parts := strings.Split(parsed.MethodSpecificID, longFormSeparator)

	switch len(parts) {
	case 1:
		return nil, diderrors.New(diderrors.UnsupportedMethod, diderrors.ErrShortFormUnresolvable, "%s", didID)
	case 2: //nolint:gomnd
	default:
		return nil, diderrors.New(diderrors.Grammar, diderrors.ErrInvalidMethodID,
			"long form prism did has %d parts", len(parts))
	}

	encoded, err := base64.RawURLEncoding.Strict().DecodeString(parts[1])
	if err != nil {
		return nil, diderrors.Wrap(err, diderrors.Integrity, diderrors.ErrInitialStateChanged,
			"encoded state is not canonical base64url")
	}

	// the state hash is the lowercase hex digest; any other spelling is rejected
	if actual := sha256.Sum256(encoded); parts[0] != hex.EncodeToString(actual[:]) {
		return nil, diderrors.New(diderrors.Integrity, diderrors.ErrInitialStateChanged,
			"expected state hash %x, got %q", actual, parts[0])
	}

	op, err := unmarshalOperation(encoded)
	if err != nil {
		return nil, err
	}

	return assemble(didID, op)
}

func assemble(didID string, op *createOperation) (*did.Doc, error) {
	var (
		vms          []did.VerificationMethod
		auth         []string
		keyAgreement []string
		services     []did.Service
	)

	for i := range op.PublicKeys {
		pk := &op.PublicKeys[i]

		vmType, codec, err := methodType(pk)
		if err != nil {
			return nil, err
		}

		tagged, err := fingerprint.Tag(codec, pk.Value)
		if err != nil {
			return nil, diderrors.Wrap(err, diderrors.Key, diderrors.ErrPublicKeyDecodeError, "key %q", pk.ID)
		}

		id := didID + "#" + pk.ID

		vms = append(vms, *did.NewVerificationMethodFromBytes(id, vmType, didID, tagged))

		// only the first key authenticates, whatever its declared usage.
		if i == 0 {
			auth = append(auth, id)
		}

		if pk.Usage == KeyAgreementKey {
			keyAgreement = append(keyAgreement, id)
		}
	}

	for _, svc := range op.Services {
		services = append(services, did.Service{
			ID:              didID + "#" + svc.ID,
			Type:            []string{svc.Type},
			ServiceEndpoint: did.Endpoint{URI: svc.Endpoint},
		})
	}

	logger.Debugf("resolved prism did: %d keys, %d services", len(vms), len(services))

	return did.NewDoc(didID, vms,
		did.WithAuthentication(auth...),
		did.WithKeyAgreement(keyAgreement...),
		did.WithService(services...))
}

func methodType(pk *PublicKey) (string, fingerprint.Codec, error) {
	switch pk.Curve {
	case Ed25519:
		return did.Ed25519VerificationKey2020, fingerprint.ED25519PubKeyMultiCodec, nil
	case X25519:
		return did.X25519KeyAgreementKey2020, fingerprint.X25519PubKeyMultiCodec, nil
	case Secp256k1:
		return did.EcdsaSecp256k1VerificationKey2019, fingerprint.Secp256k1PubKeyMultiCodec, nil
	default:
		return "", 0, diderrors.New(diderrors.Key, diderrors.ErrPublicKeyDecodeError,
			"key %q: unsupported curve %q", pk.ID, pk.Curve)
	}
}
