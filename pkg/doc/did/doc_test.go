/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
	"github.com/hyperledger/aries-did-engine/pkg/doc/jose/jwk"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/fingerprint"
)

const testDID = "did:example:123456789abcdefghi"

func testMethods(t *testing.T) []VerificationMethod {
	t.Helper()

	edKey := bytes.Repeat([]byte{7}, 32)

	tagged, err := fingerprint.Tag(fingerprint.ED25519PubKeyMultiCodec, edKey)
	require.NoError(t, err)

	xJWK, err := jwk.ToJWK(bytes.Repeat([]byte{9}, 32), jwk.X25519Crv)
	require.NoError(t, err)

	agreement, err := NewVerificationMethodFromJWK(testDID+"#key-2", JSONWebKey2020, testDID, xJWK)
	require.NoError(t, err)

	return []VerificationMethod{
		*NewVerificationMethodFromBytes(testDID+"#key-1", Ed25519VerificationKey2020, testDID, tagged),
		*agreement,
	}
}

func TestNewDoc(t *testing.T) {
	t.Run("assembles relationships", func(t *testing.T) {
		svc := Service{
			ID:              testDID + "#didcomm",
			Type:            []string{DIDCommMessaging},
			ServiceEndpoint: Endpoint{URI: "https://example.com/endpoint"},
		}

		doc, err := NewDoc(testDID, testMethods(t),
			WithAuthentication(testDID+"#key-1"),
			WithKeyAgreement("#key-2"),
			WithService(svc))
		require.NoError(t, err)
		require.Equal(t, []string{ContextV1}, doc.Context)
		require.Equal(t, testDID, doc.ID)
		require.Len(t, doc.VerificationMethod, 2)

		require.Len(t, doc.Authentication, 1)
		require.Equal(t, Authentication, doc.Authentication[0].Relationship)
		require.Equal(t, testDID+"#key-1", doc.Authentication[0].VerificationMethod.ID)

		require.Len(t, doc.KeyAgreement, 1)
		require.Equal(t, KeyAgreement, doc.KeyAgreement[0].Relationship)
		require.Equal(t, testDID+"#key-2", doc.KeyAgreement[0].VerificationMethod.ID)

		require.Equal(t, []Service{svc}, doc.Service)
	})

	t.Run("does not alias inputs", func(t *testing.T) {
		vms := testMethods(t)

		doc, err := NewDoc(testDID, vms)
		require.NoError(t, err)

		vms[0].ID = "changed"
		require.Equal(t, testDID+"#key-1", doc.VerificationMethod[0].ID)
	})

	t.Run("dangling reference", func(t *testing.T) {
		_, err := NewDoc(testDID, testMethods(t), WithAuthentication("#key-3"))
		require.ErrorIs(t, err, diderrors.ErrIntegrity)
		require.ErrorIs(t, err, diderrors.ErrDanglingReference)

		_, err = NewDoc(testDID, nil, WithKeyAgreement(testDID+"#key-1"))
		require.ErrorIs(t, err, diderrors.ErrDanglingReference)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := NewDoc("example:123", nil)
		require.ErrorIs(t, err, diderrors.ErrGrammar)
	})
}

func TestVerificationMethod(t *testing.T) {
	doc, err := NewDoc(testDID, testMethods(t))
	require.NoError(t, err)

	t.Run("by fragment", func(t *testing.T) {
		vm, ok := doc.VerificationMethodByFragment("key-1")
		require.True(t, ok)
		require.Equal(t, Ed25519VerificationKey2020, vm.Type)
		require.Nil(t, vm.JSONWebKey())

		vm, ok = doc.VerificationMethodByFragment("#key-2")
		require.True(t, ok)
		require.NotNil(t, vm.JSONWebKey())

		_, ok = doc.VerificationMethodByFragment("key-9")
		require.False(t, ok)
	})

	t.Run("public key bytes", func(t *testing.T) {
		raw, err := doc.VerificationMethod[0].PublicKeyBytes()
		require.NoError(t, err)
		require.Equal(t, bytes.Repeat([]byte{7}, 32), raw)

		raw, err = doc.VerificationMethod[1].PublicKeyBytes()
		require.NoError(t, err)
		require.Equal(t, bytes.Repeat([]byte{9}, 32), raw)
	})

	t.Run("fragment of id without fragment", func(t *testing.T) {
		vm := NewVerificationMethodFromBytes(testDID, "", testDID, nil)
		require.Empty(t, vm.Fragment())
	})
}
