/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prism

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/minio/sha256-simd"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
)

type testKeys struct {
	master    []byte
	agreement []byte
	issuing   *btcec.PublicKey
}

func newTestKeys(t *testing.T) *testKeys {
	t.Helper()

	master, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	agreement := make([]byte, 32)
	_, err = rand.Read(agreement)
	require.NoError(t, err)

	priv, err := btcec.NewPrivateKey(btcec.S256())
	require.NoError(t, err)

	return &testKeys{master: master, agreement: agreement, issuing: priv.PubKey()}
}

func (k *testKeys) publicKeys() []PublicKey {
	return []PublicKey{
		{ID: "master0", Usage: MasterKey, Curve: Ed25519, Value: k.master},
		{ID: "agreement0", Usage: KeyAgreementKey, Curve: X25519, Value: k.agreement},
		{ID: "issuing0", Usage: AuthenticationKey, Curve: Secp256k1, Value: k.issuing.SerializeCompressed()},
	}
}

func testServices() []Service {
	return []Service{{ID: "linked-domain", Type: "LinkedDomains", Endpoint: "https://example.com"}}
}

func TestCreateDID(t *testing.T) {
	keys := newTestKeys(t)

	id, err := CreateDID(keys.publicKeys(), testServices())
	require.NoError(t, err)
	require.Equal(t, DIDMethod, id.Method)

	stateHash, encoded, ok := strings.Cut(id.MethodSpecificID, ":")
	require.True(t, ok)

	op, err := base64.RawURLEncoding.DecodeString(encoded)
	require.NoError(t, err)

	sum := sha256.Sum256(op)
	require.Equal(t, hex.EncodeToString(sum[:]), stateHash)

	again, err := CreateDID(keys.publicKeys(), testServices())
	require.NoError(t, err)
	require.Equal(t, id.String(), again.String())

	short, err := ShortForm(id)
	require.NoError(t, err)
	require.Equal(t, "did:prism:"+stateHash, short.String())

	_, err = ShortForm(&did.DID{Scheme: "did", Method: "peer", MethodSpecificID: "2"})
	require.ErrorIs(t, err, diderrors.ErrUnsupportedMethod)

	_, err = CreateDID([]PublicKey{{ID: "k", Curve: Ed25519, Value: []byte{1}}}, nil)
	require.ErrorIs(t, err, diderrors.ErrInvalidLength)
}

func TestResolve(t *testing.T) {
	keys := newTestKeys(t)

	id, err := CreateDID(keys.publicKeys(), testServices())
	require.NoError(t, err)

	t.Run("long form", func(t *testing.T) {
		doc, err := Resolve(id.String())
		require.NoError(t, err)
		require.Equal(t, id.String(), doc.ID)
		require.Len(t, doc.VerificationMethod, 3)

		expected := []struct {
			fragment string
			vmType   string
			raw      []byte
		}{
			{fragment: "master0", vmType: did.Ed25519VerificationKey2020, raw: keys.master},
			{fragment: "agreement0", vmType: did.X25519KeyAgreementKey2020, raw: keys.agreement},
			{fragment: "issuing0", vmType: did.EcdsaSecp256k1VerificationKey2019, raw: keys.issuing.SerializeCompressed()},
		}

		for i, e := range expected {
			vm := doc.VerificationMethod[i]
			require.Equal(t, id.String()+"#"+e.fragment, vm.ID)
			require.Equal(t, e.vmType, vm.Type)
			require.Equal(t, id.String(), vm.Controller)
			require.Nil(t, vm.JSONWebKey())

			raw, err := vm.PublicKeyBytes()
			require.NoError(t, err)
			require.Equal(t, e.raw, raw)
		}

		require.Equal(t, []did.Service{{
			ID:              id.String() + "#linked-domain",
			Type:            []string{"LinkedDomains"},
			ServiceEndpoint: did.Endpoint{URI: "https://example.com"},
		}}, doc.Service)
	})

	t.Run("only the first key authenticates", func(t *testing.T) {
		doc, err := Resolve(id.String())
		require.NoError(t, err)

		require.Len(t, doc.Authentication, 1)
		require.Equal(t, id.String()+"#master0", doc.Authentication[0].VerificationMethod.ID)

		require.Len(t, doc.KeyAgreement, 1)
		require.Equal(t, id.String()+"#agreement0", doc.KeyAgreement[0].VerificationMethod.ID)
	})

	t.Run("any byte flip breaks integrity", func(t *testing.T) {
		stateHash, encoded, _ := strings.Cut(id.MethodSpecificID, ":")

		op, err := base64.RawURLEncoding.DecodeString(encoded)
		require.NoError(t, err)

		for i := range op {
			tampered := append([]byte(nil), op...)
			tampered[i] ^= 0x01

			_, err := Resolve("did:prism:" + stateHash + ":" + base64.RawURLEncoding.EncodeToString(tampered))
			require.ErrorIs(t, err, diderrors.ErrIntegrity, "byte %d", i)
			require.ErrorIs(t, err, diderrors.ErrInitialStateChanged, "byte %d", i)
		}
	})

	t.Run("any character change breaks integrity", func(t *testing.T) {
		master, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		single, err := CreateDID([]PublicKey{{ID: "master0", Usage: MasterKey, Curve: Ed25519, Value: master}}, nil)
		require.NoError(t, err)

		didID := single.String()
		start := len("did:prism:")
		replacements := "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_."

		for i := start; i < len(didID); i++ {
			if didID[i] == ':' {
				continue
			}

			for _, c := range replacements {
				if byte(c) == didID[i] {
					continue
				}

				tampered := didID[:i] + string(c) + didID[i+1:]

				_, err := Resolve(tampered)
				require.ErrorIs(t, err, diderrors.ErrIntegrity, "position %d to %q", i, c)
				require.ErrorIs(t, err, diderrors.ErrInitialStateChanged, "position %d to %q", i, c)
			}
		}
	})

	t.Run("short form", func(t *testing.T) {
		short, err := ShortForm(id)
		require.NoError(t, err)

		_, err = Resolve(short.String())
		require.ErrorIs(t, err, diderrors.ErrUnsupportedMethod)
		require.ErrorIs(t, err, diderrors.ErrShortFormUnresolvable)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Resolve("did:prism:abc:def:ghi")
		require.ErrorIs(t, err, diderrors.ErrGrammar)

		_, err = Resolve("did:prism:zz:AAAA")
		require.ErrorIs(t, err, diderrors.ErrInitialStateChanged)

		_, err = Resolve("did:peer:2")
		require.ErrorIs(t, err, diderrors.ErrUnsupportedMethod)

		_, err = Resolve("prism:abc")
		require.ErrorIs(t, err, diderrors.ErrGrammar)
	})

	t.Run("bad base64 operation", func(t *testing.T) {
		sum := sha256.Sum256(nil)

		_, err := Resolve("did:prism:" + hex.EncodeToString(sum[:]) + ":A")
		require.ErrorIs(t, err, diderrors.ErrIntegrity)
		require.ErrorIs(t, err, diderrors.ErrInitialStateChanged)
	})

	t.Run("upper case state hash", func(t *testing.T) {
		stateHash, encoded, _ := strings.Cut(id.MethodSpecificID, ":")

		_, err := Resolve("did:prism:" + strings.ToUpper(stateHash) + ":" + encoded)
		require.ErrorIs(t, err, diderrors.ErrInitialStateChanged)
	})

	t.Run("self-certified non create operation", func(t *testing.T) {
		update := appendMessage(nil, 2, appendString(nil, 1, "x"))
		sum := sha256.Sum256(update)

		_, err := Resolve("did:prism:" + hex.EncodeToString(sum[:]) + ":" + base64.RawURLEncoding.EncodeToString(update))
		require.ErrorIs(t, err, diderrors.ErrUnsupportedOperationType)
	})
}

func TestVDR(t *testing.T) {
	v := New()
	require.True(t, v.Accept("prism"))
	require.False(t, v.Accept("peer"))

	keys := newTestKeys(t)

	res, err := v.Create(keys.publicKeys(), nil)
	require.NoError(t, err)
	require.Equal(t, []string{did.ResolutionContext}, res.Context)

	again, err := v.Read(context.Background(), res.DIDDocument.ID)
	require.NoError(t, err)
	require.Equal(t, res, again)

	_, err = v.Create([]PublicKey{{ID: "k", Curve: "P-256"}}, nil)
	require.ErrorIs(t, err, diderrors.ErrPublicKeyDecodeError)
}
