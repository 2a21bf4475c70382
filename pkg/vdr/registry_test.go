/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vdr

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
	mockvdr "github.com/hyperledger/aries-did-engine/pkg/mock/vdr"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/api"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/peer"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/prism"
)

func resolution(id string) *did.DocResolution {
	return &did.DocResolution{DIDDocument: &did.Doc{ID: id}}
}

func TestRegistry_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("built-in engines", func(t *testing.T) {
		r := New()
		require.Equal(t, []string{peer.DIDMethod, prism.DIDMethod}, r.Methods())

		peerDID, err := peer.CreateDID([]peer.Key{{Role: peer.Authentication, Value: bytes.Repeat([]byte{1}, 32)}}, nil)
		require.NoError(t, err)

		res, err := r.Resolve(ctx, peerDID.String())
		require.NoError(t, err)
		require.Equal(t, peerDID.String(), res.DIDDocument.ID)

		prismDID, err := prism.CreateDID([]prism.PublicKey{
			{ID: "master0", Usage: prism.MasterKey, Curve: prism.Ed25519, Value: bytes.Repeat([]byte{2}, 32)},
		}, nil)
		require.NoError(t, err)

		res, err = r.Resolve(ctx, prismDID.String())
		require.NoError(t, err)
		require.Equal(t, prismDID.String(), res.DIDDocument.ID)
	})

	t.Run("first match wins", func(t *testing.T) {
		override := &mockvdr.MockVDR{ReadValue: resolution("did:peer:override")}
		fallback := &mockvdr.MockVDR{ReadValue: resolution("did:peer:fallback")}

		r := New(WithResolver("peer", fallback), WithPrependedResolver("peer", override))
		require.Equal(t, []string{"peer", "peer", "prism", "peer"}, r.Methods())

		res, err := r.Resolve(ctx, "did:peer:2")
		require.NoError(t, err)
		require.Equal(t, "did:peer:override", res.DIDDocument.ID)
		require.Equal(t, []string{"did:peer:2"}, override.ReadCalls)
		require.Empty(t, fallback.ReadCalls)
	})

	t.Run("appended resolver for another method", func(t *testing.T) {
		web := &mockvdr.MockVDR{ReadFunc: func(_ context.Context, didID string,
			opts ...api.DIDMethodOption) (*did.DocResolution, error) {
			require.Equal(t, "v", api.NewDIDMethodOpts(opts...).Values["k"])

			return resolution(didID), nil
		}}

		r := New(WithResolver("web", web))

		res, err := r.Resolve(ctx, "did:web:example.com", api.WithOption("k", "v"))
		require.NoError(t, err)
		require.Equal(t, "did:web:example.com", res.DIDDocument.ID)
	})

	t.Run("resolver func", func(t *testing.T) {
		r := New(WithResolver("example", api.ResolverFunc(
			func(_ context.Context, didID string, _ ...api.DIDMethodOption) (*did.DocResolution, error) {
				return resolution(didID), nil
			})))

		res, err := r.Resolve(ctx, "did:example:123")
		require.NoError(t, err)
		require.Equal(t, "did:example:123", res.DIDDocument.ID)
	})

	t.Run("registries are independent", func(t *testing.T) {
		a := New(WithResolver("web", &mockvdr.MockVDR{ReadValue: resolution("did:web:a")}))
		b := New()

		_, err := a.Resolve(ctx, "did:web:a")
		require.NoError(t, err)

		_, err = b.Resolve(ctx, "did:web:a")
		require.ErrorIs(t, err, diderrors.ErrUnsupportedMethod)
	})

	t.Run("no resolver", func(t *testing.T) {
		_, err := New().Resolve(ctx, "did:example:123")
		require.ErrorIs(t, err, diderrors.ErrUnsupportedMethod)
		require.ErrorIs(t, err, diderrors.ErrNoResolver)
	})

	t.Run("grammar error", func(t *testing.T) {
		_, err := New().Resolve(ctx, "did:-peer-:123")
		require.ErrorIs(t, err, diderrors.ErrGrammar)
	})

	t.Run("engine error keeps its kind", func(t *testing.T) {
		_, err := New().Resolve(ctx, "did:peer:1zQmZ")
		require.ErrorIs(t, err, diderrors.ErrNotPeerDID)
		require.Contains(t, err.Error(), "did method read failed")
	})

	t.Run("external resolver error", func(t *testing.T) {
		r := New(WithResolver("web", &mockvdr.MockVDR{ReadErr: api.ErrNotFound}))

		_, err := r.Resolve(ctx, "did:web:example.com")
		require.True(t, errors.Is(err, api.ErrNotFound))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		m := &mockvdr.MockVDR{}

		_, err := New(WithPrependedResolver("peer", m)).Resolve(cctx, "did:peer:2")
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, m.ReadCalls)
	})
}
