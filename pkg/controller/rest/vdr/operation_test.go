/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vdr

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-did-engine/pkg/controller/command/vdr"
	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
	mockvdr "github.com/hyperledger/aries-did-engine/pkg/mock/vdr"
	vdrregistry "github.com/hyperledger/aries-did-engine/pkg/vdr"
	vdrapi "github.com/hyperledger/aries-did-engine/pkg/vdr/api"
)

//nolint:lll
const goldenPeerDID = "did:peer:2.Ez6LSoHkfN1Y4nK9RCjx7vopWsLrMGNFNgTNZgoCNQrTzmb1n.Vz6MknRZmapV7uYZQuZez9n9N3tQotjRN18UGS68Vcfo6gR4h.SeyJyIjpbImRpZDpleGFtcGxlOnNvbWVtZWRpYXRvciNzb21la2V5Il0sInMiOiJodHRwczovL2V4YW1wbGUuY29tL2VuZHBvaW50IiwiYSI6W10sInQiOiJkbSJ9"

func TestOperation_GetAPIHandlers(t *testing.T) {
	svc := New(vdrregistry.New())
	require.NotNil(t, svc)

	handlers := svc.GetRESTHandlers()
	require.Len(t, handlers, 4)
}

func TestResolveDID(t *testing.T) {
	t.Run("test resolve did - success", func(t *testing.T) {
		op := New(vdrregistry.New())

		buf, code := serve(t, op, http.MethodGet, "/1.0/identifiers/"+goldenPeerDID, nil)
		require.Equal(t, http.StatusOK, code)

		res, err := did.ParseDocumentResolution(buf.Bytes())
		require.NoError(t, err)
		require.Equal(t, goldenPeerDID, res.DIDDocument.ID)
		require.Equal(t, []string{did.ResolutionContext}, res.Context)
	})

	t.Run("test resolve did - status codes", func(t *testing.T) {
		tests := []struct {
			name     string
			registry vdrapi.Registry
			id       string
			status   int
		}{
			{"grammar", vdrregistry.New(), "did:PEER:2", http.StatusBadRequest},
			{"unsupported method", vdrregistry.New(), "did:example:123", http.StatusNotFound},
			{"bad encoding", vdrregistry.New(), "did:peer:2.Vz6Mk", http.StatusUnprocessableEntity},
			{"not found", &mockvdr.MockVDRegistry{}, "did:example:123", http.StatusNotFound},
			{
				"resolver failure",
				&mockvdr.MockVDRegistry{ResolveErr: errors.New("timeout")},
				"did:example:123",
				http.StatusInternalServerError,
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				buf, code := serve(t, New(tc.registry), http.MethodGet, "/1.0/identifiers/"+tc.id, nil)
				require.Equal(t, tc.status, code)

				var body struct {
					Code    int    `json:"code"`
					Message string `json:"message"`
				}

				require.NoError(t, json.Unmarshal(buf.Bytes(), &body))
				require.Equal(t, int(vdr.ResolveDIDErrorCode), body.Code)
				require.NotEmpty(t, body.Message)
			})
		}
	})
}

func TestCreatePeerDID(t *testing.T) {
	op := New(vdrregistry.New())

	t.Run("test create peer did - success", func(t *testing.T) {
		priv := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{7}, ed25519.SeedSize))

		req, err := json.Marshal(vdr.CreatePeerDIDArgs{
			Keys: []vdr.PeerKey{{
				Role:            "authentication",
				PublicKeyBase58: base58.Encode(priv.Public().(ed25519.PublicKey)),
			}},
		})
		require.NoError(t, err)

		buf, code := serve(t, op, http.MethodPost, CreatePeerDIDPath, bytes.NewBuffer(req))
		require.Equal(t, http.StatusOK, code)

		var res documentRes
		require.NoError(t, json.Unmarshal(buf.Bytes(), &res))

		doc, err := did.ParseDocument(res.DID)
		require.NoError(t, err)

		// the created DID resolves through the identifiers endpoint
		_, code = serve(t, op, http.MethodGet, "/1.0/identifiers/"+doc.ID, nil)
		require.Equal(t, http.StatusOK, code)
	})

	t.Run("test create peer did - error", func(t *testing.T) {
		_, code := serve(t, op, http.MethodPost, CreatePeerDIDPath, bytes.NewBufferString("{}"))
		require.Equal(t, http.StatusBadRequest, code)
	})
}

func TestCreatePrismDID(t *testing.T) {
	op := New(vdrregistry.New())

	t.Run("test create prism did - success", func(t *testing.T) {
		priv := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{8}, ed25519.SeedSize))

		req, err := json.Marshal(vdr.CreatePrismDIDArgs{
			Keys: []vdr.PrismKey{{
				ID:              "master0",
				Usage:           "MASTER_KEY",
				Curve:           "Ed25519",
				PublicKeyBase58: base58.Encode(priv.Public().(ed25519.PublicKey)),
			}},
		})
		require.NoError(t, err)

		buf, code := serve(t, op, http.MethodPost, CreatePrismDIDPath, bytes.NewBuffer(req))
		require.Equal(t, http.StatusOK, code)

		var res documentRes
		require.NoError(t, json.Unmarshal(buf.Bytes(), &res))

		doc, err := did.ParseDocument(res.DID)
		require.NoError(t, err)
		require.Len(t, doc.Authentication, 1)
	})

	t.Run("test create prism did - error", func(t *testing.T) {
		_, code := serve(t, op, http.MethodPost, CreatePrismDIDPath, bytes.NewBufferString("["))
		require.Equal(t, http.StatusBadRequest, code)
	})
}

func TestParseDIDURL(t *testing.T) {
	op := New(vdrregistry.New())

	t.Run("test parse did url - success", func(t *testing.T) {
		path := ParseDIDURLPath + "?url=" + url.QueryEscape("did:example:123/path?versionId=1#keys-1")

		buf, code := serve(t, op, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, code)

		var res vdr.DIDURLResult
		require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
		require.Equal(t, "did:example:123", res.DID)
		require.Equal(t, []string{"path"}, res.Path)
		require.Equal(t, "1", res.Query["versionId"])
		require.Equal(t, "keys-1", res.Fragment)
	})

	t.Run("test parse did url - missing parameter", func(t *testing.T) {
		_, code := serve(t, op, http.MethodGet, ParseDIDURLPath, nil)
		require.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("test parse did url - invalid", func(t *testing.T) {
		_, code := serve(t, op, http.MethodGet, ParseDIDURLPath+"?url=not-a-did", nil)
		require.Equal(t, http.StatusBadRequest, code)
	})
}

// serve routes a request through a router holding every handler of op.
func serve(t *testing.T, op *Operation, method, path string, body io.Reader) (*bytes.Buffer, int) {
	t.Helper()

	router := mux.NewRouter()

	for _, h := range op.GetRESTHandlers() {
		router.HandleFunc(h.Path(), h.Handle()).Methods(h.Method())
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr.Body, rr.Code
}
