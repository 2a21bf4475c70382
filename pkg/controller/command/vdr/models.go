/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vdr

import "encoding/json"

// IDArg model
//
// This is used for querying/removing by ID from input json.
type IDArg struct {
	// ID
	ID string `json:"id"`
}

// Document model
//
// This is used for returning a created DID document.
type Document struct {
	DID json.RawMessage `json:"did,omitempty"`
}

// PeerKey is a key to publish in a peer DID. Role is "authentication" or "agreement".
type PeerKey struct {
	Role            string `json:"role"`
	PublicKeyBase58 string `json:"publicKeyBase58"`
}

// PeerService is a DIDComm service to publish in a peer DID.
type PeerService struct {
	Type            string   `json:"type"`
	ServiceEndpoint string   `json:"serviceEndpoint"`
	RoutingKeys     []string `json:"routingKeys,omitempty"`
	Accept          []string `json:"accept,omitempty"`
}

// CreatePeerDIDArgs model
//
// This is used for creating a numalgo 2 peer DID.
type CreatePeerDIDArgs struct {
	Keys     []PeerKey     `json:"keys"`
	Services []PeerService `json:"services,omitempty"`
}

// PrismKey is a key to publish in a long-form prism DID.
// Usage is a protocol key usage name such as "MASTER_KEY", Curve one of "secp256k1", "Ed25519" or "X25519".
type PrismKey struct {
	ID              string `json:"id"`
	Usage           string `json:"usage"`
	Curve           string `json:"curve"`
	PublicKeyBase58 string `json:"publicKeyBase58"`
}

// PrismService is a service to publish in a long-form prism DID.
type PrismService struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	ServiceEndpoint string `json:"serviceEndpoint"`
}

// CreatePrismDIDArgs model
//
// This is used for creating a long-form prism DID.
type CreatePrismDIDArgs struct {
	Keys     []PrismKey     `json:"keys"`
	Services []PrismService `json:"services,omitempty"`
}

// DIDURLResult model
//
// This is used for returning the components of a parsed DID URL.
type DIDURLResult struct {
	DID              string            `json:"did"`
	Method           string            `json:"method"`
	MethodSpecificID string            `json:"methodSpecificId"`
	Path             []string          `json:"path,omitempty"`
	Query            map[string]string `json:"query,omitempty"`
	Fragment         string            `json:"fragment,omitempty"`
}
