/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vdr

import (
	"encoding/json"

	vdrcommand "github.com/hyperledger/aries-did-engine/pkg/controller/command/vdr"
)

// resolveDIDReq model
//
// This is used to resolve a DID.
//
// swagger:parameters resolveDIDReq
type resolveDIDReq struct { // nolint: unused,deadcode
	// DID ID - pass the did
	//
	// in: path
	// required: true
	ID string `json:"id"`
}

// createPeerDIDReq model
//
// This is used to create a numalgo 2 peer DID.
//
// swagger:parameters createPeerDIDReq
type createPeerDIDReq struct { // nolint: unused,deadcode
	// in: body
	Params vdrcommand.CreatePeerDIDArgs
}

// createPrismDIDReq model
//
// This is used to create a long-form prism DID.
//
// swagger:parameters createPrismDIDReq
type createPrismDIDReq struct { // nolint: unused,deadcode
	// in: body
	Params vdrcommand.CreatePrismDIDArgs
}

// parseDIDURLReq model
//
// This is used to split a DID URL into its components.
//
// swagger:parameters parseDIDURLReq
type parseDIDURLReq struct { // nolint: unused,deadcode
	// DID URL, query escaped
	//
	// in: query
	// required: true
	URL string `json:"url"`
}

// documentRes model
//
// This is used for returning a created DID document.
//
// swagger:response documentRes
type documentRes struct { // nolint: unused,deadcode
	// in: body
	DID json.RawMessage `json:"did,omitempty"`
}

// resolutionRes model
//
// This is used for returning a DID resolution result.
//
// swagger:response resolutionRes
type resolutionRes struct { // nolint: unused,deadcode
	// in: body
	Resolution json.RawMessage
}

// didURLRes model
//
// This is used for returning the components of a DID URL.
//
// swagger:response didURLRes
type didURLRes struct { // nolint: unused,deadcode
	// in: body
	vdrcommand.DIDURLResult
}
