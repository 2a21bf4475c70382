/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package vdr serves DID resolution and creation over HTTP.
package vdr

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/hyperledger/aries-did-engine/pkg/controller/command"
	"github.com/hyperledger/aries-did-engine/pkg/controller/command/vdr"
	"github.com/hyperledger/aries-did-engine/pkg/controller/rest"
	vdrapi "github.com/hyperledger/aries-did-engine/pkg/vdr/api"
)

// constants for the VDR operations.
const (
	VDROperationID     = "/vdr"
	ResolveDIDPath     = "/1.0/identifiers/{id}"
	CreatePeerDIDPath  = VDROperationID + "/peer/create"
	CreatePrismDIDPath = VDROperationID + "/prism/create"
	ParseDIDURLPath    = VDROperationID + "/didurl"

	didURLQueryParam = "url"
)

// Operation contains basic common operations provided by controller REST API.
type Operation struct {
	handlers []rest.Handler
	command  *vdr.Command
}

// New returns new vdr operations rest client instance resolving through registry.
func New(registry vdrapi.Registry) *Operation {
	o := &Operation{command: vdr.New(registry)}
	o.registerHandler()

	return o
}

// GetRESTHandlers get all controller API handler available for this service.
func (o *Operation) GetRESTHandlers() []rest.Handler {
	return o.handlers
}

// registerHandler register handlers to be exposed from this protocol service as REST API endpoints.
func (o *Operation) registerHandler() {
	o.handlers = []rest.Handler{
		rest.NewHTTPHandler(ResolveDIDPath, http.MethodGet, o.ResolveDID),
		rest.NewHTTPHandler(CreatePeerDIDPath, http.MethodPost, o.CreatePeerDID),
		rest.NewHTTPHandler(CreatePrismDIDPath, http.MethodPost, o.CreatePrismDID),
		rest.NewHTTPHandler(ParseDIDURLPath, http.MethodGet, o.ParseDIDURL),
	}
}

// ResolveDID swagger:route GET /1.0/identifiers/{id} vdr resolveDIDReq
//
// Resolve did.
//
// Responses:
//
//	default: genericError
//	    200: resolutionRes
func (o *Operation) ResolveDID(rw http.ResponseWriter, req *http.Request) {
	o.executeWithID(o.command.ResolveDID, rw, mux.Vars(req)["id"])
}

// CreatePeerDID swagger:route POST /vdr/peer/create vdr createPeerDIDReq
//
// Create a numalgo 2 peer did.
//
// Responses:
//
//	default: genericError
//	    200: documentRes
func (o *Operation) CreatePeerDID(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.CreatePeerDID, rw, req.Body)
}

// CreatePrismDID swagger:route POST /vdr/prism/create vdr createPrismDIDReq
//
// Create a long-form prism did.
//
// Responses:
//
//	default: genericError
//	    200: documentRes
func (o *Operation) CreatePrismDID(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.CreatePrismDID, rw, req.Body)
}

// ParseDIDURL swagger:route GET /vdr/didurl vdr parseDIDURLReq
//
// Split a did url into its components.
//
// Responses:
//
//	default: genericError
//	    200: didURLRes
func (o *Operation) ParseDIDURL(rw http.ResponseWriter, req *http.Request) {
	didURL := req.URL.Query().Get(didURLQueryParam)
	if didURL == "" {
		rest.SendHTTPStatusError(rw, http.StatusBadRequest, vdr.InvalidRequestErrorCode,
			errors.Errorf("query parameter %q is mandatory", didURLQueryParam))

		return
	}

	o.executeWithID(o.command.ParseDIDURL, rw, didURL)
}

func (o *Operation) executeWithID(exec command.Exec, rw http.ResponseWriter, id string) {
	request, err := json.Marshal(vdr.IDArg{ID: id})
	if err != nil {
		rest.SendHTTPStatusError(rw, http.StatusBadRequest, vdr.InvalidRequestErrorCode,
			errors.Wrap(err, "invalid id"))

		return
	}

	rest.Execute(exec, rw, bytes.NewBuffer(request))
}
