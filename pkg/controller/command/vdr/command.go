/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vdr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcutil/base58"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
	"github.com/hyperledger/aries-did-engine/pkg/common/log"
	"github.com/hyperledger/aries-did-engine/pkg/controller/command"
	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
	vdrapi "github.com/hyperledger/aries-did-engine/pkg/vdr/api"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/peer"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/prism"
)

var logger = log.New("did-engine/command/vdr")

// Error codes.
const (
	// InvalidRequestErrorCode is typically a code for invalid requests.
	InvalidRequestErrorCode = command.Code(iota + command.VDR)

	// ResolveDIDErrorCode for resolve did error.
	ResolveDIDErrorCode

	// CreateDIDErrorCode for create did error.
	CreateDIDErrorCode

	// ParseDIDURLErrorCode for parse did url error.
	ParseDIDURLErrorCode
)

// constants for the VDR controller's methods.
const (
	// command name.
	CommandName = "vdr"

	// command methods.
	ResolveDIDCommandMethod     = "ResolveDID"
	CreatePeerDIDCommandMethod  = "CreatePeerDID"
	CreatePrismDIDCommandMethod = "CreatePrismDID"
	ParseDIDURLCommandMethod    = "ParseDIDURL"

	// error messages.
	errEmptyDIDID = "did is mandatory"
	errNoKeys     = "at least one key is mandatory"
)

// Command contains command operations provided by vdr controller.
type Command struct {
	registry vdrapi.Registry
	peer     *peer.VDR
	prism    *prism.VDR
}

// New returns new vdr controller command instance resolving through registry.
func New(registry vdrapi.Registry) *Command {
	return &Command{
		registry: registry,
		peer:     peer.New(),
		prism:    prism.New(),
	}
}

// GetHandlers returns list of all commands supported by this controller command.
func (o *Command) GetHandlers() []command.Handler {
	return []command.Handler{
		command.NewHandler(CommandName, ResolveDIDCommandMethod, o.ResolveDID),
		command.NewHandler(CommandName, CreatePeerDIDCommandMethod, o.CreatePeerDID),
		command.NewHandler(CommandName, CreatePrismDIDCommandMethod, o.CreatePrismDID),
		command.NewHandler(CommandName, ParseDIDURLCommandMethod, o.ParseDIDURL),
	}
}

// ResolveDID resolve did.
func (o *Command) ResolveDID(rw io.Writer, req io.Reader) command.Error {
	var request IDArg

	err := json.NewDecoder(req).Decode(&request)
	if err != nil {
		logInfo(ResolveDIDCommandMethod, err.Error())
		return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("request decode : %w", err))
	}

	if request.ID == "" {
		logDebug(ResolveDIDCommandMethod, errEmptyDIDID)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errEmptyDIDID))
	}

	doc, err := o.registry.Resolve(context.Background(), request.ID)
	if err != nil {
		logError(ResolveDIDCommandMethod, "resolve did doc: "+err.Error(), request.ID)

		return classify(ResolveDIDErrorCode, fmt.Errorf("resolve did doc: %w", err))
	}

	docBytes, err := doc.JSONBytes()
	if err != nil {
		logError(ResolveDIDCommandMethod, "marshal did resolution response: "+err.Error(), request.ID)

		return command.NewExecuteError(ResolveDIDErrorCode, fmt.Errorf("marshal did resolution response: %w", err))
	}

	if _, err = rw.Write(docBytes); err != nil {
		logger.Errorf("Unable to send error response, %s", err)
	}

	logDebug(ResolveDIDCommandMethod, "success", request.ID)

	return nil
}

// CreatePeerDID creates a numalgo 2 peer DID and returns its document.
func (o *Command) CreatePeerDID(rw io.Writer, req io.Reader) command.Error {
	var request CreatePeerDIDArgs

	err := json.NewDecoder(req).Decode(&request)
	if err != nil {
		logInfo(CreatePeerDIDCommandMethod, err.Error())
		return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("request decode : %w", err))
	}

	if len(request.Keys) == 0 {
		logDebug(CreatePeerDIDCommandMethod, errNoKeys)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errNoKeys))
	}

	keys := make([]peer.Key, 0, len(request.Keys))

	for i, k := range request.Keys {
		key, err := peerKey(k)
		if err != nil {
			logDebug(CreatePeerDIDCommandMethod, err.Error())
			return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("key %d: %w", i, err))
		}

		keys = append(keys, key)
	}

	services := make([]did.Service, 0, len(request.Services))

	for _, s := range request.Services {
		services = append(services, did.Service{
			Type: []string{s.Type},
			ServiceEndpoint: did.Endpoint{
				URI:         s.ServiceEndpoint,
				Accept:      s.Accept,
				RoutingKeys: s.RoutingKeys,
			},
		})
	}

	res, err := o.peer.Create(keys, services)
	if err != nil {
		logError(CreatePeerDIDCommandMethod, "create did doc: "+err.Error())
		return classify(CreateDIDErrorCode, fmt.Errorf("create did doc: %w", err))
	}

	return writeDocument(rw, CreatePeerDIDCommandMethod, res.DIDDocument)
}

// CreatePrismDID creates a long-form prism DID and returns its document.
func (o *Command) CreatePrismDID(rw io.Writer, req io.Reader) command.Error {
	var request CreatePrismDIDArgs

	err := json.NewDecoder(req).Decode(&request)
	if err != nil {
		logInfo(CreatePrismDIDCommandMethod, err.Error())
		return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("request decode : %w", err))
	}

	if len(request.Keys) == 0 {
		logDebug(CreatePrismDIDCommandMethod, errNoKeys)
		return command.NewValidationError(InvalidRequestErrorCode, errors.New(errNoKeys))
	}

	keys := make([]prism.PublicKey, 0, len(request.Keys))

	for i, k := range request.Keys {
		key, err := prismKey(k)
		if err != nil {
			logDebug(CreatePrismDIDCommandMethod, err.Error())
			return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("key %d: %w", i, err))
		}

		keys = append(keys, key)
	}

	services := make([]prism.Service, 0, len(request.Services))

	for _, s := range request.Services {
		services = append(services, prism.Service{ID: s.ID, Type: s.Type, Endpoint: s.ServiceEndpoint})
	}

	res, err := o.prism.Create(keys, services)
	if err != nil {
		logError(CreatePrismDIDCommandMethod, "create did doc: "+err.Error())
		return classify(CreateDIDErrorCode, fmt.Errorf("create did doc: %w", err))
	}

	return writeDocument(rw, CreatePrismDIDCommandMethod, res.DIDDocument)
}

// ParseDIDURL splits a DID URL into its components.
func (o *Command) ParseDIDURL(rw io.Writer, req io.Reader) command.Error {
	var request IDArg

	err := json.NewDecoder(req).Decode(&request)
	if err != nil {
		logInfo(ParseDIDURLCommandMethod, err.Error())
		return command.NewValidationError(InvalidRequestErrorCode, fmt.Errorf("request decode : %w", err))
	}

	u, err := did.ParseDIDURL(request.ID)
	if err != nil {
		logDebug(ParseDIDURLCommandMethod, err.Error(), request.ID)
		return command.NewValidationError(ParseDIDURLErrorCode, fmt.Errorf("parse did url: %w", err))
	}

	command.WriteNillableResponse(rw, &DIDURLResult{
		DID:              u.DID.String(),
		Method:           u.Method,
		MethodSpecificID: u.MethodSpecificID,
		Path:             u.Path,
		Query:            u.Query,
		Fragment:         u.Fragment,
	}, logger)

	logDebug(ParseDIDURLCommandMethod, "success", request.ID)

	return nil
}

func writeDocument(rw io.Writer, method string, doc *did.Doc) command.Error {
	docBytes, err := doc.JSONBytes()
	if err != nil {
		logError(method, "marshal did doc: "+err.Error())
		return command.NewExecuteError(CreateDIDErrorCode, fmt.Errorf("marshal did doc: %w", err))
	}

	command.WriteNillableResponse(rw, &Document{DID: docBytes}, logger)

	logDebug(method, "success", doc.ID)

	return nil
}

func peerKey(k PeerKey) (peer.Key, error) {
	value, err := decodeBase58(k.PublicKeyBase58)
	if err != nil {
		return peer.Key{}, err
	}

	switch k.Role {
	case peer.Authentication.String():
		return peer.Key{Role: peer.Authentication, Value: value}, nil
	case peer.KeyAgreement.String():
		return peer.Key{Role: peer.KeyAgreement, Value: value}, nil
	default:
		return peer.Key{}, fmt.Errorf("unknown role %q", k.Role)
	}
}

func prismKey(k PrismKey) (prism.PublicKey, error) {
	value, err := decodeBase58(k.PublicKeyBase58)
	if err != nil {
		return prism.PublicKey{}, err
	}

	usage := prism.UnknownKey

	for u := prism.MasterKey; u <= prism.CapabilityDelegationKey; u++ {
		if u.String() == k.Usage {
			usage = u
		}
	}

	if usage == prism.UnknownKey {
		return prism.PublicKey{}, fmt.Errorf("unknown key usage %q", k.Usage)
	}

	return prism.PublicKey{ID: k.ID, Usage: usage, Curve: prism.Curve(k.Curve), Value: value}, nil
}

func decodeBase58(s string) ([]byte, error) {
	value := base58.Decode(s)
	if len(value) == 0 {
		return nil, fmt.Errorf("invalid publicKeyBase58 %q", s)
	}

	return value, nil
}

// classify maps engine errors onto command error types: grammar errors are invalid requests,
// DIDs no engine serves are not found, every other engine error is unprocessable.
func classify(code command.Code, err error) command.Error {
	switch diderrors.KindOf(err) {
	case diderrors.Grammar:
		return command.NewValidationError(code, err)
	case diderrors.UnsupportedMethod:
		return command.NewNotFoundError(code, err)
	case 0:
		if errors.Is(err, vdrapi.ErrNotFound) {
			return command.NewNotFoundError(code, err)
		}

		return command.NewExecuteError(code, err)
	default:
		return command.NewUnprocessableError(code, err)
	}
}

func logError(action, errMsg string, data ...string) {
	logger.Errorf("command=[%s] action=[%s] %s errMsg=[%s]", CommandName, action, data, errMsg)
}

func logDebug(action, msg string, data ...string) {
	logger.Debugf("command=[%s] action=[%s] %s msg=[%s]", CommandName, action, data, msg)
}

func logInfo(action, msg string, data ...string) {
	logger.Infof("command=[%s] action=[%s] %s msg=[%s]", CommandName, action, data, msg)
}
