/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/hyperledger/aries-did-engine/pkg/doc/jose/jwk"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/fingerprint"
)

var schemaLoaderV1 = gojsonschema.NewStringLoader(schemaV1) //nolint:gochecknoglobals

// ErrDIDDocumentNotExist is returned when a resolution result carries no DID document.
var ErrDIDDocumentNotExist = errors.New("did document is missing from resolution")

type rawDoc struct {
	Context            interface{}             `json:"@context,omitempty"`
	ID                 string                  `json:"id"`
	VerificationMethod []rawVerificationMethod `json:"verificationMethod,omitempty"`
	Authentication     []string                `json:"authentication,omitempty"`
	KeyAgreement       []string                `json:"keyAgreement,omitempty"`
	Service            []rawService            `json:"service,omitempty"`
}

type rawVerificationMethod struct {
	ID                 string   `json:"id"`
	Type               string   `json:"type"`
	Controller         string   `json:"controller"`
	PublicKeyJwk       *jwk.JWK `json:"publicKeyJwk,omitempty"`
	PublicKeyMultibase string   `json:"publicKeyMultibase,omitempty"`
}

type rawService struct {
	ID              string      `json:"id"`
	Type            interface{} `json:"type"`
	ServiceEndpoint interface{} `json:"serviceEndpoint"`
}

type rawEndpoint struct {
	URI         string   `json:"uri"`
	Accept      []string `json:"accept,omitempty"`
	RoutingKeys []string `json:"routingKeys,omitempty"`
}

type rawDocResolution struct {
	Context     interface{}     `json:"@context"`
	DIDDocument json.RawMessage `json:"didDocument"`
}

// JSONBytes converts document to json bytes.
func (doc *Doc) JSONBytes() ([]byte, error) {
	raw := &rawDoc{
		Context:        contextEntry(doc.Context),
		ID:             doc.ID,
		Authentication: referenceIDs(doc.Authentication),
		KeyAgreement:   referenceIDs(doc.KeyAgreement),
	}

	for i := range doc.VerificationMethod {
		vm := &doc.VerificationMethod[i]

		rawVM := rawVerificationMethod{ID: vm.ID, Type: vm.Type, Controller: vm.Controller}

		if vm.jsonWebKey != nil {
			rawVM.PublicKeyJwk = vm.jsonWebKey
		} else {
			rawVM.PublicKeyMultibase = fingerprint.ToMultibase(vm.Value)
		}

		raw.VerificationMethod = append(raw.VerificationMethod, rawVM)
	}

	for _, svc := range doc.Service {
		raw.Service = append(raw.Service, rawService{
			ID:   svc.ID,
			Type: typeEntry(svc.Type),
			ServiceEndpoint: rawEndpoint{
				URI:         svc.ServiceEndpoint.URI,
				Accept:      svc.ServiceEndpoint.Accept,
				RoutingKeys: svc.ServiceEndpoint.RoutingKeys,
			},
		})
	}

	byteDoc, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("JSON marshalling of document failed: %w", err)
	}

	return byteDoc, nil
}

// ParseDocument creates an instance of DIDDocument by reading a JSON document from bytes.
func ParseDocument(data []byte) (*Doc, error) {
	if err := validate(data, schemaLoaderV1); err != nil {
		return nil, err
	}

	raw := &rawDoc{}

	if err := json.Unmarshal(data, raw); err != nil {
		return nil, fmt.Errorf("JSON unmarshalling of did doc bytes failed: %w", err)
	}

	vms := make([]VerificationMethod, 0, len(raw.VerificationMethod))

	for _, rawVM := range raw.VerificationMethod {
		vm, err := decodeVerificationMethod(rawVM)
		if err != nil {
			return nil, fmt.Errorf("verification method %s: %w", rawVM.ID, err)
		}

		vms = append(vms, *vm)
	}

	var services []Service

	for _, rawSvc := range raw.Service {
		services = append(services, Service{
			ID:              rawSvc.ID,
			Type:            stringArray(rawSvc.Type),
			ServiceEndpoint: endpointEntry(rawSvc.ServiceEndpoint),
		})
	}

	return NewDoc(raw.ID, vms,
		WithContext(stringArray(raw.Context)...),
		WithAuthentication(raw.Authentication...),
		WithKeyAgreement(raw.KeyAgreement...),
		WithService(services...))
}

func decodeVerificationMethod(raw rawVerificationMethod) (*VerificationMethod, error) {
	if raw.PublicKeyJwk != nil {
		return NewVerificationMethodFromJWK(raw.ID, raw.Type, raw.Controller, raw.PublicKeyJwk)
	}

	tagged, err := fingerprint.FromMultibase(raw.PublicKeyMultibase)
	if err != nil {
		return nil, err
	}

	if _, _, err = fingerprint.Untag(tagged); err != nil {
		return nil, err
	}

	return NewVerificationMethodFromBytes(raw.ID, raw.Type, raw.Controller, tagged), nil
}

// JSONBytes converts the resolution result to json bytes.
func (r *DocResolution) JSONBytes() ([]byte, error) {
	docBytes, err := r.DIDDocument.JSONBytes()
	if err != nil {
		return nil, err
	}

	return json.Marshal(rawDocResolution{
		Context:     contextEntry(r.Context),
		DIDDocument: docBytes,
	})
}

// ParseDocumentResolution parse document resolution.
func ParseDocumentResolution(data []byte) (*DocResolution, error) {
	raw := &rawDocResolution{}

	if err := json.Unmarshal(data, raw); err != nil {
		return nil, err
	}

	if len(raw.DIDDocument) == 0 {
		return nil, ErrDIDDocumentNotExist
	}

	doc, err := ParseDocument(raw.DIDDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to parse did document: %w", err)
	}

	return &DocResolution{Context: stringArray(raw.Context), DIDDocument: doc}, nil
}

func validate(data []byte, schemaLoader gojsonschema.JSONLoader) error {
	// Validate that the DID Document conforms to the serialization of the DID Document data model.
	// Reference: https://www.w3.org/TR/did-core/#did-documents
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation of DID doc failed: %w", err)
	}

	if !result.Valid() {
		errMsg := "did document not valid:\n"
		for _, desc := range result.Errors() {
			errMsg += fmt.Sprintf("- %s\n", desc)
		}

		return errors.New(errMsg)
	}

	return nil
}

func referenceIDs(refs []Verification) []string {
	var ids []string

	for _, v := range refs {
		ids = append(ids, v.VerificationMethod.ID)
	}

	return ids
}

// contextEntry renders a single context as a plain string.
func contextEntry(ctx []string) interface{} {
	if len(ctx) == 1 {
		return ctx[0]
	}

	return ctx
}

func typeEntry(types []string) interface{} {
	if len(types) == 1 {
		return types[0]
	}

	return types
}

func endpointEntry(entry interface{}) Endpoint {
	switch e := entry.(type) {
	case string:
		return Endpoint{URI: e}
	case map[string]interface{}:
		return Endpoint{
			URI:         stringEntry(e["uri"]),
			Accept:      stringArray(e["accept"]),
			RoutingKeys: stringArray(e["routingKeys"]),
		}
	default:
		return Endpoint{}
	}
}

// stringEntry.
func stringEntry(entry interface{}) string {
	s, _ := entry.(string) //nolint:errcheck

	return s
}

// stringArray accepts a single string or an array of strings.
func stringArray(entry interface{}) []string {
	switch e := entry.(type) {
	case string:
		return []string{e}
	case []interface{}:
		var result []string

		for _, v := range e {
			if s, ok := v.(string); ok {
				result = append(result, s)
			}
		}

		return result
	default:
		return nil
	}
}
