/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package did models DIDs, DID URLs and DID documents, and assembles documents out of the verification methods,
// relationships and services produced by the DID method engines.
package did

import (
	"strings"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
	"github.com/hyperledger/aries-did-engine/pkg/doc/jose/jwk"
	"github.com/hyperledger/aries-did-engine/pkg/vdr/fingerprint"
)

const (
	// ContextV1 of the DID document.
	ContextV1 = "https://www.w3.org/ns/did/v1"
	// ContextV1Old of the DID document, still accepted when parsing.
	ContextV1Old = "https://w3id.org/did/v1"
	// ResolutionContext of the DID resolution result.
	ResolutionContext = "https://w3id.org/did-resolution/v1"
)

// Verification method types.
const (
	JSONWebKey2020                    = "JsonWebKey2020"
	Ed25519VerificationKey2020        = "Ed25519VerificationKey2020"
	X25519KeyAgreementKey2020         = "X25519KeyAgreementKey2020"
	EcdsaSecp256k1VerificationKey2019 = "EcdsaSecp256k1VerificationKey2019"
)

// VerificationRelationship defines a verification relationship between DID subject and a verification method.
type VerificationRelationship int

const (
	// VerificationRelationshipGeneral is a special case of verification relationship: when a verification method
	// defined in Verification is not used by any Verification.
	VerificationRelationshipGeneral VerificationRelationship = iota

	// Authentication defines verification relationship.
	// https://www.w3.org/TR/did-core/#authentication
	Authentication

	// KeyAgreement defines verification relationship.
	// https://www.w3.org/TR/did-core/#key-agreement
	KeyAgreement
)

// Doc DID Document definition.
type Doc struct {
	Context            []string
	ID                 string
	VerificationMethod []VerificationMethod
	Authentication     []Verification
	KeyAgreement       []Verification
	Service            []Service
}

// VerificationMethod DID doc verification method.
// The value of the verification method is defined either as raw public key bytes (Value field) or as JSON Web Key.
// In the first case the Type field can hold additional information to understand the nature of the raw public key.
type VerificationMethod struct {
	ID         string
	Type       string
	Controller string

	// Value is the multicodec tagged key for byte material, or the raw key for JWK material.
	Value []byte

	jsonWebKey *jwk.JWK
}

// NewVerificationMethodFromBytes creates a new VerificationMethod from multicodec tagged public key bytes.
func NewVerificationMethodFromBytes(id, kType, controller string, tagged []byte) *VerificationMethod {
	return &VerificationMethod{
		ID:         id,
		Type:       kType,
		Controller: controller,
		Value:      tagged,
	}
}

// NewVerificationMethodFromJWK creates a new VerificationMethod based on JSON Web Key.
func NewVerificationMethodFromJWK(id, kType, controller string, j *jwk.JWK) (*VerificationMethod, error) {
	pkBytes, err := j.PublicKeyBytes()
	if err != nil {
		return nil, err
	}

	return &VerificationMethod{
		ID:         id,
		Type:       kType,
		Controller: controller,
		Value:      pkBytes,
		jsonWebKey: j,
	}, nil
}

// JSONWebKey returns JSON Web key if defined.
func (pk *VerificationMethod) JSONWebKey() *jwk.JWK {
	return pk.jsonWebKey
}

// PublicKeyBytes returns the raw public key, untagging byte material.
func (pk *VerificationMethod) PublicKeyBytes() ([]byte, error) {
	if pk.jsonWebKey != nil {
		return pk.Value, nil
	}

	_, raw, err := fingerprint.Untag(pk.Value)

	return raw, err
}

// Fragment returns the part of the id after '#'.
func (pk *VerificationMethod) Fragment() string {
	if i := strings.LastIndexByte(pk.ID, '#'); i >= 0 {
		return pk.ID[i+1:]
	}

	return ""
}

// Verification authentication verification.
type Verification struct {
	VerificationMethod VerificationMethod
	Relationship       VerificationRelationship
}

// Service DID doc service.
type Service struct {
	ID              string
	Type            []string
	ServiceEndpoint Endpoint
}

// Endpoint is a DIDComm service endpoint.
type Endpoint struct {
	URI         string
	Accept      []string
	RoutingKeys []string
}

// DocResolution did resolution.
type DocResolution struct {
	Context     []string
	DIDDocument *Doc
}

type docOptions struct {
	context      []string
	auth         []string
	keyAgreement []string
	services     []Service
}

// DocOption provides options to build DID Doc.
type DocOption func(opts *docOptions)

// WithAuthentication references verification methods, by id or "#fragment", from the authentication relationship.
func WithAuthentication(ids ...string) DocOption {
	return func(opts *docOptions) {
		opts.auth = append(opts.auth, ids...)
	}
}

// WithKeyAgreement references verification methods, by id or "#fragment", from the key agreement relationship.
func WithKeyAgreement(ids ...string) DocOption {
	return func(opts *docOptions) {
		opts.keyAgreement = append(opts.keyAgreement, ids...)
	}
}

// WithService DID doc services.
func WithService(svc ...Service) DocOption {
	return func(opts *docOptions) {
		opts.services = append(opts.services, svc...)
	}
}

// WithContext overrides the default @context.
func WithContext(ctx ...string) DocOption {
	return func(opts *docOptions) {
		opts.context = ctx
	}
}

// NewDoc assembles a DID document. Every relationship reference must name one of vms.
func NewDoc(id string, vms []VerificationMethod, opts ...DocOption) (*Doc, error) {
	if _, err := Parse(id); err != nil {
		return nil, err
	}

	options := &docOptions{context: []string{ContextV1}}

	for _, opt := range opts {
		opt(options)
	}

	doc := &Doc{
		Context:            append([]string(nil), options.context...),
		ID:                 id,
		VerificationMethod: append([]VerificationMethod(nil), vms...),
		Service:            append([]Service(nil), options.services...),
	}

	var err error

	doc.Authentication, err = doc.references(Authentication, options.auth)
	if err != nil {
		return nil, err
	}

	doc.KeyAgreement, err = doc.references(KeyAgreement, options.keyAgreement)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func (doc *Doc) references(rel VerificationRelationship, ids []string) ([]Verification, error) {
	var refs []Verification

	for _, id := range ids {
		vm, ok := doc.lookupVerificationMethod(id)
		if !ok {
			return nil, diderrors.New(diderrors.Integrity, diderrors.ErrDanglingReference, "%q in %s", id, doc.ID)
		}

		refs = append(refs, Verification{VerificationMethod: *vm, Relationship: rel})
	}

	return refs, nil
}

func (doc *Doc) lookupVerificationMethod(id string) (*VerificationMethod, bool) {
	if strings.HasPrefix(id, "#") {
		return doc.VerificationMethodByFragment(id)
	}

	for i := range doc.VerificationMethod {
		if doc.VerificationMethod[i].ID == id {
			return &doc.VerificationMethod[i], true
		}
	}

	return nil, false
}

// VerificationMethodByFragment returns the verification method whose id ends with the fragment ("#" optional).
func (doc *Doc) VerificationMethodByFragment(fragment string) (*VerificationMethod, bool) {
	fragment = strings.TrimPrefix(fragment, "#")

	for i := range doc.VerificationMethod {
		if doc.VerificationMethod[i].Fragment() == fragment {
			return &doc.VerificationMethod[i], true
		}
	}

	return nil, false
}
