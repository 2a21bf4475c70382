/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"golang.org/x/exp/slices"
)

// DIDCommMessaging is the service type of DIDComm v2 endpoints.
const DIDCommMessaging = "DIDCommMessaging"

// LookupService returns the first service from the given DIDDoc matching the given service type.
func LookupService(didDoc *Doc, serviceType string) (*Service, bool) {
	for i := range didDoc.Service {
		if slices.Contains(didDoc.Service[i].Type, serviceType) {
			return &didDoc.Service[i], true
		}
	}

	return nil, false
}

// LookupPublicKey returns the verification method with the given id, or "#fragment", from the given DID Doc.
func LookupPublicKey(id string, didDoc *Doc) (*VerificationMethod, bool) {
	return didDoc.lookupVerificationMethod(id)
}

// LookupKeyAgreementKeys returns the verification methods referenced from the key agreement relationship.
func LookupKeyAgreementKeys(didDoc *Doc) []VerificationMethod {
	return relationshipMethods(didDoc.KeyAgreement)
}

// LookupAuthenticationKeys returns the verification methods referenced from the authentication relationship.
func LookupAuthenticationKeys(didDoc *Doc) []VerificationMethod {
	return relationshipMethods(didDoc.Authentication)
}

func relationshipMethods(refs []Verification) []VerificationMethod {
	var vms []VerificationMethod

	for _, v := range refs {
		vms = append(vms, v.VerificationMethod)
	}

	return vms
}
