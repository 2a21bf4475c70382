/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package engine resolves and creates decentralized identifiers without any network access.
//
// # Packages for end developer usage
//
// pkg/doc/did: DID and DID URL parsing, and the DID document model with its JSON form.
//
// pkg/vdr/peer: did:peer numalgo 2 creation and resolution.
//
// pkg/vdr/prism: did:prism long form creation and resolution.
//
// pkg/vdr: the resolver registry that routes a DID to the engine of its method.
//
// pkg/controller: command and REST handlers over a registry, served by cmd/did-engine-rest.
//
// Basic workflow
//
//  1. Create a registry with vdr.New, optionally adding resolvers for other methods.
//  2. Call Resolve with a DID string.
//  3. Read verification methods and services from the returned document.
package engine
