/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
)

const (
	scheme       = "did"
	schemePrefix = scheme + ":"
	urlDelims    = "/?#"
)

//nolint:gochecknoglobals
var (
	methodRegex = regexp.MustCompile(`^[a-z0-9]+$`)
	// idchar is ALPHA / DIGIT / "." / "-" / "_" / pct-encoded; only the last segment must be non-empty.
	methodIDRegex = regexp.MustCompile(`^(?:(?:[a-zA-Z0-9._-]|%[0-9a-fA-F]{2})*:)*(?:[a-zA-Z0-9._-]|%[0-9a-fA-F]{2})+$`)
)

// DID is parsed according to the generic syntax: https://w3c.github.io/did-core/#did-syntax
type DID struct {
	Scheme           string // Scheme is always "did"
	Method           string // Method is the specific DID methods
	MethodSpecificID string // MethodSpecificID is the unique ID computed or assigned by the DID method
}

// String returns a string representation of this DID.
func (d *DID) String() string {
	return schemePrefix + d.Method + ":" + d.MethodSpecificID
}

// Parse parses the string according to the generic DID syntax.
// See https://w3c.github.io/did-core/#did-syntax.
func Parse(did string) (*DID, error) {
	if !strings.HasPrefix(did, schemePrefix) {
		return nil, diderrors.New(diderrors.Grammar, diderrors.ErrMissingScheme, "%q", did)
	}

	parts := strings.SplitN(strings.TrimPrefix(did, schemePrefix), ":", 2) //nolint:gomnd
	if len(parts) < 2 {                                                    //nolint:gomnd
		return nil, diderrors.New(diderrors.Grammar, diderrors.ErrTooFewParts,
			"%q needs a method and a method specific id", did)
	}

	method, methodID := parts[0], parts[1]

	if !methodRegex.MatchString(method) {
		return nil, diderrors.New(diderrors.Grammar, diderrors.ErrInvalidMethod,
			"method %q in %q must match [a-z0-9]+", method, did)
	}

	if !methodIDRegex.MatchString(methodID) {
		return nil, diderrors.New(diderrors.Grammar, diderrors.ErrInvalidMethodID,
			"method specific id %q in %q", methodID, did)
	}

	return &DID{
		Scheme:           scheme,
		Method:           method,
		MethodSpecificID: methodID,
	}, nil
}

// DIDURL holds a DID URL.
type DIDURL struct {
	DID
	Path     []string
	Query    map[string]string
	Fragment string
}

// ParseDIDURL parses a DID URL string into a DIDURL object.
// A query key given more than once keeps its last value.
func ParseDIDURL(didURL string) (*DIDURL, error) {
	base, rest := didURL, ""

	if i := strings.IndexAny(didURL, urlDelims); i >= 0 {
		base, rest = didURL[:i], didURL[i:]
	}

	d, err := Parse(base)
	if err != nil {
		return nil, err
	}

	u := &DIDURL{DID: *d}

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		u.Fragment, rest = rest[i+1:], rest[:i]
	}

	if i := strings.IndexByte(rest, '?'); i >= 0 {
		u.Query, err = parseQuery(rest[i+1:])
		if err != nil {
			return nil, err
		}

		rest = rest[:i]
	}

	if rest = strings.TrimPrefix(rest, "/"); rest != "" {
		u.Path = strings.Split(rest, "/")
	}

	return u, nil
}

// String renders the DID URL.
func (u *DIDURL) String() string {
	var sb strings.Builder

	sb.WriteString(u.DID.String())

	for _, seg := range u.Path {
		sb.WriteString("/" + seg)
	}

	if len(u.Query) > 0 {
		v := url.Values{}
		for k, q := range u.Query {
			v.Set(k, q)
		}

		sb.WriteString("?" + v.Encode())
	}

	if u.Fragment != "" {
		sb.WriteString("#" + u.Fragment)
	}

	return sb.String()
}

func parseQuery(raw string) (map[string]string, error) {
	query := map[string]string{}

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}

		k, v, _ := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, diderrors.Wrap(err, diderrors.Grammar, diderrors.ErrInvalidDIDURL, "query key %q", k)
		}

		value, err := url.QueryUnescape(v)
		if err != nil {
			return nil, diderrors.Wrap(err, diderrors.Grammar, diderrors.ErrInvalidDIDURL, "query value %q", v)
		}

		query[key] = value
	}

	return query, nil
}
