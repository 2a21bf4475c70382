/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package peer

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
	"github.com/hyperledger/aries-did-engine/pkg/doc/did"
)

// abbreviations of service type values.
//
//nolint:gochecknoglobals
var (
	abbreviations = map[string]string{did.DIDCommMessaging: "dm"}
	expansions    = map[string]string{"dm": did.DIDCommMessaging}
)

// encodedService is the abbreviated service form. Field order is part of the DID.
type encodedService struct {
	RoutingKeys []string `json:"r"`
	Endpoint    string   `json:"s"`
	Accept      []string `json:"a"`
	Type        string   `json:"t"`
}

// decodedService accepts both the flat form and the nested {"s": {"uri", "a", "r"}} form.
type decodedService struct {
	Type        string      `mapstructure:"t"`
	Endpoint    interface{} `mapstructure:"s"`
	RoutingKeys []string    `mapstructure:"r"`
	Accept      []string    `mapstructure:"a"`
}

type decodedEndpoint struct {
	URI         string   `mapstructure:"uri"`
	RoutingKeys []string `mapstructure:"r"`
	Accept      []string `mapstructure:"a"`
}

// encodeServices renders one service as a JSON object and several as an array, then base64url without padding.
func encodeServices(services []did.Service) (string, error) {
	encoded := make([]encodedService, 0, len(services))

	for i, svc := range services {
		if len(svc.Type) != 1 || svc.Type[0] == "" {
			return "", diderrors.New(diderrors.Encoding, diderrors.ErrInvalidServiceEncoding,
				"service %d must have exactly one type, got %q", i, svc.Type)
		}

		if svc.ServiceEndpoint.URI == "" {
			return "", diderrors.New(diderrors.Encoding, diderrors.ErrInvalidServiceEncoding,
				"service %d has no endpoint uri", i)
		}

		t := svc.Type[0]

		if abbr, ok := abbreviations[t]; ok {
			t = abbr
		}

		encoded = append(encoded, encodedService{
			RoutingKeys: nonNil(svc.ServiceEndpoint.RoutingKeys),
			Endpoint:    svc.ServiceEndpoint.URI,
			Accept:      nonNil(svc.ServiceEndpoint.Accept),
			Type:        t,
		})
	}

	var v interface{} = encoded
	if len(encoded) == 1 {
		v = encoded[0]
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return "", diderrors.Wrap(err, diderrors.Encoding, diderrors.ErrInvalidServiceEncoding, "marshal services")
	}

	return base64.RawURLEncoding.EncodeToString(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// decodeServices parses one service segment (without its purpose code). Service ids are numbered from offset.
func decodeServices(didID, segment string, offset int) ([]did.Service, error) {
	data, err := base64.RawURLEncoding.Strict().DecodeString(strings.TrimRight(segment, "="))
	if err != nil {
		return nil, diderrors.Wrap(err, diderrors.Encoding, diderrors.ErrInvalidServiceEncoding, "base64url")
	}

	var raw interface{}

	if err = json.Unmarshal(data, &raw); err != nil {
		return nil, diderrors.Wrap(err, diderrors.Encoding, diderrors.ErrInvalidServiceEncoding, "json")
	}

	var items []interface{}

	switch v := raw.(type) {
	case map[string]interface{}:
		items = []interface{}{v}
	case []interface{}:
		items = v
	default:
		return nil, diderrors.New(diderrors.Encoding, diderrors.ErrInvalidServiceEncoding,
			"expected object or array, got %T", raw)
	}

	services := make([]did.Service, 0, len(items))

	for i, item := range items {
		svc, err := decodeService(item)
		if err != nil {
			return nil, err
		}

		svc.ID = fmt.Sprintf("%s#%s-%d", didID, strings.ToLower(svc.Type[0]), offset+i)

		services = append(services, *svc)
	}

	return services, nil
}

func decodeService(item interface{}) (*did.Service, error) {
	ds := &decodedService{}

	if err := decodeMap(item, ds); err != nil {
		return nil, diderrors.Wrap(err, diderrors.Encoding, diderrors.ErrInvalidServiceEncoding, "service")
	}

	if ds.Type == "" || ds.Endpoint == nil {
		return nil, diderrors.New(diderrors.Encoding, diderrors.ErrInvalidServiceEncoding, "t and s are required")
	}

	endpoint := did.Endpoint{RoutingKeys: nilIfEmpty(ds.RoutingKeys), Accept: nilIfEmpty(ds.Accept)}

	switch s := ds.Endpoint.(type) {
	case string:
		endpoint.URI = s
	case map[string]interface{}:
		de := &decodedEndpoint{}

		if err := decodeMap(s, de); err != nil {
			return nil, diderrors.Wrap(err, diderrors.Encoding, diderrors.ErrInvalidServiceEncoding, "service endpoint")
		}

		endpoint.URI = de.URI
		endpoint.RoutingKeys = nilIfEmpty(de.RoutingKeys)
		endpoint.Accept = nilIfEmpty(de.Accept)
	default:
		return nil, diderrors.New(diderrors.Encoding, diderrors.ErrInvalidServiceEncoding,
			"unexpected service endpoint type %T", s)
	}

	t := ds.Type
	if full, ok := expansions[t]; ok {
		t = full
	}

	return &did.Service{Type: []string{t}, ServiceEndpoint: endpoint}, nil
}

func decodeMap(input, output interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     output,
		ZeroFields: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}

	return s
}
