/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prism

import (
	"github.com/btcsuite/btcd/btcec"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
)

// KeyUsage mirrors the KeyUsage enum of the prism node protocol.
type KeyUsage int32

// Key usages.
const (
	UnknownKey KeyUsage = iota
	MasterKey
	IssuingKey
	KeyAgreementKey
	AuthenticationKey
	RevocationKey
	CapabilityInvocationKey
	CapabilityDelegationKey
)

// String returns the protocol name of the usage.
func (u KeyUsage) String() string {
	switch u {
	case MasterKey:
		return "MASTER_KEY"
	case IssuingKey:
		return "ISSUING_KEY"
	case KeyAgreementKey:
		return "KEY_AGREEMENT_KEY"
	case AuthenticationKey:
		return "AUTHENTICATION_KEY"
	case RevocationKey:
		return "REVOCATION_KEY"
	case CapabilityInvocationKey:
		return "CAPABILITY_INVOCATION_KEY"
	case CapabilityDelegationKey:
		return "CAPABILITY_DELEGATION_KEY"
	default:
		return "UNKNOWN_KEY"
	}
}

// Curve is the curve name carried in prism key data.
type Curve string

// Supported curves.
const (
	Secp256k1 Curve = "secp256k1"
	Ed25519   Curve = "Ed25519"
	X25519    Curve = "X25519"
)

// PublicKey is a key published by a create DID operation.
// Value is the raw public key; secp256k1 keys may be compressed or uncompressed.
type PublicKey struct {
	ID    string
	Usage KeyUsage
	Curve Curve
	Value []byte
}

// Service is a service published by a create DID operation.
type Service struct {
	ID       string
	Type     string
	Endpoint string
}

// createOperation is the DIDCreationData of an AtalaOperation{create_did}.
type createOperation struct {
	PublicKeys []PublicKey
	Services   []Service
}

// Field numbers of the prism node protocol messages.
const (
	atalaCreateDID protowire.Number = 1

	createDIDData protowire.Number = 1

	creationPublicKeys protowire.Number = 2
	creationServices   protowire.Number = 3

	publicKeyID                  protowire.Number = 1
	publicKeyUsage               protowire.Number = 2
	publicKeyECKeyData           protowire.Number = 8
	publicKeyCompressedECKeyData protowire.Number = 9

	ecKeyCurve protowire.Number = 1
	ecKeyX     protowire.Number = 2
	ecKeyY     protowire.Number = 3

	compressedKeyCurve protowire.Number = 1
	compressedKeyData  protowire.Number = 2

	serviceID       protowire.Number = 1
	serviceType     protowire.Number = 2
	serviceEndpoint protowire.Number = 3
)

const (
	curve25519KeyLen  = 32
	secp256k1CoordLen = 32
)

// marshal writes the AtalaOperation deterministically: ascending field numbers, proto3 defaults omitted.
func (op *createOperation) marshal() ([]byte, error) {
	var data []byte

	for i := range op.PublicKeys {
		key, err := marshalPublicKey(&op.PublicKeys[i])
		if err != nil {
			return nil, err
		}

		data = appendMessage(data, creationPublicKeys, key)
	}

	for i := range op.Services {
		data = appendMessage(data, creationServices, marshalService(&op.Services[i]))
	}

	return appendMessage(nil, atalaCreateDID, appendMessage(nil, createDIDData, data)), nil
}

func marshalPublicKey(pk *PublicKey) ([]byte, error) {
	var b []byte

	b = appendString(b, publicKeyID, pk.ID)

	if pk.Usage != UnknownKey {
		b = protowire.AppendTag(b, publicKeyUsage, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(pk.Usage))
	}

	switch pk.Curve {
	case Secp256k1:
		pub, err := btcec.ParsePubKey(pk.Value, btcec.S256())
		if err != nil {
			return nil, diderrors.Wrap(err, diderrors.Key, diderrors.ErrPublicKeyDecodeError, "key %q", pk.ID)
		}

		var ec []byte
		ec = appendString(ec, ecKeyCurve, string(Secp256k1))
		ec = appendBytes(ec, ecKeyX, pub.X.FillBytes(make([]byte, secp256k1CoordLen)))
		ec = appendBytes(ec, ecKeyY, pub.Y.FillBytes(make([]byte, secp256k1CoordLen)))

		b = appendMessage(b, publicKeyECKeyData, ec)
	case Ed25519, X25519:
		if len(pk.Value) != curve25519KeyLen {
			return nil, diderrors.New(diderrors.Key, diderrors.ErrInvalidLength,
				"%s key %q must be %d bytes, got %d", pk.Curve, pk.ID, curve25519KeyLen, len(pk.Value))
		}

		var compressed []byte
		compressed = appendString(compressed, compressedKeyCurve, string(pk.Curve))
		compressed = appendBytes(compressed, compressedKeyData, pk.Value)

		b = appendMessage(b, publicKeyCompressedECKeyData, compressed)
	default:
		return nil, diderrors.New(diderrors.Key, diderrors.ErrPublicKeyDecodeError,
			"key %q has unsupported curve %q", pk.ID, pk.Curve)
	}

	return b, nil
}

func marshalService(svc *Service) []byte {
	var b []byte

	b = appendString(b, serviceID, svc.ID)
	b = appendString(b, serviceType, svc.Type)
	b = appendString(b, serviceEndpoint, svc.Endpoint)

	return b
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, msg)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}

	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}

	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, v)
}

// field is one decoded wire field. Only varint and length-delimited values are kept.
type field struct {
	num    protowire.Number
	typ    protowire.Type
	varint uint64
	bytes  []byte
}

func parseFields(b []byte) ([]field, error) {
	var fields []field

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}

		b = b[n:]
		f := field{num: num, typ: typ}

		switch typ {
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}

		if n < 0 {
			return nil, protowire.ParseError(n)
		}

		b = b[n:]
		fields = append(fields, f)
	}

	return fields, nil
}

func invalidOperation(err error, format string, args ...interface{}) error {
	return diderrors.Wrap(err, diderrors.Encoding, diderrors.ErrInvalidOperation, format, args...)
}

// unmarshalOperation reads an AtalaOperation, accepting only create_did.
func unmarshalOperation(b []byte) (*createOperation, error) {
	fields, err := parseFields(b)
	if err != nil {
		return nil, invalidOperation(err, "atala operation")
	}

	var creation []byte

	found := false

	for _, f := range fields {
		if f.typ != protowire.BytesType {
			continue
		}

		if f.num != atalaCreateDID {
			return nil, diderrors.New(diderrors.Encoding, diderrors.ErrUnsupportedOperationType, "operation field %d", f.num)
		}

		createFields, err := parseFields(f.bytes)
		if err != nil {
			return nil, invalidOperation(err, "create did operation")
		}

		for _, cf := range createFields {
			if cf.num == createDIDData && cf.typ == protowire.BytesType {
				creation = cf.bytes
			}
		}

		found = true
	}

	if !found {
		return nil, diderrors.New(diderrors.Encoding, diderrors.ErrUnsupportedOperationType, "no create did operation")
	}

	return unmarshalCreationData(creation)
}

func unmarshalCreationData(b []byte) (*createOperation, error) {
	fields, err := parseFields(b)
	if err != nil {
		return nil, invalidOperation(err, "did creation data")
	}

	op := &createOperation{}

	for _, f := range fields {
		if f.typ != protowire.BytesType {
			continue
		}

		switch f.num {
		case creationPublicKeys:
			pk, err := unmarshalPublicKey(f.bytes)
			if err != nil {
				return nil, err
			}

			op.PublicKeys = append(op.PublicKeys, *pk)
		case creationServices:
			svc, err := unmarshalService(f.bytes)
			if err != nil {
				return nil, err
			}

			op.Services = append(op.Services, *svc)
		}
	}

	return op, nil
}

func unmarshalPublicKey(b []byte) (*PublicKey, error) {
	fields, err := parseFields(b)
	if err != nil {
		return nil, invalidOperation(err, "public key")
	}

	pk := &PublicKey{}

	var ecData, compressedData []byte

	for _, f := range fields {
		switch {
		case f.num == publicKeyID && f.typ == protowire.BytesType:
			pk.ID = string(f.bytes)
		case f.num == publicKeyUsage && f.typ == protowire.VarintType:
			pk.Usage = KeyUsage(f.varint)
		case f.num == publicKeyECKeyData && f.typ == protowire.BytesType:
			ecData = f.bytes
		case f.num == publicKeyCompressedECKeyData && f.typ == protowire.BytesType:
			compressedData = f.bytes
		}
	}

	switch {
	case ecData != nil:
		err = pk.decodeECKeyData(ecData)
	case compressedData != nil:
		err = pk.decodeCompressedKeyData(compressedData)
	default:
		err = diderrors.New(diderrors.Key, diderrors.ErrPublicKeyDecodeError, "key %q has no key data", pk.ID)
	}

	if err != nil {
		return nil, err
	}

	return pk, nil
}

func (pk *PublicKey) decodeECKeyData(b []byte) error {
	fields, err := parseFields(b)
	if err != nil {
		return invalidOperation(err, "ec key data of %q", pk.ID)
	}

	var x, y []byte

	for _, f := range fields {
		switch f.num {
		case ecKeyCurve:
			pk.Curve = Curve(f.bytes)
		case ecKeyX:
			x = f.bytes
		case ecKeyY:
			y = f.bytes
		}
	}

	if pk.Curve != Secp256k1 {
		return diderrors.New(diderrors.Key, diderrors.ErrPublicKeyDecodeError,
			"key %q: unsupported ec curve %q", pk.ID, pk.Curve)
	}

	if len(x) != secp256k1CoordLen || len(y) != secp256k1CoordLen {
		return diderrors.New(diderrors.Key, diderrors.ErrPublicKeyDecodeError,
			"key %q: coordinates must be %d bytes", pk.ID, secp256k1CoordLen)
	}

	uncompressed := append(append([]byte{0x04}, x...), y...) //nolint:gomnd

	pub, err := btcec.ParsePubKey(uncompressed, btcec.S256())
	if err != nil {
		return diderrors.Wrap(err, diderrors.Key, diderrors.ErrPublicKeyDecodeError, "key %q", pk.ID)
	}

	pk.Value = pub.SerializeCompressed()

	return nil
}

func (pk *PublicKey) decodeCompressedKeyData(b []byte) error {
	fields, err := parseFields(b)
	if err != nil {
		return invalidOperation(err, "compressed key data of %q", pk.ID)
	}

	for _, f := range fields {
		switch f.num {
		case compressedKeyCurve:
			pk.Curve = Curve(f.bytes)
		case compressedKeyData:
			pk.Value = f.bytes
		}
	}

	switch pk.Curve {
	case Ed25519, X25519:
		if len(pk.Value) != curve25519KeyLen {
			return diderrors.New(diderrors.Key, diderrors.ErrPublicKeyDecodeError,
				"key %q: %s key must be %d bytes, got %d", pk.ID, pk.Curve, curve25519KeyLen, len(pk.Value))
		}
	case Secp256k1:
		pub, err := btcec.ParsePubKey(pk.Value, btcec.S256())
		if err != nil {
			return diderrors.Wrap(err, diderrors.Key, diderrors.ErrPublicKeyDecodeError, "key %q", pk.ID)
		}

		pk.Value = pub.SerializeCompressed()
	default:
		return diderrors.New(diderrors.Key, diderrors.ErrPublicKeyDecodeError,
			"key %q: unsupported curve %q", pk.ID, pk.Curve)
	}

	return nil
}

func unmarshalService(b []byte) (*Service, error) {
	fields, err := parseFields(b)
	if err != nil {
		return nil, invalidOperation(err, "service")
	}

	svc := &Service{}

	for _, f := range fields {
		switch f.num {
		case serviceID:
			svc.ID = string(f.bytes)
		case serviceType:
			svc.Type = string(f.bytes)
		case serviceEndpoint:
			svc.Endpoint = string(f.bytes)
		}
	}

	if svc.ID == "" {
		return nil, diderrors.New(diderrors.Encoding, diderrors.ErrInvalidOperation, "service id is required")
	}

	return svc, nil
}
