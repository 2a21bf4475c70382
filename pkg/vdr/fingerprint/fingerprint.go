/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fingerprint tags raw public keys with their multicodec prefix and renders them as base58btc multibase
// strings, the key fingerprint form used by did:peer and did:key.
package fingerprint

import (
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-varint"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
)

// Codec is a public key type in the multicodec table.
// source: https://github.com/multiformats/multicodec/blob/master/table.csv.
type Codec uint64

const (
	// X25519PubKeyMultiCodec for Curve25519 public key in multicodec table.
	X25519PubKeyMultiCodec Codec = 0xec
	// ED25519PubKeyMultiCodec for Ed25519 public key in multicodec table.
	ED25519PubKeyMultiCodec Codec = 0xed
	// Secp256k1PubKeyMultiCodec for compressed secp256k1 public key in multicodec table.
	Secp256k1PubKeyMultiCodec Codec = 0xe7
)

const (
	curve25519KeyLen = 32
	// compressed point.
	secp256k1KeyLen = 33

	base58BTCPrefix = 'z'
)

//nolint:gochecknoglobals
var base58Encoder = multibase.MustNewEncoder(multibase.Base58BTC)

// String returns the multicodec table name of the codec.
func (c Codec) String() string {
	switch c {
	case X25519PubKeyMultiCodec:
		return "x25519-pub"
	case ED25519PubKeyMultiCodec:
		return "ed25519-pub"
	case Secp256k1PubKeyMultiCodec:
		return "secp256k1-pub"
	default:
		return fmt.Sprintf("0x%x", uint64(c))
	}
}

// KeyLen returns the raw public key length expected for the codec, or 0 for unknown codecs.
func (c Codec) KeyLen() int {
	switch c {
	case X25519PubKeyMultiCodec, ED25519PubKeyMultiCodec:
		return curve25519KeyLen
	case Secp256k1PubKeyMultiCodec:
		return secp256k1KeyLen
	default:
		return 0
	}
}

// CheckLength validates the raw key length for the codec.
func CheckLength(codec Codec, raw []byte) error {
	want := codec.KeyLen()
	if want == 0 {
		return diderrors.New(diderrors.Encoding, diderrors.ErrUnknownCodec, "codec %s", codec)
	}

	if len(raw) != want {
		return diderrors.New(diderrors.Key, diderrors.ErrInvalidLength,
			"%s key must be %d bytes, got %d", codec, want, len(raw))
	}

	return nil
}

// Tag prepends the unsigned varint multicodec prefix of codec to the raw key.
func Tag(codec Codec, raw []byte) ([]byte, error) {
	if err := CheckLength(codec, raw); err != nil {
		return nil, err
	}

	prefix := varint.ToUvarint(uint64(codec))
	buf := make([]byte, len(prefix)+len(raw))
	copy(buf, prefix)
	copy(buf[len(prefix):], raw)

	return buf, nil
}

// Untag splits tagged bytes into codec and raw key. The raw key length is not checked.
func Untag(tagged []byte) (Codec, []byte, error) {
	code, n, err := varint.FromUvarint(tagged)
	if err != nil {
		return 0, nil, diderrors.Wrap(err, diderrors.Encoding, diderrors.ErrUnknownCodec, "read multicodec prefix")
	}

	codec := Codec(code)
	if codec.KeyLen() == 0 {
		return 0, nil, diderrors.New(diderrors.Encoding, diderrors.ErrUnknownCodec, "prefix %s", codec)
	}

	return codec, tagged[n:], nil
}

// ToMultibase renders bytes as "z" + base58btc.
func ToMultibase(b []byte) string {
	return base58Encoder.Encode(b)
}

// FromMultibase parses a "z" + base58btc string.
func FromMultibase(s string) ([]byte, error) {
	if s == "" || s[0] != base58BTCPrefix {
		return nil, diderrors.New(diderrors.Encoding, diderrors.ErrInvalidMultibase, "expected 'z' prefix in %q", s)
	}

	_, data, err := multibase.Decode(s)
	if err != nil {
		return nil, diderrors.Wrap(err, diderrors.Encoding, diderrors.ErrInvalidMultibase, "decode %q", s)
	}

	return data, nil
}

// KeyFingerprint generates a multicodec fingerprint for pubKeyValue (raw key []byte).
func KeyFingerprint(codec Codec, pubKeyValue []byte) (string, error) {
	tagged, err := Tag(codec, pubKeyValue)
	if err != nil {
		return "", err
	}

	return ToMultibase(tagged), nil
}

// PubKeyFromFingerprint extracts the raw public key and its codec from a multibase key fingerprint.
func PubKeyFromFingerprint(fingerprint string) ([]byte, Codec, error) {
	tagged, err := FromMultibase(fingerprint)
	if err != nil {
		return nil, 0, err
	}

	codec, raw, err := Untag(tagged)
	if err != nil {
		return nil, 0, err
	}

	if err = CheckLength(codec, raw); err != nil {
		return nil, 0, err
	}

	return raw, codec, nil
}
