/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jwk converts raw public key bytes to and from JSON Web Keys.
package jwk

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/go-jose/go-jose/v3"
	"github.com/tidwall/gjson"

	"github.com/hyperledger/aries-did-engine/pkg/common/diderrors"
)

const (
	// OKPType is the kty of octet key pairs (X25519 and Ed25519).
	OKPType = "OKP"
	// ECType is the kty of elliptic curve keys.
	ECType = "EC"

	// X25519Crv is the crv of Curve25519 key agreement keys.
	X25519Crv = "X25519"
	// Ed25519Crv is the crv of Ed25519 signing keys.
	Ed25519Crv = "Ed25519"
	// Secp256k1Crv is the crv of secp256k1 keys.
	Secp256k1Crv = "secp256k1"

	curve25519KeySize = 32
	secp256k1CoordLen = 32
)

// JWK (JSON Web Key) is a JSON data structure that represents a cryptographic key.
type JWK struct {
	jose.JSONWebKey

	Kty string
	Crv string
}

// rawJWK is the wire form for keys go-jose does not marshal itself.
type rawJWK struct {
	Kty string `json:"kty"`
	Kid string `json:"kid,omitempty"`
	Crv string `json:"crv"`
	Alg string `json:"alg,omitempty"`
	X   string `json:"x"`
	Y   string `json:"y,omitempty"`
}

// ToJWK builds the JWK of a raw public key on the given curve.
// secp256k1 keys are accepted in compressed or uncompressed SEC1 form.
func ToJWK(raw []byte, crv string) (*JWK, error) {
	switch crv {
	case Ed25519Crv:
		if err := checkLength(crv, raw); err != nil {
			return nil, err
		}

		return &JWK{
			JSONWebKey: jose.JSONWebKey{Key: ed25519.PublicKey(raw)},
			Kty:        OKPType,
			Crv:        crv,
		}, nil
	case X25519Crv:
		if err := checkLength(crv, raw); err != nil {
			return nil, err
		}

		return &JWK{
			JSONWebKey: jose.JSONWebKey{Key: append([]byte(nil), raw...)},
			Kty:        OKPType,
			Crv:        crv,
		}, nil
	case Secp256k1Crv:
		pub, err := btcec.ParsePubKey(raw, btcec.S256())
		if err != nil {
			return nil, diderrors.Wrap(err, diderrors.Key, diderrors.ErrPublicKeyDecodeError, "secp256k1 point")
		}

		return &JWK{
			JSONWebKey: jose.JSONWebKey{Key: pub.ToECDSA()},
			Kty:        ECType,
			Crv:        crv,
		}, nil
	default:
		return nil, diderrors.New(diderrors.Encoding, diderrors.ErrInvalidJWK, "unsupported crv %q", crv)
	}
}

// FromJWK parses a JWK JSON object and returns its raw public key bytes.
func FromJWK(data []byte) ([]byte, error) {
	j := &JWK{}

	if err := j.UnmarshalJSON(data); err != nil {
		return nil, err
	}

	return j.PublicKeyBytes()
}

// PublicKeyBytes returns the raw public key: 32 bytes for OKP curves, compressed point for secp256k1.
func (j *JWK) PublicKeyBytes() ([]byte, error) {
	switch key := j.Key.(type) {
	case ed25519.PublicKey:
		return []byte(key), nil
	case []byte:
		return key, nil
	case *ecdsa.PublicKey:
		return (*btcec.PublicKey)(key).SerializeCompressed(), nil
	default:
		return nil, diderrors.New(diderrors.Encoding, diderrors.ErrInvalidJWK, "unsupported public key type %T", key)
	}
}

// MarshalJSON marshals the JWK into its canonical JSON form.
func (j *JWK) MarshalJSON() ([]byte, error) {
	if j.Crv == Ed25519Crv {
		return j.JSONWebKey.MarshalJSON()
	}

	raw := rawJWK{Kty: j.Kty, Kid: j.KeyID, Crv: j.Crv, Alg: j.Algorithm}

	switch key := j.Key.(type) {
	case []byte:
		raw.X = base64.RawURLEncoding.EncodeToString(key)
	case *ecdsa.PublicKey:
		raw.X = base64.RawURLEncoding.EncodeToString(padCoord(key.X))
		raw.Y = base64.RawURLEncoding.EncodeToString(padCoord(key.Y))
	default:
		return nil, fmt.Errorf("marshal jwk: unsupported key type %T", key)
	}

	return json.Marshal(raw)
}

// UnmarshalJSON reads a JWK, dispatching on its kty and crv members.
func (j *JWK) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return diderrors.New(diderrors.Encoding, diderrors.ErrInvalidJWK, "not a json object")
	}

	fields := gjson.GetManyBytes(data, "kty", "crv", "x", "y")
	kty, crv, x, y := fields[0], fields[1], fields[2], fields[3]

	if !kty.Exists() || !crv.Exists() || !x.Exists() {
		return diderrors.New(diderrors.Encoding, diderrors.ErrInvalidJWK, "kty, crv and x are required")
	}

	switch {
	case kty.String() == OKPType && crv.String() == Ed25519Crv:
		if err := j.JSONWebKey.UnmarshalJSON(data); err != nil {
			return diderrors.Wrap(err, diderrors.Encoding, diderrors.ErrInvalidJWK, "ed25519")
		}
	case kty.String() == OKPType && crv.String() == X25519Crv:
		key, err := decodeCoord(x.String())
		if err != nil {
			return err
		}

		if err = checkLength(X25519Crv, key); err != nil {
			return err
		}

		j.JSONWebKey = jose.JSONWebKey{Key: key, KeyID: gjson.GetBytes(data, "kid").String()}
	case kty.String() == ECType && crv.String() == Secp256k1Crv:
		if !y.Exists() {
			return diderrors.New(diderrors.Encoding, diderrors.ErrInvalidJWK, "y is required for EC keys")
		}

		key, err := secp256k1Key(x.String(), y.String())
		if err != nil {
			return err
		}

		j.JSONWebKey = jose.JSONWebKey{Key: key, KeyID: gjson.GetBytes(data, "kid").String()}
	default:
		return diderrors.New(diderrors.Encoding, diderrors.ErrInvalidJWK,
			"unsupported kty %q with crv %q", kty.String(), crv.String())
	}

	j.Kty = kty.String()
	j.Crv = crv.String()

	return nil
}

func secp256k1Key(x, y string) (*ecdsa.PublicKey, error) {
	xb, err := decodeCoord(x)
	if err != nil {
		return nil, err
	}

	yb, err := decodeCoord(y)
	if err != nil {
		return nil, err
	}

	key := &ecdsa.PublicKey{Curve: btcec.S256(), X: new(big.Int).SetBytes(xb), Y: new(big.Int).SetBytes(yb)}
	if !key.Curve.IsOnCurve(key.X, key.Y) {
		return nil, diderrors.New(diderrors.Key, diderrors.ErrPublicKeyDecodeError, "secp256k1 point is not on curve")
	}

	return key, nil
}

func decodeCoord(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, diderrors.Wrap(err, diderrors.Encoding, diderrors.ErrInvalidJWK, "base64url member")
	}

	return b, nil
}

func padCoord(n *big.Int) []byte {
	buf := make([]byte, secp256k1CoordLen)

	return n.FillBytes(buf)
}

func checkLength(crv string, raw []byte) error {
	if len(raw) != curve25519KeySize {
		return diderrors.New(diderrors.Key, diderrors.ErrInvalidLength,
			"%s key must be %d bytes, got %d", crv, curve25519KeySize, len(raw))
	}

	return nil
}
