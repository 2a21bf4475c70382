/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

const (
	schemaV1 = `{
  "required": [
    "@context",
    "id"
  ],
  "properties": {
    "@context": {
      "oneOf": [
        {
          "type": "string",
          "pattern": "^https://(w3id.org|www.w3.org/ns)/did/v1$"
        },
        {
          "type": "array",
          "items": [
            {
              "type": "string",
              "pattern": "^https://(w3id.org|www.w3.org/ns)/did/v1$"
            }
          ],
          "uniqueItems": true,
          "additionalItems": {
            "type": "string"
          }
        }
      ]
    },
    "id": {
      "type": "string",
      "pattern": "^did:"
    },
    "verificationMethod": {
      "type": "array",
      "items": {
        "$ref": "#/definitions/verificationMethod"
      }
    },
    "authentication": {
      "type": "array",
      "items": {
        "type": "string"
      }
    },
    "keyAgreement": {
      "type": "array",
      "items": {
        "type": "string"
      }
    },
    "service": {
      "type": "array",
      "items": {
        "$ref": "#/definitions/service"
      }
    }
  },
  "definitions": {
    "verificationMethod": {
      "required": [
        "id",
        "type",
        "controller"
      ],
      "type": "object",
      "minProperties": 4,
      "properties": {
        "id": {
          "type": "string",
          "pattern": "#"
        },
        "type": {
          "type": "string"
        },
        "controller": {
          "type": "string"
        },
        "publicKeyJwk": {
          "type": "object",
          "required": [
            "kty",
            "crv",
            "x"
          ]
        },
        "publicKeyMultibase": {
          "type": "string",
          "pattern": "^z"
        }
      }
    },
    "service": {
      "required": [
        "id",
        "type",
        "serviceEndpoint"
      ],
      "type": "object",
      "properties": {
        "id": {
          "type": "string"
        },
        "type": {
          "oneOf": [
            {
              "type": "string"
            },
            {
              "type": "array",
              "items": {
                "type": "string"
              },
              "minItems": 1
            }
          ]
        },
        "serviceEndpoint": {
          "oneOf": [
            {
              "type": "string"
            },
            {
              "type": "object",
              "required": [
                "uri"
              ],
              "properties": {
                "uri": {
                  "type": "string"
                },
                "accept": {
                  "type": "array",
                  "items": {
                    "type": "string"
                  }
                },
                "routingKeys": {
                  "type": "array",
                  "items": {
                    "type": "string"
                  }
                }
              }
            }
          ]
        }
      }
    }
  }
}`
)
