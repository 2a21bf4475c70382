/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package log exposes the moduled logger to the DID engine packages.
// Every engine logger is created with New("did-engine/<module>") so levels can be tuned per package.
package log

import (
	"github.com/hyperledger/aries-framework-go/component/log"
	spi "github.com/hyperledger/aries-framework-go/spi/log"
)

// Log is a module logger; the underlying logger is created on first use.
type Log = log.Log

// New returns the logger of the given module.
func New(module string) *Log {
	return log.New(module)
}

// Initialize sets a custom logging provider. It must be called before any line is logged.
func Initialize(l spi.LoggerProvider) {
	log.Initialize(l)
}

// SetLevel sets the log level for the given module. An empty module sets the default for every module.
func SetLevel(module string, level spi.Level) {
	log.SetLevel(module, level)
}

// GetLevel returns the log level for the given module.
func GetLevel(module string) spi.Level {
	return log.GetLevel(module)
}

// IsEnabledFor checks if the given log level is enabled for the given module.
func IsEnabledFor(module string, level spi.Level) bool {
	return log.IsEnabledFor(module, level)
}

// ParseLevel returns the log level from a string representation.
func ParseLevel(level string) (spi.Level, error) {
	return log.ParseLevel(level)
}
