/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package mocklogger provides a logger that records messages for assertions in tests.
package mocklogger

import (
	"fmt"
	"sync"

	"github.com/hyperledger/aries-framework-go/spi/log"
)

// MockLogger is a mocked logger that can be used for testing.
type MockLogger struct {
	mu       sync.Mutex
	AllLogs  []string
	ErrorLog string
	WarnLog  string
}

func (l *MockLogger) add(level, msg string, args ...interface{}) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf(msg, args...)
	l.AllLogs = append(l.AllLogs, level+" "+line)

	return line
}

// Fatalf records a fatal message.
func (l *MockLogger) Fatalf(msg string, args ...interface{}) { l.add("FATAL", msg, args...) }

// Panicf records a panic message.
func (l *MockLogger) Panicf(msg string, args ...interface{}) { l.add("PANIC", msg, args...) }

// Debugf records a debug message.
func (l *MockLogger) Debugf(msg string, args ...interface{}) { l.add("DEBUG", msg, args...) }

// Infof records an info message.
func (l *MockLogger) Infof(msg string, args ...interface{}) { l.add("INFO", msg, args...) }

// Warnf records a warning and keeps it in WarnLog.
func (l *MockLogger) Warnf(msg string, args ...interface{}) {
	line := l.add("WARN", msg, args...)

	l.mu.Lock()
	l.WarnLog = line
	l.mu.Unlock()
}

// Errorf records an error and keeps it in ErrorLog.
func (l *MockLogger) Errorf(msg string, args ...interface{}) {
	line := l.add("ERROR", msg, args...)

	l.mu.Lock()
	l.ErrorLog = line
	l.mu.Unlock()
}

// Provider is a mock logger provider that can be used for testing.
type Provider struct {
	MockLogger *MockLogger
}

// GetLogger returns the shared mock logger.
func (p *Provider) GetLogger(string) log.Logger {
	return p.MockLogger
}
