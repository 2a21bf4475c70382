/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"testing"

	spi "github.com/hyperledger/aries-framework-go/spi/log"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-did-engine/pkg/common/log/mocklogger"
)

// TestCustomProvider runs first: the provider can only be set before the first line is logged.
func TestCustomProvider(t *testing.T) {
	const module = "did-engine/sample"

	mock := &mocklogger.MockLogger{}
	Initialize(&mocklogger.Provider{MockLogger: mock})

	logger := New(module)
	SetLevel(module, spi.WARNING)

	logger.Errorf("resolve %s failed", "did:prism:abc")
	logger.Warnf("cache miss")
	logger.Infof("not recorded")

	require.Equal(t, "resolve did:prism:abc failed", mock.ErrorLog)
	require.Equal(t, "cache miss", mock.WarnLog)
	require.NotContains(t, mock.AllLogs, "INFO not recorded")
}

func TestLevels(t *testing.T) {
	const module = "did-engine/levels"

	SetLevel(module, spi.ERROR)
	require.Equal(t, spi.ERROR, GetLevel(module))
	require.True(t, IsEnabledFor(module, spi.CRITICAL))
	require.False(t, IsEnabledFor(module, spi.WARNING))

	level, err := ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, spi.DEBUG, level)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}
