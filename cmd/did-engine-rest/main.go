/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package did-engine-rest (DID Engine REST Server) resolves and creates peer and prism DIDs over HTTP.
//
// Terms Of Service:
//
//	Schemes: https
//	Version: 0.1.0
//	License: SPDX-License-Identifier: Apache-2.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package main

import (
	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-did-engine/cmd/did-engine-rest/startcmd"
	"github.com/hyperledger/aries-did-engine/pkg/common/log"
)

// This is an application which starts the DID engine controller API on given port.
func main() {
	rootCmd := &cobra.Command{
		Use: "did-engine-rest",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	logger := log.New("did-engine/rest-server")

	startCmd, err := startcmd.Cmd(&startcmd.HTTPServer{})
	if err != nil {
		logger.Fatalf(err.Error())
	}

	rootCmd.AddCommand(startCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatalf("Failed to run did-engine-rest: %s", err)
	}
}
