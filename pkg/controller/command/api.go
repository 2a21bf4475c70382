/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package command

import (
	"io"
)

// Exec is controller command execution function type.
type Exec func(rw io.Writer, req io.Reader) Error

// Handler for each controller command.
type Handler interface {
	// name of the command
	Name() string
	// method name of the command
	Method() string
	// execute function of the command
	Handle() Exec
}

// NewHandler returns a Handler running exec for the given command name and method.
func NewHandler(name, method string, exec Exec) Handler {
	return &commandHandler{name: name, method: method, handle: exec}
}

type commandHandler struct {
	name   string
	method string
	handle Exec
}

func (c *commandHandler) Name() string {
	return c.name
}

func (c *commandHandler) Method() string {
	return c.method
}

func (c *commandHandler) Handle() Exec {
	return c.handle
}
