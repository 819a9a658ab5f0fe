//go:build !unix

package main

import (
	"errors"

	"github.com/lixenwraith/textconsole/config"
	"github.com/lixenwraith/textconsole/terminal"
)

func newTerminalBackend(*config.Config) (terminal.Backend, error) {
	return nil, errors.New("the ansi backend needs a unix terminal; use --backend tcell")
}
