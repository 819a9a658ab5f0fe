//go:build unix

package main

import (
	"os"
	"time"

	"github.com/lixenwraith/textconsole/config"
	"github.com/lixenwraith/textconsole/terminal"
)

func newTerminalBackend(cfg *config.Config) (terminal.Backend, error) {
	b := terminal.NewUnixBackend(os.Stdin, os.Stdout)
	b.SetPollTimeout(time.Duration(cfg.EscapeTimeoutMs) * time.Millisecond)
	return b, nil
}
