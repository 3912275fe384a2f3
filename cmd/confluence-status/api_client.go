/*
Copyright © 2025 pencilcase
*/
package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/pencilcase/confluence-status/confluence"
)

// newAPIClient resolves the auth token via --auth-token-cmd and builds a
// Confluence API client from the current flag state.  Only commands that
// actually talk to Confluence call this, so `config show` and friends work
// without credentials.
func newAPIClient() (*confluence.API, error) {
	if len(AuthTokenCmd) < 1 {
		return nil, fmt.Errorf("cmd: please provide --auth-token-cmd")
	}

	tokenCmdOutput, err := exec.Command(AuthTokenCmd[0], AuthTokenCmd[1:]...).Output()
	if err != nil {
		return nil, fmt.Errorf("cmd: couldn't execute auth-token-cmd '%v': %w", AuthTokenCmd, err)
	}

	token := strings.Split(string(tokenCmdOutput), "\n")[0]

	api, err := confluence.NewAPI(
		ConfluenceInstance,
		AuthUsername,
		token)
	if err != nil {
		return nil, fmt.Errorf("cmd: couldn't instantiate Confluence API: %w", err)
	}

	return api, nil
}
