package phoneme

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ExecG2P is a reference G2PEngine that shells out to an external
// grapheme-to-phoneme binary, mirroring the teacher's "cli" TTS backend:
// no native Go binding is assumed, the collaborator is a configured
// executable on PATH or an absolute path.
//
// The binary is expected to print one whitespace-separated phoneme per
// token on stdout given the passphrase text as its sole argument.
type ExecG2P struct {
	Path    string
	Timeout time.Duration
}

// Phonemize runs the configured binary and parses its stdout.
func (e ExecG2P) Phonemize(text string) ([]string, error) {
	timeout := e.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.Path, text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("g2p binary %q: %w: %s", e.Path, err, stderr.String())
	}

	fields := strings.Fields(stdout.String())
	return fields, nil
}
