package internal

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Transcriber converts a voice capture into text. The microphone and
// speech-to-text stack is an external collaborator.
type Transcriber interface {
	Capture(ctx context.Context) (string, error)
}

// ExecTranscriber shells out to a speech-to-text command that records
// from the default input and prints the transcript on stdout.
type ExecTranscriber struct {
	Command []string
}

// Capture runs the configured command and returns the trimmed transcript.
func (t *ExecTranscriber) Capture(ctx context.Context) (string, error) {
	if len(t.Command) == 0 {
		return "", fmt.Errorf("no transcriber command configured")
	}
	cmd := exec.CommandContext(ctx, t.Command[0], t.Command[1:]...)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("running transcriber %s: %w", t.Command[0], err)
	}
	return strings.TrimSpace(string(out)), nil
}

// TranscriberFunc adapts a function to the Transcriber interface.
type TranscriberFunc func(ctx context.Context) (string, error)

func (f TranscriberFunc) Capture(ctx context.Context) (string, error) {
	return f(ctx)
}
