package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultRecordCommand captures 16 kHz mono WAV from the default input
// device with SoX and writes it to stdout.
const DefaultRecordCommand = "rec -q -c 1 -r 16000 -b 16 -t wav - trim 0 {seconds}"

var ErrNoAudio = errors.New("no audio captured")

// Recorder captures one utterance as WAV bytes.
type Recorder interface {
	Record(ctx context.Context, listenTimeout, phraseTimeLimit time.Duration) ([]byte, error)
}

var execCommandContext = exec.CommandContext

// CommandRecorder runs an external command that writes audio to stdout.
// The token {seconds} in the command is replaced by the phrase time limit.
type CommandRecorder struct {
	args []string
}

func NewCommandRecorder(command string) (*CommandRecorder, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, errors.New("record command is empty")
	}
	return &CommandRecorder{args: args}, nil
}

func (r *CommandRecorder) Record(ctx context.Context, listenTimeout, phraseTimeLimit time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, listenTimeout+phraseTimeLimit)
	defer cancel()

	seconds := strconv.Itoa(int(phraseTimeLimit.Round(time.Second) / time.Second))
	args := make([]string, len(r.args))
	for i, a := range r.args {
		args[i] = strings.ReplaceAll(a, "{seconds}", seconds)
	}

	var stdout, stderr bytes.Buffer
	cmd := execCommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("record: %w", ctx.Err())
		}
		return nil, fmt.Errorf("record: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, ErrNoAudio
	}
	return stdout.Bytes(), nil
}
