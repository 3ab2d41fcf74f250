// Package speech turns a spoken answer into text.
//
// Every failure mode (nothing said, unintelligible audio, recorder or
// service errors, timeouts) collapses to an empty transcript. Callers never
// see an error from a Transcriber.
package speech

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Transcriber prompts the user, listens for a single utterance in the
// language identified by languageTag (BCP-47) and returns what was said.
type Transcriber interface {
	Transcribe(ctx context.Context, prompt, languageTag string, listenTimeout, phraseTimeLimit time.Duration) string
}

// Unavailable is used when no speech service is configured. It shows the
// prompt and always hears nothing.
type Unavailable struct {
	Out io.Writer
}

func (u Unavailable) Transcribe(_ context.Context, prompt, _ string, _, _ time.Duration) string {
	if u.Out != nil {
		fmt.Fprintln(u.Out, prompt)
		fmt.Fprintln(u.Out, "(speech recognition is not configured)")
	}
	return ""
}
