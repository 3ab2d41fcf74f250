package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/logging"
	"google.golang.org/genai"
)

const instruction = "Transcribe the spoken answer in this recording. The speaker is using the language with BCP-47 tag %s. " +
	"Reply with the transcription only, without punctuation or commentary. " +
	"If nothing intelligible was said, reply with an empty message."

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiTranscriber records with a Recorder and transcribes the audio with
// a Gemini model.
type GeminiTranscriber struct {
	recorder Recorder
	models   contentGenerator
	model    string
	out      io.Writer
	logger   logging.Logger
}

func NewGeminiTranscriber(ctx context.Context, apiKey, model string, recorder Recorder, out io.Writer, logger logging.Logger) (*GeminiTranscriber, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is empty")
	}
	if model == "" {
		return nil, errors.New("speech model is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return newGeminiTranscriber(client.Models, model, recorder, out, logger), nil
}

func newGeminiTranscriber(models contentGenerator, model string, recorder Recorder, out io.Writer, logger logging.Logger) *GeminiTranscriber {
	return &GeminiTranscriber{
		recorder: recorder,
		models:   models,
		model:    model,
		out:      out,
		logger:   logger.With("component", "speech", "model", model),
	}
}

func (g *GeminiTranscriber) Transcribe(ctx context.Context, prompt, languageTag string, listenTimeout, phraseTimeLimit time.Duration) string {
	if g.out != nil {
		fmt.Fprintln(g.out, prompt)
	}

	audio, err := g.recorder.Record(ctx, listenTimeout, phraseTimeLimit)
	if err != nil {
		g.logger.Warn(ctx, "recording failed", "err", err)
		return ""
	}

	text, err := g.transcribe(ctx, audio, languageTag, listenTimeout+phraseTimeLimit)
	if err != nil {
		g.logger.Warn(ctx, "transcription failed", "lang", languageTag, "err", err)
		return ""
	}
	if text == "" {
		g.logger.Warn(ctx, "speech not understood", "lang", languageTag)
	}
	return text
}

func (g *GeminiTranscriber) transcribe(ctx context.Context, audio []byte, languageTag string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: fmt.Sprintf(instruction, languageTag)},
			{InlineData: &genai.Blob{Data: audio, MIMEType: "audio/wav"}},
		},
	}}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}
	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", errors.New("response blocked by safety filters")
	}
	if cand.Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
