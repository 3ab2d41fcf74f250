package lesson

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/catalog"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/speech"
)

const VoicePrompt = "Speak your answer now:"

// AnswerSource supplies typed answers.
type AnswerSource interface {
	ReadAnswer(ctx context.Context, q catalog.Question) (string, error)
}

// View renders lesson progress.
type View interface {
	ShowQuestion(index int, q catalog.Question, ch Channel)
	ShowEvaluation(ev Evaluation)
	ShowReport(r Report)
}

// Runner drives a Session to completion, collecting typed answers from an
// AnswerSource and spoken ones from a speech.Transcriber.
type Runner struct {
	text            AnswerSource
	voice           speech.Transcriber
	listenTimeout   time.Duration
	phraseTimeLimit time.Duration
	logger          logging.Logger
}

func NewRunner(text AnswerSource, voice speech.Transcriber, listenTimeout, phraseTimeLimit time.Duration, logger logging.Logger) *Runner {
	return &Runner{
		text:            text,
		voice:           voice,
		listenTimeout:   listenTimeout,
		phraseTimeLimit: phraseTimeLimit,
		logger:          logger,
	}
}

// Run plays the whole lesson and returns its report. Cancelling ctx aborts
// between questions.
func (r *Runner) Run(ctx context.Context, l catalog.Lesson, view View) (Report, error) {
	s := Start(l)
	r.logger.Debug(ctx, "lesson started", "lesson", l.Name, "lang", l.LanguageCode, "questions", len(l.Questions))

	for {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		q, ok := s.PresentCurrent()
		if !ok {
			break
		}

		index, ch := s.Index(), s.Channel()
		view.ShowQuestion(index, q, ch)

		answer, err := r.collect(ctx, q, l.LanguageCode, ch)
		if err != nil {
			return Report{}, fmt.Errorf("question %d: %w", index+1, err)
		}

		ev, err := s.SubmitAnswer(answer)
		if err != nil {
			return Report{}, err
		}
		view.ShowEvaluation(ev)
	}

	report, err := s.Finish()
	if err != nil {
		return Report{}, err
	}
	r.logger.Info(ctx, "lesson finished", "lesson", report.Lesson, "score", report.Score, "total", report.Total)
	view.ShowReport(report)
	return report, nil
}

func (r *Runner) collect(ctx context.Context, q catalog.Question, lang string, ch Channel) (string, error) {
	if ch == ChannelVoice {
		return r.voice.Transcribe(ctx, VoicePrompt, lang, r.listenTimeout, r.phraseTimeLimit), nil
	}
	return r.text.ReadAnswer(ctx, q)
}
