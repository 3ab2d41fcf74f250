// Package lesson runs a single lesson: it presents questions in order,
// evaluates answers and keeps the score.
package lesson

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/polyglot/internal/catalog"
	"github.com/dmitrijs2005/polyglot/internal/common"
)

// ErrNoPendingQuestion is returned when an answer is submitted while no
// question is awaiting one.
var ErrNoPendingQuestion = errors.New("no question awaiting an answer")

// State is the position of a session in its lifecycle.
type State int

const (
	StateIdle           State = iota // not started
	StatePresenting                  // a question is about to be shown
	StateAwaitingAnswer              // the current question waits for an answer
	StateComplete                    // every question has been answered
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePresenting:
		return "presenting"
	case StateAwaitingAnswer:
		return "awaiting-answer"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Channel is how an answer is collected.
type Channel int

const (
	ChannelText Channel = iota
	ChannelVoice
)

func (c Channel) String() string {
	if c == ChannelVoice {
		return "voice"
	}
	return "text"
}

const voiceIndex = 2

// ChannelFor returns the channel for the question at index. The third
// question of every lesson is answered by voice.
func ChannelFor(index int) Channel {
	if index == voiceIndex {
		return ChannelVoice
	}
	return ChannelText
}

// Evaluation is the outcome of one answered question.
type Evaluation struct {
	Index    int
	Prompt   string
	Expected string
	Given    string
	Correct  bool
	Channel  Channel
}

// Report summarizes a finished lesson.
type Report struct {
	Lesson string
	// Language is the BCP-47 code of the lesson's language.
	Language string
	Score    int
	Total    int
	Answers  []Evaluation
}

// Incorrect is the number of questions answered wrongly.
func (r Report) Incorrect() int {
	return r.Total - r.Score
}

// Session is the progress of one user through one lesson. It is not safe
// for concurrent use.
type Session struct {
	lesson  catalog.Lesson
	index   int
	score   int
	state   State
	answers []Evaluation
}

// Start begins a lesson at its first question.
func Start(l catalog.Lesson) *Session {
	return &Session{
		lesson:  l,
		state:   StatePresenting,
		answers: make([]Evaluation, 0, len(l.Questions)),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Index is the position of the current question, equal to the number of
// questions answered so far.
func (s *Session) Index() int { return s.index }

// Score is the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// Total is the number of questions in the lesson.
func (s *Session) Total() int { return len(s.lesson.Questions) }

// Channel returns the answer channel of the current question.
func (s *Session) Channel() Channel {
	return ChannelFor(s.index)
}

// PresentCurrent returns the current question and starts waiting for its
// answer. When every question has been answered it returns false and the
// session is complete.
func (s *Session) PresentCurrent() (catalog.Question, bool) {
	switch s.state {
	case StateComplete:
		return catalog.Question{}, false
	case StateAwaitingAnswer:
		return s.lesson.Questions[s.index], true
	}

	if s.index >= len(s.lesson.Questions) {
		s.state = StateComplete
		return catalog.Question{}, false
	}
	s.state = StateAwaitingAnswer
	return s.lesson.Questions[s.index], true
}

// SubmitAnswer evaluates raw against the current question and advances.
// Surrounding whitespace and letter case are ignored; accents are not.
func (s *Session) SubmitAnswer(raw string) (Evaluation, error) {
	if s.state != StateAwaitingAnswer {
		return Evaluation{}, ErrNoPendingQuestion
	}

	q := s.lesson.Questions[s.index]
	given := strings.TrimSpace(raw)
	ev := Evaluation{
		Index:    s.index,
		Prompt:   q.Prompt,
		Expected: q.ExpectedAnswer,
		Given:    given,
		Correct:  Matches(given, q.ExpectedAnswer),
		Channel:  ChannelFor(s.index),
	}
	if ev.Correct {
		s.score++
	}
	s.answers = append(s.answers, ev)

	s.index++
	if s.index >= len(s.lesson.Questions) {
		s.state = StateComplete
	} else {
		s.state = StatePresenting
	}
	return ev, nil
}

// Finish reports the final score. It may be called any number of times once
// the lesson is complete.
func (s *Session) Finish() (Report, error) {
	if s.state != StateComplete {
		if s.index < len(s.lesson.Questions) {
			return Report{}, common.ErrLessonNotComplete
		}
		s.state = StateComplete
	}

	answers := make([]Evaluation, len(s.answers))
	copy(answers, s.answers)
	return Report{
		Lesson:   s.lesson.Name,
		Language: s.lesson.LanguageCode,
		Score:    s.score,
		Total:    len(s.lesson.Questions),
		Answers:  answers,
	}, nil
}

// Matches reports whether given equals expected after trimming surrounding
// whitespace, ignoring case.
func Matches(given, expected string) bool {
	given = strings.TrimSpace(given)
	if given == "" {
		return false
	}
	return strings.EqualFold(given, strings.TrimSpace(expected))
}
