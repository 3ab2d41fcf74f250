package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/polyglot/internal/catalog"
	"github.com/dmitrijs2005/polyglot/internal/lesson"
)

// SelectLanguage lets the user pick a language and a lesson, plays the
// lesson and saves the result.
func (a *App) SelectLanguage(ctx context.Context) error {
	languages := a.catalog.ListLanguages()
	if len(languages) == 0 {
		a.println("No languages available yet.")
		return nil
	}

	a.println()
	a.println(promptStyle.Render("Available Languages:"))
	a.println(menuStyle.Render(numbered(languages)))
	n, err := GetChoice(a.reader, "Select a language (enter number)", len(languages), "Invalid language number. Please try again.", a.out)
	if err != nil {
		return err
	}
	language := languages[n-1]

	lessons, err := a.catalog.LessonsFor(language)
	if err != nil {
		return err
	}
	if len(lessons) == 0 {
		a.println("No lessons available for " + language + " yet.")
		return nil
	}

	names := make([]string, 0, len(lessons))
	for _, l := range lessons {
		names = append(names, l.Name)
	}
	a.println()
	a.println(banner("Lessons for " + language))
	a.println(menuStyle.Render(numbered(names)))
	n, err = GetChoice(a.reader, "Select a lesson (enter number)", len(lessons), "Invalid lesson number. Please try again.", a.out)
	if err != nil {
		return err
	}

	return a.playLesson(ctx, lessons[n-1])
}

func (a *App) playLesson(ctx context.Context, l catalog.Lesson) error {
	a.println()
	a.println(banner("Starting Lesson: " + l.Name))

	report, err := a.runner.Run(ctx, l, a)
	if err != nil {
		return err
	}

	user, _ := a.session.Current()
	if _, err := a.progress.Record(ctx, user, report); err != nil {
		a.logger.Error(ctx, "saving progress failed", "err", err)
		a.println(errorStyle.Render("Could not save your progress."))
	}
	return nil
}

// ReadAnswer reads a typed answer. It implements lesson.AnswerSource.
func (a *App) ReadAnswer(_ context.Context, _ catalog.Question) (string, error) {
	return GetSimpleText(a.reader, "Your answer", a.out)
}

// ShowQuestion implements lesson.View.
func (a *App) ShowQuestion(index int, q catalog.Question, ch lesson.Channel) {
	a.println()
	a.println(promptStyle.Render(fmt.Sprintf("Question %d: %s", index+1, q.Prompt)))
	if ch == lesson.ChannelVoice {
		a.println(mutedStyle.Render("Please respond using your voice."))
	}
}

// ShowEvaluation implements lesson.View.
func (a *App) ShowEvaluation(ev lesson.Evaluation) {
	if ev.Channel == lesson.ChannelVoice {
		if ev.Given == "" {
			a.println(mutedStyle.Render("No answer was heard."))
		} else {
			a.println(mutedStyle.Render(fmt.Sprintf("You said: %q", ev.Given)))
		}
	}
	if ev.Correct {
		a.println(correctStyle.Render("Correct!"))
		return
	}
	a.println(errorStyle.Render("Incorrect. The correct answer was: " + ev.Expected))
}

// ShowReport implements lesson.View.
func (a *App) ShowReport(r lesson.Report) {
	a.println()
	a.println(banner("Lesson '" + r.Lesson + "' Complete!"))
	a.println(fmt.Sprintf("You got %d out of %d questions correct.", r.Score, r.Total))
}
