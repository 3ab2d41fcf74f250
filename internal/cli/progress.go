package cli

import (
	"context"
	"fmt"
)

// ViewProgress lists the user's most recent lessons.
func (a *App) ViewProgress(ctx context.Context) error {
	user, _ := a.session.Current()

	history, err := a.progress.History(ctx, user, historyLimit)
	if err != nil {
		a.logger.Error(ctx, "loading progress failed", "err", err)
		a.println(errorStyle.Render("Could not load your progress."))
		return nil
	}

	a.println()
	a.println(banner("Progress for " + user))
	if len(history) == 0 {
		a.println("No lessons completed yet.")
		return nil
	}
	for _, r := range history {
		a.println(menuStyle.Render(fmt.Sprintf("%s  %-6s %-20s %d/%d",
			r.CompletedAt.Local().Format("2006-01-02 15:04"), r.Language, r.Lesson, r.Score, r.Total)))
	}
	return nil
}
