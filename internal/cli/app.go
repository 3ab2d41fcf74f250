package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/catalog"
	"github.com/dmitrijs2005/polyglot/internal/lesson"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/services"
	"github.com/dmitrijs2005/polyglot/internal/session"
	"github.com/dmitrijs2005/polyglot/internal/speech"
	"golang.org/x/term"
)

// historyLimit is how many past lessons View Progress shows.
const historyLimit = 10

type App struct {
	credentials services.CredentialService
	progress    services.ProgressService
	catalog     *catalog.Catalog
	runner      *lesson.Runner
	session     session.AuthSession

	reader *bufio.Reader
	out    io.Writer
	ttyFd  int
	tty    bool
	logger logging.Logger
}

// Options carries the collaborators of an App.
type Options struct {
	Credentials     services.CredentialService
	Progress        services.ProgressService
	Catalog         *catalog.Catalog
	Transcriber     speech.Transcriber
	ListenTimeout   time.Duration
	PhraseTimeLimit time.Duration
	In              io.Reader
	Out             io.Writer
	Logger          logging.Logger
}

func NewApp(o Options) *App {
	a := &App{
		credentials: o.Credentials,
		progress:    o.Progress,
		catalog:     o.Catalog,
		reader:      bufio.NewReader(o.In),
		out:         o.Out,
		logger:      o.Logger,
	}
	if f, ok := o.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.ttyFd, a.tty = int(f.Fd()), true
	}
	a.runner = lesson.NewRunner(a, o.Transcriber, o.ListenTimeout, o.PhraseTimeLimit, o.Logger)
	return a
}

// Run shows the menus until the user exits or the input ends.
func (a *App) Run(ctx context.Context) error {
	a.println(titleStyle.Render("Welcome to Polyglot!"))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			quit bool
			err  error
		)
		if _, ok := a.session.Current(); ok {
			err = a.mainMenu(ctx)
		} else {
			quit, err = a.authMenu(ctx)
		}

		if errors.Is(err, io.EOF) {
			a.println()
			a.println("Input closed. Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}
		if quit {
			a.println("Exiting Polyglot. Goodbye!")
			return nil
		}
	}
}

func (a *App) authMenu(ctx context.Context) (bool, error) {
	a.println()
	a.println(banner("Polyglot Authentication"))
	a.println(menuStyle.Render("1. Login\n2. Register\n3. Exit"))

	choice, err := GetChoice(a.reader, "Enter your choice", 3, "Invalid choice. Please try again.", a.out)
	if err != nil {
		return false, err
	}
	switch choice {
	case 1:
		return false, a.Login(ctx)
	case 2:
		return false, a.Register(ctx)
	}
	return true, nil
}

func (a *App) mainMenu(ctx context.Context) error {
	user, _ := a.session.Current()

	a.println()
	a.println(banner("Polyglot (logged in as: " + user + ")"))
	a.println(menuStyle.Render("1. Select a Language\n2. View Progress\n3. Logout"))

	choice, err := GetChoice(a.reader, "Enter your choice", 3, "Invalid choice. Please try again.", a.out)
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return a.SelectLanguage(ctx)
	case 2:
		return a.ViewProgress(ctx)
	}
	a.Logout(ctx)
	return nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func numbered(items []string) string {
	var sb strings.Builder
	for i, it := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, it)
	}
	return sb.String()
}
