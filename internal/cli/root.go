package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yungbote/studyplanner-backend/internal/services"
)

// App holds what the commands need. Plans is built lazily so commands that
// never call the model run without an API key.
type App struct {
	Plans func(ctx context.Context) (services.StudyPlanService, error)
	Quiz  func() (services.QuizService, error)
	Serve func(ctx context.Context, port string) error

	// IsInteractive reports whether stdout is a terminal.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "studyplanner" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studyplanner",
		Short:         "Generate IT certification study plans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newGenerateCmd(app),
		newQuizCmd(app),
	)

	return root
}
