package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/studyplanner-backend/internal/cli/formatter"
)

func newQuizCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Print the assessment quiz questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Quiz == nil {
				return errors.New("quiz is not configured")
			}
			svc, err := app.Quiz()
			if err != nil {
				return err
			}
			questions := svc.Questions()

			out := cmd.OutOrStdout()
			if asJSON || !app.interactive() {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"questions": questions})
			}
			_, err = fmt.Fprint(out, formatter.FormatQuiz(questions))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the questions as JSON")

	return cmd
}
