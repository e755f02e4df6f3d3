package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/studyplanner-backend/internal/cli/formatter"
	"github.com/yungbote/studyplanner-backend/internal/domain/studyplan"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		c       studyplan.PlanConstraints
		asJSON  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a study plan and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.WeakTopics = studyplan.CleanTopics(c.WeakTopics)
			if err := c.Validate(); err != nil {
				return err
			}
			if app.Plans == nil {
				return errors.New("study plan generation is not configured")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			plans, err := app.Plans(ctx)
			if err != nil {
				return err
			}
			plan, err := plans.Generate(ctx, c)
			if err != nil {
				return fmt.Errorf("generate study plan: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON || !app.interactive() {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}
			_, err = fmt.Fprint(out, formatter.FormatPlan(plan))
			return err
		},
	}

	f := cmd.Flags()
	f.Float64Var(&c.HoursPerWeek, "hours", 0, "Study hours per week")
	f.StringVar(&c.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&c.Deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	f.StringArrayVar(&c.WeakTopics, "weak", nil, "Weak topic to prioritize (repeatable)")
	f.StringArrayVar(&c.MaterialNames, "material", nil, "Study material title (repeatable)")
	f.BoolVar(&asJSON, "json", false, "Print the plan as JSON")
	f.DurationVar(&timeout, "timeout", 90*time.Second, "Generation deadline (0 disables)")
	_ = cmd.MarkFlagRequired("hours")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("deadline")

	return cmd
}
