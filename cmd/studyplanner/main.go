package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/yungbote/studyplanner-backend/internal/app"
	"github.com/yungbote/studyplanner-backend/internal/cli"
	"github.com/yungbote/studyplanner-backend/internal/platform/logger"
	"github.com/yungbote/studyplanner-backend/internal/platform/shutdown"
	"github.com/yungbote/studyplanner-backend/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	cfg := app.LoadConfig()

	a := &cli.App{
		Plans: func(ctx context.Context) (services.StudyPlanService, error) {
			return app.NewStudyPlanService(ctx, logger.Nop(), cfg, nil)
		},
		Quiz: func() (services.QuizService, error) {
			return app.NewQuizService(logger.Nop(), cfg, nil)
		},
		Serve: func(ctx context.Context, port string) error {
			if p := strings.TrimSpace(port); p != "" {
				cfg.Port = p
			}
			srv, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer srv.Close()
			return srv.Run(ctx)
		},
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}
