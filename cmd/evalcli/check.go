package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/speedrun-coding/backend/problem/domain"
	"github.com/urfave/cli/v3"
)

func checkThresholdsCmd() *cli.Command {
	return &cli.Command{
		Name:  "check-thresholds",
		Usage: "report time threshold tables that rank submissions unexpectedly",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "problem", Aliases: []string{"p"}, Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			bad := 0
			for _, path := range cmd.StringSlice("problem") {
				p, err := loadProblem(path)
				if err != nil {
					return err
				}
				if printThresholdWarnings(os.Stdout, p) > 0 {
					bad++
				}
			}
			if bad > 0 {
				return fmt.Errorf("%d problem(s) have threshold warnings", bad)
			}
			return nil
		},
	}
}

func printThresholdWarnings(w io.Writer, p domain.Problem) int {
	warnings := domain.ValidateThresholds(p.TimeThresholds)
	if len(warnings) == 0 {
		fmt.Fprintf(w, "%s %s\n", color.GreenString("ok"), p.Slug)
		return 0
	}
	fmt.Fprintf(w, "%s %s\n", color.YellowString("warn"), p.Slug)
	for _, warning := range warnings {
		fmt.Fprintf(w, "  - %s\n", warning)
	}
	return len(warnings)
}
