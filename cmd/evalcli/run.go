package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/speedrun-coding/backend/conf"
	"github.com/speedrun-coding/backend/execsrvc"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/subm/domain"
	"github.com/urfave/cli/v3"
)

func runCmd() *cli.Command {
	defaults := conf.Default().Exec
	return &cli.Command{
		Name:  "run",
		Usage: "execute a solution against a problem file and print the verdict",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "problem", Aliases: []string{"p"}, Required: true, Usage: "problem TOML file"},
			&cli.StringFlag{Name: "lang", Aliases: []string{"l"}, Required: true},
			&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Required: true, Usage: "solution source file"},
			&cli.StringFlag{Name: "started-at", Usage: "RFC3339 time the attempt started, defaults to now"},
			&cli.StringFlag{
				Name:    "engine-url",
				Value:   defaults.PistonApiUrl,
				Sources: cli.EnvVars("PISTON_API_URL"),
			},
			&cli.DurationFlag{Name: "simulation-delay", Value: 0},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "print program output and debug logs"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProblem(cmd.String("problem"))
			if err != nil {
				return err
			}
			code, err := os.ReadFile(cmd.String("code"))
			if err != nil {
				return fmt.Errorf("failed to read solution: %w", err)
			}

			startedAt := time.Now()
			if s := cmd.String("started-at"); s != "" {
				startedAt, err = time.Parse(time.RFC3339, s)
				if err != nil {
					return fmt.Errorf("invalid --started-at: %w", err)
				}
			}

			level := "warn"
			if cmd.Bool("verbose") {
				level = "debug"
			}
			log, err := logger.New(os.Stderr, level, "text")
			if err != nil {
				return err
			}

			exec := execsrvc.NewExecSrvc(log, execsrvc.Params{
				EngineUrl:       cmd.String("engine-url"),
				RunTimeout:      defaults.RunTimeout(),
				CompileTimeout:  defaults.CompileTimeout(),
				SimulationDelay: cmd.Duration("simulation-delay"),
			})
			res := exec.Execute(logger.WithLogger(ctx, log), execsrvc.ExecRequest{
				Language: cmd.String("lang"),
				SrcCode:  string(code),
				Harness:  p.HarnessFiles,
			})

			durationMs := domain.CalcDurationMs(startedAt, time.Now())
			passed := res.Status.Passed()
			rank := domain.CalcRank(passed, durationMs, p.TimeThresholds)

			printVerdict(os.Stdout, p.Title, res, durationMs, rank, cmd.Bool("verbose"))
			return nil
		},
	}
}

func printVerdict(w io.Writer, title string, res execsrvc.ExecResult, durationMs int64, rank string, verbose bool) {
	status := string(res.Status)
	switch {
	case res.Status.Passed():
		status = color.GreenString(status)
	case res.Status.Inconclusive():
		status = color.YellowString(status + " (inconclusive)")
	default:
		status = color.RedString(status)
	}

	fmt.Fprintf(w, "%s %s\n", color.New(color.Bold).Sprint("problem:"), title)
	fmt.Fprintf(w, "%s %s\n", color.New(color.Bold).Sprint("status: "), status)
	fmt.Fprintf(w, "%s %.1f min\n", color.New(color.Bold).Sprint("time:   "), float64(durationMs)/60000)
	fmt.Fprintf(w, "%s %s\n", color.New(color.Bold).Sprint("rank:   "), color.CyanString(rank))
	if res.DurationMs != nil {
		fmt.Fprintf(w, "%s %d ms\n", color.New(color.Bold).Sprint("run:    "), *res.DurationMs)
	}
	if res.ErrorMsg != nil {
		fmt.Fprintf(w, "%s %s\n", color.New(color.Bold).Sprint("error:  "), *res.ErrorMsg)
	}
	if verbose {
		if res.Stdout != nil && *res.Stdout != "" {
			fmt.Fprintf(w, "\n--- stdout ---\n%s\n", *res.Stdout)
		}
		if res.Stderr != nil && *res.Stderr != "" {
			fmt.Fprintf(w, "\n--- stderr ---\n%s\n", *res.Stderr)
		}
	}
}
