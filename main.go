package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"triagebot/internal/app"
	"triagebot/internal/config"
)

const version = "0.1.0"

func main() {
	cliApp := &cli.App{
		Name:    "triagebot",
		Usage:   "Automated issue triage and reporting for a GitHub repository",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "monitor",
				Usage: "Poll for new issues and post automated triage responses",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "once",
						Usage: "Run a single poll cycle and exit",
					},
				},
				Action: func(c *cli.Context) error {
					cfg := config.Load(c.String("config"))
					return app.RunMonitor(cfg, c.Bool("once"))
				},
			},
			{
				Name:  "report",
				Usage: "Generate an aggregate issues report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "period",
						Aliases: []string{"p"},
						Usage:   "Report period: daily, weekly, or monthly",
						Value:   "monthly",
					},
				},
				Action: func(c *cli.Context) error {
					cfg := config.Load(c.String("config"))
					return app.RunReport(cfg, c.String("period"))
				},
			},
			{
				Name:  "history",
				Usage: "Show recent archived triage decisions",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "days",
						Usage: "How far back to look",
						Value: 30,
					},
				},
				Action: func(c *cli.Context) error {
					cfg := config.Load(c.String("config"))
					return app.RunHistory(cfg, c.Int("days"))
				},
			},
			{
				Name:      "preview",
				Usage:     "Classify one issue and print the response without posting it",
				ArgsUsage: "ISSUE_NUMBER",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one issue number")
					}
					var number int64
					if _, err := fmt.Sscanf(c.Args().First(), "%d", &number); err != nil {
						return fmt.Errorf("invalid issue number '%s'", c.Args().First())
					}
					cfg := config.Load(c.String("config"))
					return app.TriagePreview(cfg, number)
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
