package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/kelexine/winwatch/pkg/cli/config"
	"github.com/kelexine/winwatch/pkg/domain/model"
	"github.com/kelexine/winwatch/pkg/infra/actions"
	"github.com/kelexine/winwatch/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdDetect() *cli.Command {
	var (
		indexCfg  config.Index
		ledgerCfg config.Ledger
		matrixCfg config.Matrix
		notifyCfg config.Notify

		force      bool
		skipBuild  bool
		outputPath string
	)

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "force",
			Usage:       "Marker for externally forced runs (no effect on detection itself)",
			Destination: &force,
			Sources:     cli.EnvVars("WINWATCH_FORCE"),
		},
		&cli.BoolFlag{
			Name:        "skip-build",
			Usage:       "Advise the downstream CI layer to skip builds (matrix is still emitted)",
			Destination: &skipBuild,
			Sources:     cli.EnvVars("WINWATCH_SKIP_BUILD"),
		},
		&cli.StringFlag{
			Name:        "output",
			Usage:       "GitHub Actions output file (skipped when empty)",
			Destination: &outputPath,
			Sources:     cli.EnvVars("WINWATCH_OUTPUT", "GITHUB_OUTPUT"),
		},
	}
	flags = append(flags, indexCfg.Flags()...)
	flags = append(flags, ledgerCfg.Flags()...)
	flags = append(flags, matrixCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)

	return &cli.Command{
		Name:    "detect",
		Aliases: []string{"d"},
		Usage:   "Run one detection pass and emit the build matrix",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting release detection",
				slog.Bool("force", force),
				slog.Bool("skip_build", skipBuild),
			)

			matrixTables, err := matrixCfg.Load()
			if err != nil {
				return err
			}

			store, err := ledgerCfg.Store(ctx)
			if err != nil {
				return err
			}

			notifiers, err := notifyCfg.Notifiers()
			if err != nil {
				return err
			}

			uc, err := usecase.NewDetection(indexCfg.Fetcher(), store, matrixTables,
				usecase.WithNotifiers(notifiers...),
			)
			if err != nil {
				return err
			}

			result, err := uc.Detect(ctx)
			if err != nil {
				return goerr.Wrap(err, "detection run failed")
			}

			if outputPath != "" {
				if err := actions.WriteOutput(outputPath, result, skipBuild); err != nil {
					return err
				}
				logger.Info("Wrote actions output", slog.String("path", outputPath))
			}

			printSummary(result)
			return nil
		},
	}
}

// printSummary writes the human-readable run summary to stdout.
func printSummary(result *model.DetectionResult) {
	header := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)

	header.Printf("Detection run #%d (%s)\n", result.CheckCount, result.CheckedAt.Format("2006-01-02 15:04:05"))

	if !result.HasNew {
		fmt.Println("No new releases detected")
		return
	}

	good.Printf("Found %d new release(s)\n", len(result.NewReleases))
	for _, release := range result.NewReleases {
		marker := "+"
		if !release.Version.Known() {
			marker = "?"
		}
		fmt.Printf("  %s %s [%s] build %s (%s)\n",
			marker, release.Version, release.Channel, release.BuildNumber, release.Title)
	}
	fmt.Printf("Build matrix: %d job(s)\n", len(result.Matrix.Include))
}
