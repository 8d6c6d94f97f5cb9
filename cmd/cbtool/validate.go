package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/samcharles93/cbtool/internal/logger"
	"github.com/samcharles93/cbtool/internal/report"
	"github.com/samcharles93/cbtool/pkg/cb"
)

func validateCmd() *cli.Command {
	var (
		kindName string
		jobs     int
	)

	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate compact binary files",
		ArgsUsage: "FILE... (- reads stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "kind",
				Aliases:     []string{"k"},
				Usage:       "shape to validate (field, range, attachment, package)",
				Value:       string(report.KindRange),
				Destination: &kindName,
			},
			modeFlag(),
			formatFlag(),
			&cli.IntFlag{
				Name:        "jobs",
				Aliases:     []string{"j"},
				Usage:       "files validated concurrently",
				Value:       runtime.NumCPU(),
				Destination: &jobs,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("error: at least one FILE is required", 1)
			}
			kind, err := report.ParseKind(kindName)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			applyOutputConfig(cmd, cfg, &jobs)
			format, err := report.ParseFormat(outputFormat)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			mode, err := resolveMode(cmd, cfg, kind)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			reports, err := validateFiles(ctx, log, paths, kind, mode, jobs)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := report.Write(os.Stdout, format, reports); err != nil {
				return err
			}

			invalid := 0
			for _, r := range reports {
				if !r.Valid {
					invalid++
				}
			}
			if invalid > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d inputs invalid", invalid, len(reports)), 2)
			}
			return nil
		},
	}
}

// validateFiles checks every path with at most jobs files open at once.
// Reports keep the order of paths.
func validateFiles(ctx context.Context, log logger.Logger, paths []string, kind report.Kind, mode cb.Mode, jobs int) ([]*report.Report, error) {
	reports := make([]*report.Report, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := validateFile(path, kind, mode)
			if err != nil {
				return err
			}
			log.Debug("validated", "path", path, "kind", string(kind), "valid", r.Valid, "errors", r.Errors)
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func validateFile(path string, kind report.Kind, mode cb.Mode) (*report.Report, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return report.Build(path, kind, mode, f.Data)
}
