package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cbtool/internal/logger"
	"github.com/samcharles93/cbtool/internal/report"
	"github.com/samcharles93/cbtool/pkg/cb"
)

func packageCmd() *cli.Command {
	var (
		extract string
		outPath string
	)

	return &cli.Command{
		Name:      "package",
		Usage:     "List the root object and attachments of a package",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			formatFlag(),
			&cli.StringFlag{
				Name:        "extract",
				Usage:       "write the payload of the attachment with this hash instead of listing",
				Destination: &extract,
			},
			&cli.StringFlag{
				Name:        "out",
				Usage:       "file for --extract (default stdout)",
				Destination: &outPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			if cmd.Args().Len() != 1 {
				return cli.Exit("error: package takes exactly one FILE", 1)
			}
			path := cmd.Args().First()
			applyOutputConfig(cmd, cfg, nil)
			format, err := report.ParseFormat(outputFormat)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			f, err := openInput(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open input: %v", err), 1)
			}
			defer func() { _ = f.Close() }()

			if extract != "" {
				return extractAttachment(log, f.Data, extract, outPath)
			}

			r, err := report.Build(path, report.KindPackage, cb.ModeAll, f.Data)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := report.Write(os.Stdout, format, []*report.Report{r}); err != nil {
				return err
			}
			if !r.Valid {
				return cli.Exit(fmt.Sprintf("%s: invalid package", path), 2)
			}
			return nil
		},
	}
}

func extractAttachment(log logger.Logger, data []byte, hash, outPath string) error {
	h, err := cb.ParseHash(hash)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: --extract: %v", err), 1)
	}
	p, err := cb.ReadPackage(data)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), 2)
	}
	a, ok := p.Attachment(h)
	if !ok {
		return cli.Exit(fmt.Sprintf("error: no attachment with hash %s", h), 1)
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		out, err := os.Create(outPath)
		if err != nil {
			return cli.Exit(fmt.Sprintf("error: create output: %v", err), 1)
		}
		defer func() { _ = out.Close() }()
		w = out
	}
	if _, err := w.Write(a.Data); err != nil {
		return err
	}
	log.Info("extracted attachment", "hash", h.String(), "bytes", len(a.Data), "compact_binary", a.CompactBinary)
	return nil
}
