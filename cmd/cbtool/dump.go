package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cbtool/internal/report"
	"github.com/samcharles93/cbtool/pkg/cb"
)

func dumpCmd() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "Print the fields of a compact binary range",
		ArgsUsage: "FILE",
		Flags:     []cli.Flag{formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("error: dump takes exactly one FILE", 1)
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

			fields, err := cb.ReadRange(f.Data)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %s: %v", path, err), 2)
			}
			nodes := make([]report.Node, 0, len(fields))
			for _, field := range fields {
				nodes = append(nodes, report.Tree(field))
			}

			if format != report.FormatText {
				return report.Encode(os.Stdout, format, nodes)
			}
			for _, n := range nodes {
				if err := report.WriteTree(os.Stdout, n); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
