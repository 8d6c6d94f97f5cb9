package main

import (
	"github.com/urfave/cli/v3"
)

var (
	cfg        Config
	configFile string
	logLevel   string
	logFormat  string
	debug      bool

	modeList     []string
	outputFormat string
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml",
			Value:       configPath(),
			Sources:     cli.EnvVars("CBTOOL_CONFIG"),
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func modeFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:        "mode",
		Usage:       "checks to run (names, format, padding, package, all, none; prefix with - to remove)",
		Destination: &modeList,
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "format",
		Aliases:     []string{"o"},
		Usage:       "output format (text, json, yaml)",
		Value:       "text",
		Destination: &outputFormat,
	}
}
