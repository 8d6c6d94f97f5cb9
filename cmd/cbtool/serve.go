package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cbtool/internal/api"
	"github.com/samcharles93/cbtool/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		maxBody     int64
		storeSize   int
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the validation REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Int64Flag{
				Name:        "max-body-bytes",
				Usage:       "largest accepted request body",
				Value:       api.DefaultMaxBodyBytes,
				Destination: &maxBody,
			},
			&cli.IntFlag{
				Name:        "reports",
				Usage:       "reports kept for GET /v1/reports/:id",
				Value:       api.DefaultStoreCapacity,
				Destination: &storeSize,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyServeConfig(cmd, cfg, &addr, &maxBody)

			server := api.NewServer(api.Config{
				MaxBodyBytes: maxBody,
				Store:        api.NewReportStore(storeSize),
				Logger:       log.With("component", "api"),
			})
			e := echo.New()
			if sl, ok := log.(*logger.SlogLogger); ok {
				e.Logger = sl.Slog()
			}
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "max_body_bytes", maxBody)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
