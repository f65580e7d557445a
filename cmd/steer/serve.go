package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/samcharles93/steer/internal/api"
	"github.com/samcharles93/steer/internal/version"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		rateLimit   float64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the generations REST API",
		Flags: append(loggingFlags(),
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
			&cli.Float64Flag{
				Name:        "rate-limit",
				Usage:       "max requests per second (0 = unlimited)",
				Destination: &rateLimit,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			applyLoggingConfig(c, cfg)
			applyServeConfig(c, cfg, &addr, &rateLimit)
			log := newLogger()

			store := api.NewGenerationStore()
			provider := api.NewLocalEngineProvider(cfg.genDefaults())
			server := api.NewServer(store, provider)

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			if rateLimit > 0 {
				e.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(rateLimit), rateBurst(rateLimit))))
			}
			server.Register(e)

			log.Info("starting server", "address", addr, "rate_limit", rateLimit, "version", version.String())
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

// rateLimitMiddleware rejects requests above the shared limit with 429.
func rateLimitMiddleware(limiter *rate.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			if !limiter.Allow() {
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"error": api.ResponseError{
						Message: "rate limit exceeded",
						Type:    "rate_limit_error",
					},
				})
			}
			return next(c)
		}
	}
}

func rateBurst(limit float64) int {
	burst := int(limit)
	if burst < 1 {
		burst = 1
	}
	return burst
}
