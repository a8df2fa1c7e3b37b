package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"github.com/elmscz/elms-client/elms"
	"github.com/elmscz/elms-client/internal/config"
	"github.com/elmscz/elms-client/internal/orderfile"
)

type submitParams struct {
	fx.In

	Ctx        context.Context
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Service    *elms.Service
	Config     *config.Config
	Logger     *slog.Logger
}

func registerSubmit(p submitParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := submit(p.Ctx, p.Service, p.Config, p.Logger); err != nil {
					p.Logger.Error("order submission failed", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
					return
				}
				_ = p.Shutdowner.Shutdown()
			}()
			return nil
		},
	})
}

func submit(ctx context.Context, service *elms.Service, cfg *config.Config, logger *slog.Logger) error {
	if cfg.OrderFile == "" {
		return fmt.Errorf("no order file given, use -f")
	}

	doc, err := orderfile.Load(cfg.OrderFile)
	if err != nil {
		return err
	}
	if err := orderfile.Apply(doc, service); err != nil {
		return err
	}
	if err := service.Send(ctx); err != nil {
		return err
	}

	logger.Info("order submitted", slog.String("order_number", doc.OrderNumber))
	return nil
}

func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start elms client: %v\n", err)
		os.Exit(1)
	}

	var code int
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		code = sig.ExitCode
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop elms client: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}
