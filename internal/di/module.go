package di

import (
	"go.uber.org/fx"

	"github.com/elmscz/elms-client/elms"
	"github.com/elmscz/elms-client/fulfillment"
	"github.com/elmscz/elms-client/internal/config"
	"github.com/elmscz/elms-client/internal/logger"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		fulfillment.Module,
		fx.Provide(func(client fulfillment.Client) elms.Sender { return client }),
		elms.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
