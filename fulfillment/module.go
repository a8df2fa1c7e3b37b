package fulfillment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/elmscz/elms-client/internal/config"
)

// Module exposes the fulfillment client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(
		p.Config.FulfillmentURL,
		p.Config.FulfillmentUser,
		p.Config.FulfillmentPassword,
		p.Config.HTTPTimeout,
		p.Logger,
	)
}
