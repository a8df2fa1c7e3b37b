package elms

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/elmscz/elms-client/internal/config"
)

// Module exposes the order service to the fx graph.
var Module = fx.Provide(newService)

type serviceParams struct {
	fx.In

	Config *config.Config
	Sender Sender
	Logger *slog.Logger
}

func newService(p serviceParams) *Service {
	return NewService(Settings{
		Source:        p.Config.OrderSourceCode,
		Debug:         p.Config.DebugMode,
		DeliveryCodes: p.Config.DeliveryCodes,
	}, p.Sender, p.Logger)
}
