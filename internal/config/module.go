package config

import "go.uber.org/fx"

// Module exposes configuration loading for fx graphs.
var Module = fx.Provide(Load)
