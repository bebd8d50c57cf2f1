package propagate

import "go.uber.org/fx"

var Module = fx.Module("propagate",
	fx.Provide(NewPropagator),
)
