package conversion

import (
	"github.com/smallbiznis/trackpoint/internal/conversion/service"
	"go.uber.org/fx"
)

var Module = fx.Module("conversion.service",
	fx.Provide(service.NewService),
)
