package main

import (
	"github.com/smallbiznis/trackpoint/internal/clock"
	"github.com/smallbiznis/trackpoint/internal/server"
	"github.com/smallbiznis/trackpoint/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		log.Module,
		clock.Module,
		server.Module,
	)
	app.Run()
}
