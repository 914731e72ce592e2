//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"
	"github.com/zeusync/navepisode/internal/core/events/bus"
	"github.com/zeusync/navepisode/internal/core/observability/log"
	"github.com/zeusync/navepisode/internal/nav/stats"
	"github.com/zeusync/navepisode/internal/sim"
)

func ProvideLogger(level log.Level) *log.Logger {
	wire.Build(log.New)
	return nil
}

func ProvideRunner(logger *log.Logger, recorder *stats.Recorder) *sim.Runner {
	wire.Build(
		wire.Bind(new(log.Log), new(*log.Logger)),
		sim.DefaultRegistry,
		bus.New,
		provideSink,
		sim.NewRunner,
	)
	return nil
}
