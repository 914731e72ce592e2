package injector

import (
	"github.com/zeusync/navepisode/internal/core/observability/log"
	"github.com/zeusync/navepisode/internal/nav/stats"
)

// provideSink fans statistics out to the in-memory recorder and the debug log.
func provideSink(logger *log.Logger, recorder *stats.Recorder) stats.Sink {
	return stats.Multi(recorder, stats.NewLogSink(logger))
}
