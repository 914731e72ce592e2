package injector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/navepisode/internal/core/observability/log"
	"github.com/zeusync/navepisode/internal/nav/config"
	"github.com/zeusync/navepisode/internal/nav/stats"
	"github.com/zeusync/navepisode/internal/sim"
)

func TestProvideRunner(t *testing.T) {
	recorder := stats.NewRecorder()
	runner := ProvideRunner(log.NewNop(), recorder)
	require.NotNil(t, runner)

	profile := config.Turtle()
	summaries, err := runner.Run(context.Background(), sim.RunConfig{
		Profile:  profile,
		Agents:   2,
		Episodes: 3,
		Policy:   "greedy",
		Seed:     7,
	})
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	correct, ok := recorder.Value(stats.GoalCorrect)
	require.True(t, ok)
	require.Equal(t, 6.0, correct)
}
