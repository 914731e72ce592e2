package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/navepisode/internal/core/observability/log"
)

func TestRecorderAggregations(t *testing.T) {
	r := NewRecorder()
	r.Add(GoalCorrect, 0, Sum)
	r.Add(GoalCorrect, 1, Sum)
	r.Add(GoalCorrect, 1, Sum)
	r.Add("Reward/Mean", 2, Average)
	r.Add("Reward/Mean", 4, Average)
	r.Add("Episode/Length", 7, MostRecent)
	r.Add("Episode/Length", 3, MostRecent)

	v, ok := r.Value(GoalCorrect)
	require.True(t, ok)
	require.Equal(t, 2.0, v)

	snap := r.Snapshot()
	require.Equal(t, []Stat{
		{Key: "Episode/Length", Aggregation: MostRecent, Value: 3, Count: 2},
		{Key: GoalCorrect, Aggregation: Sum, Value: 2, Count: 3},
		{Key: "Reward/Mean", Aggregation: Average, Value: 3, Count: 2},
	}, snap)

	_, ok = r.Value(GoalWrong)
	require.False(t, ok)

	r.Reset()
	require.Empty(t, r.Snapshot())
}

func TestRecorderConcurrentAdds(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				r.Add(GoalWrong, 1, Sum)
			}
		}()
	}
	wg.Wait()
	v, _ := r.Value(GoalWrong)
	require.Equal(t, 8000.0, v)
}

func TestMultiAndLogSink(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	rec := NewRecorder()
	sink := Multi(rec, nil, NewLogSink(log.NewWithCore(core)), Discard)

	sink.Add(GoalCorrect, 1, Sum)

	v, _ := rec.Value(GoalCorrect)
	require.Equal(t, 1.0, v)
	require.Equal(t, 1, logs.Len())
	require.Equal(t, GoalCorrect, logs.All()[0].ContextMap()["key"])
}
