package agent

import (
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/zeusync/navepisode/internal/core/physics"
	"github.com/zeusync/navepisode/internal/nav/episode"
	"github.com/zeusync/navepisode/internal/nav/spawn"
	"github.com/zeusync/navepisode/internal/nav/stats"
)

// Orchestrator owns episode boundaries: sampling a fresh pose and goal on
// begin, and turning a terminal tracker state into a record and statistics on
// finish.
type Orchestrator struct {
	agentSpawn spawn.Sampler
	goalSpawn  spawn.Sampler
	origin     r3.Vec
	heading    float64
	rng        spawn.Rand
	sink       stats.Sink
	history    *episode.History
	clock      func() time.Time

	started time.Time
}

// Begin samples the next pose and goal and seeds the per-episode counters.
func (o *Orchestrator) Begin() (physics.Pose, r3.Vec) {
	pose := physics.Pose{
		Position: o.agentSpawn.Sample(o.rng, o.origin),
		Heading:  physics.NormalizeHeading(o.heading),
	}
	goal := o.goalSpawn.Sample(o.rng, pose.Position)

	o.started = o.clock()
	o.sink.Add(stats.GoalCorrect, 0, stats.Sum)
	o.sink.Add(stats.GoalWrong, 0, stats.Sum)
	return pose, goal
}

// Finish records a terminal state.
func (o *Orchestrator) Finish(st episode.State) episode.Record {
	rec := episode.Record{
		ID:       uuid.NewString(),
		Index:    st.Index,
		Cause:    st.Cause,
		Reward:   st.Cumulative,
		Steps:    st.Steps,
		Started:  o.started,
		Finished: o.clock(),
	}
	o.history.Append(rec)

	switch st.Cause {
	case episode.CauseGoal:
		o.sink.Add(stats.GoalCorrect, 1, stats.Sum)
	case episode.CauseWall, episode.CauseHazard:
		o.sink.Add(stats.GoalWrong, 1, stats.Sum)
	}
	o.sink.Add(stats.EpisodeReward, st.Cumulative, stats.Average)
	o.sink.Add(stats.EpisodeLength, float64(st.Steps), stats.Average)
	return rec
}
