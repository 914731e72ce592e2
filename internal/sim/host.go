// Package sim is a minimal host for navigation controllers: it owns the tick
// loop, integrates nothing beyond the controller's own kinematics, and turns
// proximity into tagged contacts.
package sim

import (
	"context"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/zeusync/navepisode/internal/core/events/bus"
	"github.com/zeusync/navepisode/internal/core/observability/log"
	"github.com/zeusync/navepisode/internal/core/physics"
	"github.com/zeusync/navepisode/internal/nav/agent"
	"github.com/zeusync/navepisode/internal/nav/episode"
	"github.com/zeusync/navepisode/internal/nav/events"
)

const defaultTickLimit = 100_000

// Arena is the square play area. Leaving it is a wall contact.
type Arena struct {
	Pivot         r3.Vec
	HalfExtent    float64
	ContactRadius float64
}

// Contacts returns the tags touched at pose. The goal wins over a wall.
func (a Arena) Contacts(pose physics.Pose, goal r3.Vec) []episode.Tag {
	if physics.PlanarDistance(pose.Position, goal) <= a.ContactRadius {
		return []episode.Tag{episode.TagGoal}
	}
	if a.HalfExtent > 0 &&
		(math.Abs(pose.Position.X-a.Pivot.X) > a.HalfExtent || math.Abs(pose.Position.Z-a.Pivot.Z) > a.HalfExtent) {
		return []episode.Tag{episode.TagWall}
	}
	return nil
}

// Host drives one controller. Contacts are published on the controller's
// topic, so the controller must be attached to the same bus.
type Host struct {
	ctrl   *agent.Controller
	bus    bus.EventBus
	arena  Arena
	policy Policy
	logger log.Log

	// TickLimit guards against episodes that never terminate.
	TickLimit int
}

func NewHost(ctrl *agent.Controller, arena Arena, policy Policy, logger log.Log) *Host {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Host{
		ctrl:      ctrl,
		bus:       ctrl.Bus(),
		arena:     arena,
		policy:    policy,
		logger:    logger.With(log.Agent(ctrl.ID()), log.String("policy", policy.Name())),
		TickLimit: defaultTickLimit,
	}
}

func (h *Host) Controller() *agent.Controller { return h.ctrl }

// RunEpisode resets the controller and ticks until the episode ends.
func (h *Host) RunEpisode(ctx context.Context) (episode.Record, error) {
	if err := h.ctrl.Reset(ctx); err != nil {
		return episode.Record{}, err
	}
	actions := h.ctrl.Actions()
	for tick := 0; ; tick++ {
		if tick >= h.TickLimit {
			return episode.Record{}, ErrTickLimit
		}
		if err := ctx.Err(); err != nil {
			return episode.Record{}, err
		}

		code := h.policy.Act(View{
			Observation: h.ctrl.Observe(),
			Pose:        h.ctrl.Pose(),
			Goal:        h.ctrl.Goal(),
			Actions:     actions,
		})
		res, err := h.ctrl.Act(ctx, code)
		if err != nil {
			return episode.Record{}, err
		}
		if res.Done {
			break
		}

		for _, tag := range h.arena.Contacts(h.ctrl.Pose(), h.ctrl.Goal()) {
			if err = h.bus.PublishToTopic(h.ctrl.ID(), events.NewContact("host", tag)); err != nil {
				return episode.Record{}, err
			}
		}
		if h.ctrl.Episode().Terminal() {
			break
		}
	}

	recs := h.ctrl.History().Records()
	rec := recs[len(recs)-1]
	h.logger.Debug("episode finished",
		log.Episode(rec.Index),
		log.String("cause", rec.Cause.String()),
		log.Int("steps", rec.Steps),
	)
	return rec, nil
}
