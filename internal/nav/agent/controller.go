// Package agent hosts the episodic navigation controller: the piece a host
// engine drives once per tick with observe, act and contact callbacks.
package agent

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/zeusync/navepisode/internal/core/events/bus"
	"github.com/zeusync/navepisode/internal/core/observability/log"
	"github.com/zeusync/navepisode/internal/core/physics"
	"github.com/zeusync/navepisode/internal/nav/action"
	"github.com/zeusync/navepisode/internal/nav/episode"
	"github.com/zeusync/navepisode/internal/nav/events"
	"github.com/zeusync/navepisode/internal/nav/observation"
	"github.com/zeusync/navepisode/internal/nav/spawn"
	"github.com/zeusync/navepisode/internal/nav/stats"
)

// Options wires a Controller. Encoder, Interpreter, AgentSpawn and GoalSpawn
// are required; everything else has a default.
type Options struct {
	ID          string
	Encoder     *observation.Encoder
	Interpreter *action.Interpreter
	Rewards     episode.Rewards
	// FixedDelta is the simulated seconds per tick.
	FixedDelta float64

	AgentSpawn spawn.Sampler
	GoalSpawn  spawn.Sampler
	// Origin is the canonical spawn point handed to AgentSpawn.
	Origin r3.Vec
	// Heading is the heading every episode starts with.
	Heading float64

	Rand    spawn.Rand
	Stats   stats.Sink
	Bus     bus.EventBus
	Logger  log.Log
	History *episode.History
	Clock   func() time.Time
}

// StepResult is what one Act call produced.
type StepResult struct {
	Observation observation.Observation
	// Reward granted during this call.
	Reward     float64
	Cumulative float64
	Steps      int
	Done       bool
	Cause      episode.Cause
}

// Controller is one agent's episode state. A host calls Reset, then per tick
// Observe, Act and any OnContact, in that order, from a single goroutine.
// It is not safe for concurrent use.
type Controller struct {
	id     string
	enc    *observation.Encoder
	interp *action.Interpreter
	dt     float64

	tracker *episode.Tracker
	orch    *Orchestrator
	history *episode.History
	bus     bus.EventBus
	logger  log.Log

	pose physics.Pose
	goal r3.Vec
	sub  bus.Subscription
}

func New(opts Options) (*Controller, error) {
	if opts.Encoder == nil {
		return nil, ErrMissingEncoder
	}
	if opts.Interpreter == nil {
		return nil, ErrMissingActions
	}
	if opts.AgentSpawn == nil || opts.GoalSpawn == nil {
		return nil, ErrMissingSampler
	}
	if !(opts.FixedDelta > 0) {
		return nil, ErrInvalidTimeDelta
	}
	tracker, err := episode.NewTracker(opts.Rewards)
	if err != nil {
		return nil, err
	}

	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Stats == nil {
		opts.Stats = stats.Discard
	}
	if opts.Bus == nil {
		opts.Bus = bus.New()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNop()
	}
	if opts.History == nil {
		opts.History = episode.NewHistory(0)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Controller{
		id:      opts.ID,
		enc:     opts.Encoder,
		interp:  opts.Interpreter,
		dt:      opts.FixedDelta,
		tracker: tracker,
		orch: &Orchestrator{
			agentSpawn: opts.AgentSpawn,
			goalSpawn:  opts.GoalSpawn,
			origin:     opts.Origin,
			heading:    opts.Heading,
			rng:        opts.Rand,
			sink:       opts.Stats,
			history:    opts.History,
			clock:      opts.Clock,
		},
		history: opts.History,
		bus:     opts.Bus,
		logger:  opts.Logger.With(log.Agent(opts.ID)),
	}, nil
}

func (c *Controller) ID() string                    { return c.id }
func (c *Controller) Pose() physics.Pose            { return c.pose }
func (c *Controller) Goal() r3.Vec                  { return c.goal }
func (c *Controller) Episode() episode.State        { return c.tracker.State() }
func (c *Controller) History() *episode.History     { return c.history }
func (c *Controller) Encoder() *observation.Encoder { return c.enc }
func (c *Controller) Actions() action.Set           { return c.interp.Set() }
func (c *Controller) Bus() bus.EventBus             { return c.bus }

// Reset starts a new episode: fresh pose and goal, cleared tracker.
// An episode still running is abandoned without a record. Listener errors on
// episode.begin are logged and never undo the reset.
func (c *Controller) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if prev := c.tracker.State(); prev.Index > 0 && !prev.Terminal() {
		c.logger.Debug("episode abandoned", log.Episode(prev.Index), log.Int("steps", prev.Steps))
	}

	c.tracker.Reset()
	c.pose, c.goal = c.orch.Begin()

	st := c.tracker.State()
	c.logger.Debug("episode begin",
		log.Episode(st.Index),
		log.Float64("goal_x", c.goal.X),
		log.Float64("goal_z", c.goal.Z),
	)
	c.publish(events.NewEpisodeBegin(c.id, st.Index))
	return nil
}

// Observe encodes the current pose and goal.
func (c *Controller) Observe() observation.Observation {
	return c.enc.Encode(c.pose, c.goal)
}

// Act applies one action and the step penalty. After the episode ended it
// changes nothing and reports Done.
func (c *Controller) Act(ctx context.Context, code action.Code) (StepResult, error) {
	if err := ctx.Err(); err != nil {
		return StepResult{}, err
	}
	st := c.tracker.State()
	if st.Index == 0 {
		return StepResult{}, ErrNotStarted
	}
	if st.Terminal() {
		return c.result(0), nil
	}

	pose, err := c.interp.Apply(c.pose, code, c.dt)
	if err != nil {
		return c.result(0), err
	}
	c.pose = pose

	reward, ended := c.tracker.Tick()
	if ended {
		c.finish()
	}
	return c.result(reward), nil
}

// OnContact resolves a tagged contact reported by the host.
func (c *Controller) OnContact(ctx context.Context, tag episode.Tag) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.tracker.State().Index == 0 {
		return ErrNotStarted
	}
	if _, ended := c.tracker.Contact(tag); ended {
		c.finish()
	}
	return nil
}

// Attach subscribes the controller to contact events published on its id topic.
func (c *Controller) Attach() error {
	if c.sub != nil {
		return ErrAlreadyAttached
	}
	sub, err := c.bus.SubscribeTopic(c.id, events.TypeContact, func(e bus.Event) error {
		contact, ok := e.Data().(events.Contact)
		if !ok {
			return nil
		}
		return c.OnContact(context.Background(), contact.Tag)
	})
	if err != nil {
		return err
	}
	c.sub = sub
	return nil
}

// Close drops the bus subscription.
func (c *Controller) Close() error {
	if c.sub == nil {
		return nil
	}
	err := c.sub.Cancel()
	c.sub = nil
	return err
}

func (c *Controller) finish() {
	rec := c.orch.Finish(c.tracker.State())
	c.logger.Info("episode end",
		log.Episode(rec.Index),
		log.String("cause", rec.Cause.String()),
		log.Float64("reward", rec.Reward),
		log.Int("steps", rec.Steps),
	)
	c.publish(events.NewEpisodeEnd(c.id, rec))
}

// publish delivers a lifecycle event. The episode has already moved on, so a
// failing listener is only logged.
func (c *Controller) publish(e bus.Event) {
	if err := c.bus.PublishToTopic(c.id, e); err != nil {
		c.logger.Warn("episode listener failed", log.String("event", e.Type()), log.Error(err))
	}
}

func (c *Controller) result(reward float64) StepResult {
	st := c.tracker.State()
	return StepResult{
		Observation: c.Observe(),
		Reward:      reward,
		Cumulative:  st.Cumulative,
		Steps:       st.Steps,
		Done:        st.Terminal(),
		Cause:       st.Cause,
	}
}
