package sim

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/zeusync/navepisode/internal/core/events/bus"
	"github.com/zeusync/navepisode/internal/core/observability/log"
	"github.com/zeusync/navepisode/internal/core/physics"
	"github.com/zeusync/navepisode/internal/nav/agent"
	"github.com/zeusync/navepisode/internal/nav/config"
	"github.com/zeusync/navepisode/internal/nav/episode"
	"github.com/zeusync/navepisode/internal/nav/feedback"
	"github.com/zeusync/navepisode/internal/nav/stats"
	"github.com/zeusync/navepisode/pkg/concurrent"
)

// RunConfig describes a batch of independent agents sharing one profile.
type RunConfig struct {
	Profile  *config.Profile
	Agents   int
	Episodes int
	Policy   string
	// PolicyParams are handed to the policy factory.
	PolicyParams map[string]any
	Seed         uint64
	// Parallelism bounds concurrently running agents; 0 runs all at once.
	Parallelism int
	// Feedback attaches a ground pulser to every agent.
	Feedback bool
}

// Summary is the outcome of one agent's run.
type Summary struct {
	Name      string
	ID        string
	Analytics episode.Analytics
}

// Runner runs agents concurrently, one goroutine each. Agents share the bus
// and the stats sink and nothing else.
type Runner struct {
	registry *Registry
	bus      bus.EventBus
	sink     stats.Sink
	logger   log.Log
}

func NewRunner(registry *Registry, eb bus.EventBus, sink stats.Sink, logger log.Log) *Runner {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if eb == nil {
		eb = bus.New()
	}
	if sink == nil {
		sink = stats.Discard
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Runner{registry: registry, bus: eb, sink: sink, logger: logger}
}

// SeedFor derives an agent's seed from the base seed and its name.
func SeedFor(base uint64, name string) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%d/%s", base, name))
}

func (r *Runner) Run(ctx context.Context, cfg RunConfig) ([]Summary, error) {
	if cfg.Agents <= 0 {
		return nil, ErrNoAgents
	}
	if cfg.Profile == nil {
		return nil, fmt.Errorf("%w: nil profile", config.ErrInvalidProfile)
	}
	names := make([]string, cfg.Agents)
	for i := range names {
		names[i] = fmt.Sprintf("%s-%d", cfg.Profile.Name, i)
	}

	return concurrent.Map(ctx, names, cfg.Parallelism, func(ctx context.Context, name string) (Summary, error) {
		host, closeFn, err := r.newHost(name, cfg)
		if err != nil {
			return Summary{}, err
		}
		defer closeFn()

		for i := 0; i < cfg.Episodes; i++ {
			if _, err = host.RunEpisode(ctx); err != nil {
				return Summary{}, fmt.Errorf("%s: episode %d: %w", name, i+1, err)
			}
		}
		a := host.Controller().History().Analyze()
		r.logger.Info("agent finished",
			log.String("name", name),
			log.Int("episodes", a.Total),
			log.Float64("success_rate", a.SuccessRate()),
			log.Float64("mean_reward", a.MeanReward),
		)
		return Summary{Name: name, ID: host.Controller().ID(), Analytics: a}, nil
	})
}

func (r *Runner) newHost(name string, cfg RunConfig) (*Host, func(), error) {
	seed := SeedFor(cfg.Seed, name)
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	policy, err := r.registry.New(cfg.Policy, cfg.PolicyParams, rand.New(rand.NewPCG(seed^0x9e3779b97f4a7c15, seed)))
	if err != nil {
		return nil, nil, err
	}

	opts, err := cfg.Profile.Options()
	if err != nil {
		return nil, nil, err
	}
	opts.ID = uuid.NewString()
	opts.Rand = rng
	opts.Stats = r.sink
	opts.Bus = r.bus
	opts.Logger = r.logger.With(log.String("name", name))

	ctrl, err := agent.New(opts)
	if err != nil {
		return nil, nil, err
	}
	if err = ctrl.Attach(); err != nil {
		return nil, nil, err
	}

	var pulser *feedback.Pulser
	if cfg.Feedback && cfg.Profile.Feedback.Duration > 0 {
		pulser = feedback.NewPulser(&feedback.Swatch{}, &feedback.Swatch{}, feedback.WallClock{}, cfg.Profile.Feedback.Duration)
		if err = pulser.Attach(r.bus, ctrl.ID()); err != nil {
			_ = ctrl.Close()
			return nil, nil, err
		}
	}

	p := cfg.Profile.Arena.Pivot
	arena := Arena{
		Pivot:         physics.Vec(p[0], p[1], p[2]),
		HalfExtent:    cfg.Profile.Arena.HalfExtent,
		ContactRadius: cfg.Profile.Arena.ContactRadius,
	}
	host := NewHost(ctrl, arena, policy, r.logger)

	closeFn := func() {
		if pulser != nil {
			pulser.Close()
		}
		_ = ctrl.Close()
	}
	return host, closeFn, nil
}

// Totals folds per-agent summaries into one.
func Totals(summaries []Summary) episode.Analytics {
	var out episode.Analytics
	var reward, steps float64
	for _, s := range summaries {
		a := s.Analytics
		out.Total += a.Total
		out.Successes += a.Successes
		out.Failures += a.Failures
		out.Timeouts += a.Timeouts
		reward += a.MeanReward * float64(a.Total)
		steps += a.MeanSteps * float64(a.Total)
	}
	if out.Total > 0 {
		out.MeanReward = reward / float64(out.Total)
		out.MeanSteps = steps / float64(out.Total)
	}
	return out
}
