package sim

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/zeusync/navepisode/internal/core/physics"
	"github.com/zeusync/navepisode/internal/nav/action"
	"github.com/zeusync/navepisode/internal/nav/observation"
)

// View is what a policy sees each tick. Observation is the encoded vector;
// Pose and Goal are the raw state, available to scripted policies.
type View struct {
	Observation observation.Observation
	Pose        physics.Pose
	Goal        r3.Vec
	Actions     action.Set
}

// Policy picks one discrete action per tick.
type Policy interface {
	Name() string
	Act(v View) action.Code
}

type idle struct{}

func (idle) Name() string         { return "idle" }
func (idle) Act(View) action.Code { return 0 }

type random struct{ rng *rand.Rand }

func (random) Name() string { return "random" }
func (p random) Act(v View) action.Code {
	return action.Code(p.rng.IntN(v.Actions.Size()))
}

// greedy turns toward the goal until it is within tolerance degrees, then
// moves forward.
type greedy struct{ tolerance float64 }

func (greedy) Name() string { return "greedy" }
func (p greedy) Act(v View) action.Code {
	bearing := physics.BearingTo(v.Pose.Position, v.Goal)
	diff := physics.SignedAngle(v.Pose.Heading, bearing)
	switch {
	case math.Abs(diff) <= p.tolerance:
		return v.Actions.CodeOf(action.Forward)
	case diff > 0:
		return v.Actions.CodeOf(action.RotateRight)
	default:
		return v.Actions.CodeOf(action.RotateLeft)
	}
}

// PolicyFactory builds a policy from parameters and a private random source.
type PolicyFactory func(params map[string]any, rng *rand.Rand) (Policy, error)

// Registry maps policy names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]PolicyFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]PolicyFactory)}
}

func (r *Registry) Register(name string, factory PolicyFactory) {
	r.mu.Lock()
	r.factories[name] = factory
	r.mu.Unlock()
}

func (r *Registry) New(name string, params map[string]any, rng *rand.Rand) (Policy, error) {
	r.mu.RLock()
	f := r.factories[name]
	r.mu.RUnlock()
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicy, name)
	}
	return f(params, rng)
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// RegisterBuiltins adds idle, random and greedy.
func RegisterBuiltins(r *Registry) {
	r.Register("idle", func(map[string]any, *rand.Rand) (Policy, error) { return idle{}, nil })
	r.Register("random", func(_ map[string]any, rng *rand.Rand) (Policy, error) {
		if rng == nil {
			return nil, fmt.Errorf("random policy requires a random source")
		}
		return random{rng: rng}, nil
	})
	r.Register("greedy", func(params map[string]any, _ *rand.Rand) (Policy, error) {
		tol := 10.0
		switch v := params["tolerance"].(type) {
		case float64:
			tol = v
		case int:
			tol = float64(v)
		}
		if tol <= 0 {
			return nil, fmt.Errorf("greedy policy tolerance must be positive, got %v", tol)
		}
		return greedy{tolerance: tol}, nil
	})
}

// DefaultRegistry returns a registry holding the builtins.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}
