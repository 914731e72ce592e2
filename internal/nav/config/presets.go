package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/zeusync/navepisode/internal/nav/episode"
	"github.com/zeusync/navepisode/internal/nav/observation"
	"github.com/zeusync/navepisode/internal/nav/spawn"
)

var presets = map[string]func() *Profile{
	VariantBall:   Ball,
	VariantTurtle: Turtle,
}

// Ball is the rolling-ball profile: seven actions, flat time penalty, agent
// and goal scattered in a 16x16 square around the arena pivot.
func Ball() *Profile {
	return &Profile{
		Name:    "ball",
		Variant: VariantBall,
		Observation: ObservationConfig{
			Scale: 10,
			Features: []observation.Feature{
				observation.AgentPosition,
				observation.GoalPosition,
				observation.GoalDelta,
			},
		},
		Motion: MotionConfig{MoveSpeed: 1, RotationSpeed: 200, StrafeFactor: 0.75},
		Rewards: RewardConfig{
			Mode:        episode.PenaltyFlat,
			StepPenalty: 0.001,
			MaxStep:     5000,
			Goal:        1,
			Hazard:      -1,
		},
		FixedDelta: 0.02,
		GroundY:    0.5,
		AgentSpawn: spawn.Spec{Kind: spawn.KindBox, HalfExtent: 8},
		GoalSpawn:  spawn.Spec{Kind: spawn.KindBox, HalfExtent: 8},
		Arena:      ArenaConfig{HalfExtent: 10, ContactRadius: 1},
		Feedback:   FeedbackConfig{Duration: 500 * time.Millisecond},
	}
}

// Turtle is the turtle profile: four actions, budget-relative penalty, fixed
// spawn and a goal on a ring around it.
func Turtle() *Profile {
	return &Profile{
		Name:    "turtle",
		Variant: VariantTurtle,
		Observation: ObservationConfig{
			Scale: 5,
			Features: []observation.Feature{
				observation.GoalPosition,
				observation.AgentPosition,
				observation.Heading,
			},
		},
		Motion: MotionConfig{MoveSpeed: 1.5, RotationSpeed: 180},
		Rewards: RewardConfig{
			Mode:    episode.PenaltyBudget,
			MaxStep: 1000,
			Goal:    1,
			Hazard:  -1,
		},
		FixedDelta: 0.02,
		GroundY:    0.3,
		AgentSpawn: spawn.Spec{Kind: spawn.KindFixed},
		GoalSpawn:  spawn.Spec{Kind: spawn.KindRing, MinRadius: 1, MaxRadius: 2.5},
		Arena:      ArenaConfig{HalfExtent: 4.5, ContactRadius: 0.5},
		Feedback:   FeedbackConfig{Duration: 500 * time.Millisecond},
	}
}

// Preset returns a fresh copy of a built-in profile.
func Preset(name string) (*Profile, error) {
	f, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return f(), nil
}

// Presets lists the built-in profile names.
func Presets() []string {
	out := make([]string, 0, len(presets))
	for name := range presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
