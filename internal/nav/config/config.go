// Package config loads agent profiles: the reward, motion, observation and
// spawn constants of a navigation variant.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/navepisode/internal/core/physics"
	"github.com/zeusync/navepisode/internal/nav/action"
	"github.com/zeusync/navepisode/internal/nav/agent"
	"github.com/zeusync/navepisode/internal/nav/episode"
	"github.com/zeusync/navepisode/internal/nav/observation"
	"github.com/zeusync/navepisode/internal/nav/spawn"
)

const (
	VariantBall   = "ball"
	VariantTurtle = "turtle"
)

// Profile is the full description of one agent variant.
type Profile struct {
	Name    string `yaml:"name" json:"name"`
	Variant string `yaml:"variant" json:"variant"`

	Observation ObservationConfig `yaml:"observation" json:"observation"`
	Motion      MotionConfig      `yaml:"motion" json:"motion"`
	Rewards     RewardConfig      `yaml:"rewards" json:"rewards"`

	// FixedDelta is the simulated seconds per tick.
	FixedDelta float64 `yaml:"fixed_delta" json:"fixed_delta"`
	// GroundY is the height every spawned position is placed at.
	GroundY float64 `yaml:"ground_y" json:"ground_y"`
	// Heading is the heading every episode starts with.
	Heading float64 `yaml:"heading" json:"heading"`

	AgentSpawn spawn.Spec `yaml:"agent_spawn" json:"agent_spawn"`
	GoalSpawn  spawn.Spec `yaml:"goal_spawn" json:"goal_spawn"`

	Arena    ArenaConfig    `yaml:"arena" json:"arena"`
	Feedback FeedbackConfig `yaml:"feedback" json:"feedback"`
}

type ObservationConfig struct {
	Scale    float64               `yaml:"scale" json:"scale"`
	Features []observation.Feature `yaml:"features" json:"features"`
}

type MotionConfig struct {
	MoveSpeed     float64 `yaml:"move_speed" json:"move_speed"`
	RotationSpeed float64 `yaml:"rotation_speed" json:"rotation_speed"`
	StrafeFactor  float64 `yaml:"strafe_factor,omitempty" json:"strafe_factor,omitempty"`
	StrictActions bool    `yaml:"strict_actions" json:"strict_actions"`
}

type RewardConfig struct {
	Mode        episode.PenaltyMode `yaml:"mode" json:"mode"`
	StepPenalty float64             `yaml:"step_penalty,omitempty" json:"step_penalty,omitempty"`
	MaxStep     int                 `yaml:"max_step" json:"max_step"`
	Goal        float64             `yaml:"goal" json:"goal"`
	Hazard      float64             `yaml:"hazard" json:"hazard"`
}

// ArenaConfig describes the square play area the demo host enforces.
type ArenaConfig struct {
	Pivot         [3]float64 `yaml:"pivot" json:"pivot"`
	HalfExtent    float64    `yaml:"half_extent" json:"half_extent"`
	ContactRadius float64    `yaml:"contact_radius" json:"contact_radius"`
}

type FeedbackConfig struct {
	Duration time.Duration `yaml:"duration" json:"duration"`
}

// Load decodes a YAML profile and validates it. Unknown keys are rejected.
func Load(r io.Reader) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyProfile
		}
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile loads a YAML profile from path.
func LoadFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Resolve returns the preset called nameOrPath, or loads it as a file.
func Resolve(nameOrPath string) (*Profile, error) {
	if p, err := Preset(nameOrPath); err == nil {
		return p, nil
	}
	return LoadFile(nameOrPath)
}

// YAML encodes the profile.
func (p *Profile) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ActionSet returns the discrete action table of the variant.
func (p *Profile) ActionSet() (action.Set, error) {
	switch p.Variant {
	case VariantBall:
		return action.BallSet, nil
	case VariantTurtle:
		return action.TurtleSet, nil
	default:
		return nil, fmt.Errorf("%w: unknown variant %q", ErrInvalidProfile, p.Variant)
	}
}

func (p *Profile) RewardConstants() episode.Rewards {
	return episode.Rewards{
		Mode:        p.Rewards.Mode,
		StepPenalty: p.Rewards.StepPenalty,
		MaxStep:     p.Rewards.MaxStep,
		Goal:        p.Rewards.Goal,
		Hazard:      p.Rewards.Hazard,
	}
}

// Validate checks every section, wrapping the first failure.
func (p *Profile) Validate() error {
	if _, err := p.ActionSet(); err != nil {
		return err
	}
	if !(p.FixedDelta > 0) {
		return fmt.Errorf("%w: fixed_delta must be positive", ErrInvalidProfile)
	}
	if _, err := observation.NewEncoder(p.Observation.Scale, p.Observation.Features...); err != nil {
		return fmt.Errorf("%w: observation: %w", ErrInvalidProfile, err)
	}
	if err := p.RewardConstants().Validate(); err != nil {
		return fmt.Errorf("%w: rewards: %w", ErrInvalidProfile, err)
	}
	if _, err := p.AgentSpawn.Build(p.GroundY); err != nil {
		return fmt.Errorf("%w: agent_spawn: %w", ErrInvalidProfile, err)
	}
	if _, err := p.GoalSpawn.Build(p.GroundY); err != nil {
		return fmt.Errorf("%w: goal_spawn: %w", ErrInvalidProfile, err)
	}
	if p.Arena.HalfExtent < 0 || p.Arena.ContactRadius < 0 {
		return fmt.Errorf("%w: arena extents must not be negative", ErrInvalidProfile)
	}
	return nil
}

// Options builds controller options from the profile. The caller fills in
// identity, randomness and the ambient collaborators.
func (p *Profile) Options() (agent.Options, error) {
	if err := p.Validate(); err != nil {
		return agent.Options{}, err
	}
	set, _ := p.ActionSet()
	enc, err := observation.NewEncoder(p.Observation.Scale, p.Observation.Features...)
	if err != nil {
		return agent.Options{}, err
	}
	interp, err := action.NewInterpreter(set, action.Params{
		MoveSpeed:     p.Motion.MoveSpeed,
		RotationSpeed: p.Motion.RotationSpeed,
		StrafeFactor:  p.Motion.StrafeFactor,
		Strict:        p.Motion.StrictActions,
	})
	if err != nil {
		return agent.Options{}, fmt.Errorf("%w: motion: %w", ErrInvalidProfile, err)
	}
	agentSpawn, _ := p.AgentSpawn.Build(p.GroundY)
	goalSpawn, _ := p.GoalSpawn.Build(p.GroundY)

	return agent.Options{
		Encoder:     enc,
		Interpreter: interp,
		Rewards:     p.RewardConstants(),
		FixedDelta:  p.FixedDelta,
		AgentSpawn:  agentSpawn,
		GoalSpawn:   goalSpawn,
		Origin:      physics.Vec(p.AgentSpawn.Pivot[0], p.GroundY, p.AgentSpawn.Pivot[2]),
		Heading:     p.Heading,
	}, nil
}
