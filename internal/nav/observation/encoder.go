// Package observation turns a pose and a goal into the bounded numeric vector
// a policy consumes.
package observation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/zeusync/navepisode/internal/core/physics"
)

// Feature names one block of the observation vector.
type Feature string

const (
	// AgentPosition emits agent x and z.
	AgentPosition Feature = "agent_position"
	// GoalPosition emits goal x and z.
	GoalPosition Feature = "goal_position"
	// GoalDelta emits goal minus agent on x and z.
	GoalDelta Feature = "goal_delta"
	// Heading emits the agent heading mapped from [0, 360) to [-1, 1].
	Heading Feature = "heading"
)

// Width reports how many values the feature contributes.
func (f Feature) Width() int {
	switch f {
	case AgentPosition, GoalPosition, GoalDelta:
		return 2
	case Heading:
		return 1
	default:
		return 0
	}
}

// Valid reports whether f is a known feature.
func (f Feature) Valid() bool { return f.Width() > 0 }

// Observation is a fixed-length vector with every component in [-1, 1].
type Observation []float64

// Dense copies the observation into a gonum vector.
func (o Observation) Dense() *mat.VecDense {
	if len(o) == 0 {
		return nil
	}
	return mat.NewVecDense(len(o), append([]float64(nil), o...))
}

// Encoder is a pure function of (pose, goal). It keeps no state between calls.
type Encoder struct {
	scale    float64
	features []Feature
	size     int
}

// NewEncoder validates the layout and the normalization constant.
func NewEncoder(scale float64, features ...Feature) (*Encoder, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	if len(features) == 0 {
		return nil, ErrEmptyLayout
	}
	size := 0
	for _, f := range features {
		if !f.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, f)
		}
		size += f.Width()
	}
	return &Encoder{
		scale:    scale,
		features: append([]Feature(nil), features...),
		size:     size,
	}, nil
}

// Size is the fixed length of every encoded observation.
func (e *Encoder) Size() int { return e.size }

// Scale is the normalization constant coordinates are divided by.
func (e *Encoder) Scale() float64 { return e.scale }

// Features returns a copy of the layout.
func (e *Encoder) Features() []Feature { return append([]Feature(nil), e.features...) }

// Encode builds the observation for the given pose and goal.
func (e *Encoder) Encode(pose physics.Pose, goal r3.Vec) Observation {
	out := make(Observation, 0, e.size)
	for _, f := range e.features {
		switch f {
		case AgentPosition:
			out = append(out, e.coord(pose.Position.X), e.coord(pose.Position.Z))
		case GoalPosition:
			out = append(out, e.coord(goal.X), e.coord(goal.Z))
		case GoalDelta:
			out = append(out, e.coord(goal.X-pose.Position.X), e.coord(goal.Z-pose.Position.Z))
		case Heading:
			out = append(out, NormalizeHeading(pose.Heading))
		}
	}
	return out
}

func (e *Encoder) coord(v float64) float64 {
	return Clamp(v / e.scale)
}

// NormalizeHeading maps degrees onto [-1, 1] via (h/360)*2 - 1 after wrapping
// into [0, 360).
func NormalizeHeading(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	return Clamp(physics.NormalizeHeading(deg)/360*2 - 1)
}

// Clamp bounds v to [-1, 1]. NaN maps to 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
