// Package spawn samples agent and goal positions at episode start.
package spawn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Rand is the random source samplers draw from. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	Float64() float64
}

// Sampler draws a ground-plane position. origin is the agent's spawn point,
// used by samplers that place the goal relative to the agent.
type Sampler interface {
	Sample(rng Rand, origin r3.Vec) r3.Vec
}

// Box samples uniformly in the square Pivot ± HalfExtent on x and z.
type Box struct {
	Pivot      r3.Vec
	HalfExtent float64
	Y          float64
}

func (b Box) Sample(rng Rand, _ r3.Vec) r3.Vec {
	return r3.Vec{
		X: b.Pivot.X + uniform(rng, -b.HalfExtent, b.HalfExtent),
		Y: b.Y,
		Z: b.Pivot.Z + uniform(rng, -b.HalfExtent, b.HalfExtent),
	}
}

// Ring samples at a uniform angle and a uniform distance in
// [MinRadius, MaxRadius) around the origin.
type Ring struct {
	MinRadius float64
	MaxRadius float64
	Y         float64
}

func (r Ring) Sample(rng Rand, origin r3.Vec) r3.Vec {
	angle := uniform(rng, 0, 360) * math.Pi / 180
	dist := uniform(rng, r.MinRadius, r.MaxRadius)
	return r3.Vec{
		X: origin.X + math.Sin(angle)*dist,
		Y: r.Y,
		Z: origin.Z + math.Cos(angle)*dist,
	}
}

// Fixed always returns Position.
type Fixed struct {
	Position r3.Vec
}

func (f Fixed) Sample(Rand, r3.Vec) r3.Vec { return f.Position }

func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Kind names a sampler shape in configuration.
type Kind string

const (
	KindBox   Kind = "box"
	KindRing  Kind = "ring"
	KindFixed Kind = "fixed"
)

// Spec is the serializable description of a sampler.
type Spec struct {
	Kind       Kind       `yaml:"kind" json:"kind"`
	Pivot      [3]float64 `yaml:"pivot,omitempty" json:"pivot,omitempty"`
	HalfExtent float64    `yaml:"half_extent,omitempty" json:"half_extent,omitempty"`
	MinRadius  float64    `yaml:"min_radius,omitempty" json:"min_radius,omitempty"`
	MaxRadius  float64    `yaml:"max_radius,omitempty" json:"max_radius,omitempty"`
}

// Build turns the spec into a Sampler placing points at ground height y.
func (s Spec) Build(y float64) (Sampler, error) {
	pivot := r3.Vec{X: s.Pivot[0], Y: s.Pivot[1], Z: s.Pivot[2]}
	switch s.Kind {
	case KindBox:
		if s.HalfExtent < 0 {
			return nil, fmt.Errorf("%w: negative half extent %v", ErrInvalidSpec, s.HalfExtent)
		}
		return Box{Pivot: pivot, HalfExtent: s.HalfExtent, Y: y}, nil
	case KindRing:
		if s.MinRadius < 0 || s.MaxRadius < s.MinRadius {
			return nil, fmt.Errorf("%w: ring radii [%v, %v]", ErrInvalidSpec, s.MinRadius, s.MaxRadius)
		}
		return Ring{MinRadius: s.MinRadius, MaxRadius: s.MaxRadius, Y: y}, nil
	case KindFixed:
		return Fixed{Position: r3.Vec{X: pivot.X, Y: y, Z: pivot.Z}}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidSpec, s.Kind)
	}
}
