// Package action maps discrete action codes onto motion primitives.
package action

import (
	"fmt"

	"github.com/zeusync/navepisode/internal/core/physics"
)

// Code is a discrete action selector produced by the policy.
type Code int

// Primitive is one predefined motion.
type Primitive uint8

const (
	Noop Primitive = iota
	Forward
	Backward
	RotateLeft
	RotateRight
	StrafeLeft
	StrafeRight
)

func (p Primitive) String() string {
	switch p {
	case Noop:
		return "noop"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case RotateLeft:
		return "rotate_left"
	case RotateRight:
		return "rotate_right"
	case StrafeLeft:
		return "strafe_left"
	case StrafeRight:
		return "strafe_right"
	default:
		return "unknown"
	}
}

// Set is an ordered table: code i selects Set[i].
type Set []Primitive

var (
	// BallSet: 0 noop, 1 forward, 2 backward, 3 rotate right, 4 rotate left,
	// 5 strafe left, 6 strafe right.
	BallSet = Set{Noop, Forward, Backward, RotateRight, RotateLeft, StrafeLeft, StrafeRight}
	// TurtleSet: 0 noop, 1 forward, 2 rotate left, 3 rotate right.
	TurtleSet = Set{Noop, Forward, RotateLeft, RotateRight}
)

// Lookup returns the primitive for code and whether the code is in range.
func (s Set) Lookup(code Code) (Primitive, bool) {
	if code < 0 || int(code) >= len(s) {
		return Noop, false
	}
	return s[code], true
}

// CodeOf returns the first code mapped to p, or -1.
func (s Set) CodeOf(p Primitive) Code {
	for i, q := range s {
		if q == p {
			return Code(i)
		}
	}
	return -1
}

// Size is the number of valid codes.
func (s Set) Size() int { return len(s) }

// Params holds the motion constants of a variant.
type Params struct {
	// MoveSpeed is translation in units per second.
	MoveSpeed float64
	// RotationSpeed is degrees per second.
	RotationSpeed float64
	// StrafeFactor scales MoveSpeed for lateral moves.
	StrafeFactor float64
	// Strict makes out-of-range codes fail with ErrInvalidAction instead of
	// being ignored.
	Strict bool
}

// Interpreter applies exactly one primitive per call. It has no state.
type Interpreter struct {
	set    Set
	params Params
}

func NewInterpreter(set Set, params Params) (*Interpreter, error) {
	if len(set) == 0 {
		return nil, ErrEmptySet
	}
	if params.MoveSpeed < 0 || params.RotationSpeed < 0 || params.StrafeFactor < 0 {
		return nil, ErrNegativeSpeed
	}
	return &Interpreter{set: append(Set(nil), set...), params: params}, nil
}

func (in *Interpreter) Set() Set { return append(Set(nil), in.set...) }

// Apply returns the pose after running code for dt seconds. Unknown codes
// leave the pose unchanged; in strict mode they also return ErrInvalidAction.
func (in *Interpreter) Apply(pose physics.Pose, code Code, dt float64) (physics.Pose, error) {
	prim, ok := in.set.Lookup(code)
	if !ok {
		if in.params.Strict {
			return pose, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidAction, code, len(in.set))
		}
		return pose, nil
	}
	return in.Move(pose, prim, dt), nil
}

// Move applies a primitive directly.
func (in *Interpreter) Move(pose physics.Pose, prim Primitive, dt float64) physics.Pose {
	step := in.params.MoveSpeed * dt
	turn := in.params.RotationSpeed * dt
	switch prim {
	case Forward:
		return pose.Advance(step)
	case Backward:
		return pose.Advance(-step)
	case RotateLeft:
		return pose.Rotate(-turn)
	case RotateRight:
		return pose.Rotate(turn)
	case StrafeLeft:
		return pose.Strafe(-step * in.params.StrafeFactor)
	case StrafeRight:
		return pose.Strafe(step * in.params.StrafeFactor)
	default:
		return pose
	}
}
