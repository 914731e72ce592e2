package action

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/navepisode/internal/core/physics"
)

func newTurtle(t *testing.T, strict bool) *Interpreter {
	t.Helper()
	in, err := NewInterpreter(TurtleSet, Params{MoveSpeed: 1.5, RotationSpeed: 180, Strict: strict})
	require.NoError(t, err)
	return in
}

func TestRotateRightScenario(t *testing.T) {
	in := newTurtle(t, false)
	start := physics.Pose{Position: physics.Vec(1, 0.3, -2), Heading: 0}

	got, err := in.Apply(start, TurtleSet.CodeOf(RotateRight), 0.1)
	require.NoError(t, err)
	require.InDelta(t, 18, got.Heading, 1e-9)
	require.Equal(t, start.Position, got.Position)
}

func TestForwardTranslatesAlongHeading(t *testing.T) {
	in := newTurtle(t, false)
	got, err := in.Apply(physics.Pose{Heading: 90}, 1, 0.2)
	require.NoError(t, err)
	require.InDelta(t, 0.3, got.Position.X, 1e-9)
	require.InDelta(t, 0, got.Position.Z, 1e-9)
	require.Equal(t, 90.0, got.Heading)
}

func TestBallPrimitives(t *testing.T) {
	in, err := NewInterpreter(BallSet, Params{MoveSpeed: 1, RotationSpeed: 200, StrafeFactor: 0.75})
	require.NoError(t, err)

	cases := []struct {
		code    Code
		x, z, h float64
	}{
		{0, 0, 0, 0},
		{1, 0, 0.5, 0},
		{2, 0, -0.5, 0},
		{3, 0, 0, 100},
		{4, 0, 0, 260},
		{5, -0.375, 0, 0},
		{6, 0.375, 0, 0},
	}
	for _, c := range cases {
		got, err := in.Apply(physics.Pose{}, c.code, 0.5)
		require.NoError(t, err)
		require.InDelta(t, c.x, got.Position.X, 1e-9, "code %d", c.code)
		require.InDelta(t, c.z, got.Position.Z, 1e-9, "code %d", c.code)
		require.InDelta(t, c.h, got.Heading, 1e-9, "code %d", c.code)
	}
}

func TestUnknownCodesLeavePoseUnchanged(t *testing.T) {
	permissive := newTurtle(t, false)
	strict := newTurtle(t, true)
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 1000; i++ {
		code := Code(rng.IntN(1000) + TurtleSet.Size())
		if rng.IntN(2) == 0 {
			code = -code
		}
		pose := physics.Pose{Position: physics.Vec(rng.Float64(), 0.3, rng.Float64()), Heading: rng.Float64() * 360}

		got, err := permissive.Apply(pose, code, 0.02)
		require.NoError(t, err)
		require.Equal(t, pose, got)

		got, err = strict.Apply(pose, code, 0.02)
		require.ErrorIs(t, err, ErrInvalidAction)
		require.Equal(t, pose, got)
	}
}

func TestNewInterpreterValidation(t *testing.T) {
	_, err := NewInterpreter(nil, Params{})
	require.ErrorIs(t, err, ErrEmptySet)
	_, err = NewInterpreter(TurtleSet, Params{MoveSpeed: -1})
	require.ErrorIs(t, err, ErrNegativeSpeed)
}

func TestSetLookup(t *testing.T) {
	p, ok := BallSet.Lookup(5)
	require.True(t, ok)
	require.Equal(t, StrafeLeft, p)
	_, ok = TurtleSet.Lookup(4)
	require.False(t, ok)
	require.Equal(t, Code(-1), TurtleSet.CodeOf(StrafeLeft))
	require.Equal(t, "rotate_right", RotateRight.String())
}
