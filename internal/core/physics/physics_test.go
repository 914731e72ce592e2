package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestNormalizeHeading(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-720, 0},
	}
	for _, c := range cases {
		require.InDelta(t, c.want, NormalizeHeading(c.in), eps, "in=%v", c.in)
	}
}

func TestForwardAndRightAreOrthogonal(t *testing.T) {
	for _, h := range []float64{0, 30, 90, 180, 271} {
		f, r := Forward(h), Right(h)
		require.InDelta(t, 0, f.X*r.X+f.Z*r.Z, eps)
		require.InDelta(t, 1, math.Hypot(f.X, f.Z), eps)
	}
	require.InDelta(t, 1, Forward(0).Z, eps)
	require.InDelta(t, 1, Forward(90).X, eps)
	require.InDelta(t, 1, Right(0).X, eps)
}

func TestPoseAdvanceKeepsGroundHeight(t *testing.T) {
	p := Pose{Position: Vec(0, 0.3, 0)}
	p = p.Advance(2)
	require.InDelta(t, 2, p.Position.Z, eps)
	require.InDelta(t, 0.3, p.Position.Y, eps)

	p = p.Rotate(90).Strafe(-1)
	require.InDelta(t, 270, p.Rotate(180).Heading, eps)
	require.InDelta(t, 3, p.Position.Z, eps)
}

func TestBearingAndSignedAngle(t *testing.T) {
	require.InDelta(t, 90, BearingTo(Vec(0, 0, 0), Vec(1, 0, 0)), eps)
	require.InDelta(t, 180, BearingTo(Vec(0, 0, 0), Vec(0, 0, -1)), eps)
	require.InDelta(t, -20, SignedAngle(10, 350), eps)
	require.InDelta(t, 30, SignedAngle(350, 20), eps)
	require.InDelta(t, 5, PlanarDistance(Vec(0, 1, 0), Vec(3, 7, 4)), eps)
}
