package spawn

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func TestBoxAroundPivotStaysInBounds(t *testing.T) {
	box := Box{Pivot: r3.Vec{X: 10, Z: 10}, HalfExtent: 8, Y: 0.5}
	rng := rand.New(rand.NewPCG(1, 1))

	for i := 0; i < 10000; i++ {
		p := box.Sample(rng, r3.Vec{})
		require.GreaterOrEqual(t, p.X, 2.0)
		require.LessOrEqual(t, p.X, 18.0)
		require.GreaterOrEqual(t, p.Z, 2.0)
		require.LessOrEqual(t, p.Z, 18.0)
		require.Equal(t, 0.5, p.Y)
	}

	require.Equal(t, r3.Vec{X: 2, Y: 0.5, Z: 2}, box.Sample(constRand(0), r3.Vec{}))
}

func TestRingDistanceFromOrigin(t *testing.T) {
	ring := Ring{MinRadius: 1, MaxRadius: 2.5, Y: 0.3}
	origin := r3.Vec{X: 3, Y: 0.3, Z: -4}
	rng := rand.New(rand.NewPCG(9, 9))

	for i := 0; i < 10000; i++ {
		p := ring.Sample(rng, origin)
		d := math.Hypot(p.X-origin.X, p.Z-origin.Z)
		require.GreaterOrEqual(t, d, 1.0-1e-9)
		require.LessOrEqual(t, d, 2.5+1e-9)
		require.Equal(t, 0.3, p.Y)
	}

	p := ring.Sample(constRand(0), r3.Vec{})
	require.InDelta(t, 0, p.X, 1e-12)
	require.InDelta(t, 1, p.Z, 1e-12)
}

func TestConsecutiveSamplesAreIndependent(t *testing.T) {
	box := Box{HalfExtent: 8}
	rng := rand.New(rand.NewPCG(42, 0))
	a := box.Sample(rng, r3.Vec{})
	b := box.Sample(rng, r3.Vec{})
	require.NotEqual(t, a, b)
}

func TestSpecBuild(t *testing.T) {
	s, err := Spec{Kind: KindBox, Pivot: [3]float64{1, 0, 2}, HalfExtent: 3}.Build(0.5)
	require.NoError(t, err)
	require.Equal(t, Box{Pivot: r3.Vec{X: 1, Z: 2}, HalfExtent: 3, Y: 0.5}, s)

	s, err = Spec{Kind: KindFixed, Pivot: [3]float64{4, 9, 5}}.Build(0.3)
	require.NoError(t, err)
	require.Equal(t, r3.Vec{X: 4, Y: 0.3, Z: 5}, s.Sample(nil, r3.Vec{}))

	_, err = Spec{Kind: KindRing, MinRadius: 3, MaxRadius: 1}.Build(0)
	require.ErrorIs(t, err, ErrInvalidSpec)
	_, err = Spec{Kind: KindBox, HalfExtent: -1}.Build(0)
	require.ErrorIs(t, err, ErrInvalidSpec)
	_, err = Spec{Kind: "disk"}.Build(0)
	require.ErrorIs(t, err, ErrInvalidSpec)
}
