package physics

// Ground-plane kinematics for navigation agents. Positions are gonum r3
// vectors in a left-handed, y-up frame: heading 0 faces +z and positive
// rotation turns toward +x.

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec builds a vector from its components.
func Vec(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }

// Forward returns the unit vector the agent faces at heading degrees.
func Forward(heading float64) r3.Vec {
	rad := heading * math.Pi / 180
	return r3.Vec{X: math.Sin(rad), Z: math.Cos(rad)}
}

// Right returns the unit vector to the agent's right at heading degrees.
func Right(heading float64) r3.Vec {
	rad := heading * math.Pi / 180
	return r3.Vec{X: math.Cos(rad), Z: -math.Sin(rad)}
}

// NormalizeHeading wraps degrees into [0, 360).
func NormalizeHeading(deg float64) float64 {
	h := math.Mod(deg, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// PlanarDistance is the Euclidean distance on the x/z plane.
func PlanarDistance(a, b r3.Vec) float64 { return math.Hypot(b.X-a.X, b.Z-a.Z) }

// BearingTo returns the heading, in degrees within [0, 360), that faces b from a.
func BearingTo(a, b r3.Vec) float64 {
	return NormalizeHeading(math.Atan2(b.X-a.X, b.Z-a.Z) * 180 / math.Pi)
}

// SignedAngle returns the shortest rotation from -> to in (-180, 180].
func SignedAngle(from, to float64) float64 {
	d := NormalizeHeading(to - from)
	if d > 180 {
		d -= 360
	}
	return d
}
