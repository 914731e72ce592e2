package physics

import "gonum.org/v1/gonum/spatial/r3"

// Pose is an agent's position and heading on the ground plane.
type Pose struct {
	Position r3.Vec
	Heading  float64
}

// Translate moves the pose by delta on the ground plane; Y is left untouched.
func (p Pose) Translate(delta r3.Vec) Pose {
	p.Position.X += delta.X
	p.Position.Z += delta.Z
	return p
}

// Rotate turns the pose by deg degrees, keeping the heading in [0, 360).
func (p Pose) Rotate(deg float64) Pose {
	p.Heading = NormalizeHeading(p.Heading + deg)
	return p
}

// Advance moves distance units along the current heading.
func (p Pose) Advance(distance float64) Pose {
	return p.Translate(r3.Scale(distance, Forward(p.Heading)))
}

// Strafe moves distance units along the current right vector; negative is left.
func (p Pose) Strafe(distance float64) Pose {
	return p.Translate(r3.Scale(distance, Right(p.Heading)))
}
