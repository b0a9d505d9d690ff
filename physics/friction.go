package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// contactMargin keeps a resting contact alive across steps so a ball on the
// ground does not flicker between touching and falling.
const contactMargin = 0.02

// applyContactFriction removes the slip of dynamic spheres resting on static
// bodies. feather only applies friction alongside a positive normal impulse,
// which a resting contact settled by the position solve never produces, so a
// torque-driven ball would otherwise spin in place. The impulse is bounded by
// Coulomb's law with the gravity load as the normal force.
func (w *World) applyContactFriction(dt float64) {
	if w.Friction <= 0 {
		return
	}
	for _, b := range w.bodies {
		if b.Static() || b.shape.Kind != ShapeSphere {
			continue
		}
		for _, other := range w.candidates(b) {
			n, ok := sphereContactNormal(b, other)
			if !ok {
				continue
			}
			load := -w.Gravity.Dot(n)
			if load <= 0 {
				continue
			}

			arm := n.Mul(-b.shape.Radius)
			vp := b.Velocity.Add(b.AngularVelocity.Cross(arm))
			vt := vp.Sub(n.Mul(vp.Dot(n)))
			slip := vt.Len()
			if slip < 1e-9 {
				continue
			}
			t := vt.Mul(1 / slip)

			invI := b.rb.GetInverseInertiaWorld()
			k := 1/b.mass + invI.Mul3x1(arm.Cross(t)).Cross(arm).Dot(t)
			if k <= 0 {
				continue
			}
			j := math.Min(slip/k, w.Friction*b.mass*load*dt)
			b.applyImpulse(t.Mul(-j), arm)
		}
	}
}

// sphereContactNormal returns the direction from other's surface to the
// centre of sphere b when the two are within the contact margin.
func sphereContactNormal(b, other *Body) (mgl64.Vec3, bool) {
	var closest mgl64.Vec3
	switch other.shape.Kind {
	case ShapeBox:
		closest = closestPointOnBox(other, b.Position)
	case ShapeSphere:
		dir := b.Position.Sub(other.Position)
		if l := dir.Len(); l > 0 {
			closest = other.Position.Add(dir.Mul(other.shape.Radius / l))
		} else {
			closest = other.Position.Add(mgl64.Vec3{0, other.shape.Radius, 0})
		}
	default:
		return mgl64.Vec3{}, false
	}

	delta := b.Position.Sub(closest)
	dist := delta.Len()
	if dist > b.shape.Radius+contactMargin {
		return mgl64.Vec3{}, false
	}
	if dist < 1e-9 {
		return mgl64.Vec3{0, 1, 0}, true
	}
	return delta.Mul(1 / dist), true
}

// closestPointOnBox clamps p into the (possibly rotated) box of other.
func closestPointOnBox(other *Body, p mgl64.Vec3) mgl64.Vec3 {
	h := other.shape.HalfExtents
	local := other.Quaternion.Inverse().Rotate(p.Sub(other.Position))
	for i := 0; i < 3; i++ {
		local[i] = math.Max(-h[i], math.Min(h[i], local[i]))
	}
	return other.Position.Add(other.Quaternion.Rotate(local))
}
