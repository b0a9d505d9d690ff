package common

import "github.com/go-gl/mathgl/mgl64"

const (
	BaseWidth  = 960
	BaseHeight = 540
)

// ClampLength rescales v to length max when it is longer than max. Shorter
// (and zero) vectors are returned unchanged.
func ClampLength(v mgl64.Vec3, max float64) mgl64.Vec3 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}

// Horizontal drops the y component.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}
