package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	defaultFovY = 75.0
	defaultNear = 0.1
	defaultFar  = 1000.0
)

// Camera is a perspective camera that always looks at Target.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	FovY     float64
	Near     float64
	Far      float64
}

func New(position, target mgl64.Vec3) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		FovY:     defaultFovY,
		Near:     defaultNear,
		Far:      defaultFar,
	}
}

func (c *Camera) SetPosition(p mgl64.Vec3) {
	c.Position = p
}

func (c *Camera) LookAt(target mgl64.Vec3) {
	c.Target = target
}

// Follow moves the camera by the target's displacement since the last frame,
// keeping the current viewing offset.
func (c *Camera) Follow(target mgl64.Vec3) {
	displacement := target.Sub(c.Target)
	c.Position = c.Position.Add(displacement)
	c.Target = target
}

func (c *Camera) View() mgl64.Mat4 {
	up := mgl64.Vec3{0, 1, 0}
	forward := c.Target.Sub(c.Position)
	if forward.Len() > 0 && math.Abs(forward.Normalize().Dot(up)) > 0.999 {
		up = mgl64.Vec3{0, 0, -1}
	}
	return mgl64.LookAtV(c.Position, c.Target, up)
}

func (c *Camera) ViewProjection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	proj := mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
	return proj.Mul4(c.View())
}

// Project maps a world point to screen pixels. ok is false for points behind
// the camera.
func (c *Camera) Project(p mgl64.Vec3, width, height float64) (x, y float64, ok bool) {
	clip := c.ViewProjection(width / height).Mul4x1(p.Vec4(1))
	if clip.W() <= c.Near {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * width
	y = (1 - ndc.Y()) / 2 * height
	return x, y, true
}

// Scale returns how many pixels one world unit spans at distance of p.
func (c *Camera) Scale(p mgl64.Vec3, height float64) float64 {
	d := p.Sub(c.Position).Len()
	if d <= 0 {
		return 0
	}
	return height / (2 * d * math.Tan(mgl64.DegToRad(c.FovY)/2))
}
