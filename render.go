package main

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/islandroll/camera"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/ecs/component"
	"github.com/milk9111/islandroll/physics"
	"golang.org/x/image/colornames"
)

const flowerRadius = 0.3

var lightDir = mgl64.Vec3{0.4, 1, 0.3}.Normalize()

// drawable is one depth-sorted piece of the frame.
type drawable struct {
	depth float64
	draw  func(screen *ebiten.Image)
}

// Renderer draws the world with a painter's sort: box faces and sprites are
// ordered back to front by distance from the camera.
type Renderer struct {
	white    *ebiten.Image
	items    []drawable
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewRenderer() *Renderer {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &Renderer{
		white: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World, cam *camera.Camera, background color.Color) {
	screen.Fill(background)

	b := screen.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())
	r.items = r.items[:0]

	ecs.ForEach(w, component.IslandComponent.Kind(), func(e ecs.Entity, _ *component.Island) {
		r.queueBox(w, e, cam, width, height)
	})
	ecs.ForEach(w, component.CollectibleComponent.Kind(), func(e ecs.Entity, _ *component.Collectible) {
		r.queueFlower(w, e, cam, width, height)
	})
	if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		r.queueBall(w, e, cam, width, height)
	}

	sort.SliceStable(r.items, func(i, j int) bool {
		return r.items[i].depth > r.items[j].depth
	})
	for _, it := range r.items {
		it.draw(screen)
	}

	r.drawWind(screen, w, cam, width, height)
}

func (r *Renderer) queueBox(w *ecs.World, e ecs.Entity, cam *camera.Camera, width, height float64) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Shape != physics.ShapeBox {
		return
	}
	base := entityColor(w, e, colornames.Forestgreen)
	rot := t.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	h := pb.HalfExtents

	for axis := 0; axis < 3; axis++ {
		for _, sign := range []float64{1, -1} {
			var n mgl64.Vec3
			n[axis] = sign
			worldN := rot.Rotate(n)
			centre := t.Position.Add(rot.Rotate(n.Mul(h[axis])))
			if worldN.Dot(cam.Position.Sub(centre)) <= 0 {
				continue
			}

			u, v := (axis+1)%3, (axis+2)%3
			var du, dv mgl64.Vec3
			du[u] = h[u]
			dv[v] = h[v]
			du, dv = rot.Rotate(du), rot.Rotate(dv)
			corners := [4]mgl64.Vec3{
				centre.Add(du).Add(dv),
				centre.Add(du).Sub(dv),
				centre.Sub(du).Sub(dv),
				centre.Sub(du).Add(dv),
			}

			var pts [4][2]float32
			visible := true
			for i, c := range corners {
				x, y, ok := cam.Project(c, width, height)
				if !ok {
					visible = false
					break
				}
				pts[i] = [2]float32{float32(x), float32(y)}
			}
			if !visible {
				continue
			}

			clr := shade(base, worldN)
			r.items = append(r.items, drawable{
				depth: centre.Sub(cam.Position).Len(),
				draw: func(screen *ebiten.Image) {
					r.fillQuad(screen, pts, clr)
				},
			})
		}
	}
}

func (r *Renderer) queueFlower(w *ecs.World, e ecs.Entity, cam *camera.Camera, width, height float64) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	x, y, ok := cam.Project(t.Position, width, height)
	if !ok {
		return
	}
	rad := float32(flowerRadius * cam.Scale(t.Position, height))
	petal := entityColor(w, e, colornames.Hotpink)

	// the spin shows as a petal dot circling the centre
	rot := t.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	tip := t.Position.Add(rot.Rotate(mgl64.Vec3{flowerRadius, 0, 0}))
	tx, ty, tipOK := cam.Project(tip, width, height)

	r.items = append(r.items, drawable{
		depth: t.Position.Sub(cam.Position).Len(),
		draw: func(screen *ebiten.Image) {
			vector.FillCircle(screen, float32(x), float32(y), rad, petal, true)
			vector.FillCircle(screen, float32(x), float32(y), rad*0.4, colornames.Gold, true)
			if tipOK {
				vector.FillCircle(screen, float32(tx), float32(ty), rad*0.3, colornames.White, true)
			}
		},
	})
}

func (r *Renderer) queueBall(w *ecs.World, e ecs.Entity, cam *camera.Camera, width, height float64) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	x, y, ok := cam.Project(t.Position, width, height)
	if !ok {
		return
	}
	rad := float32(pb.Radius * cam.Scale(t.Position, height))
	clr := entityColor(w, e, colornames.Whitesmoke)

	rot := t.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	// a band around the ball's local equator makes the roll visible
	var band [][2]float32
	toCam := cam.Position.Sub(t.Position)
	for i := 0; i < 16; i++ {
		a := 2 * math.Pi * float64(i) / 16
		p := t.Position.Add(rot.Rotate(mgl64.Vec3{math.Cos(a) * pb.Radius, 0, math.Sin(a) * pb.Radius}))
		if p.Sub(t.Position).Dot(toCam) < 0 {
			continue
		}
		if px, py, ok := cam.Project(p, width, height); ok {
			band = append(band, [2]float32{float32(px), float32(py)})
		}
	}

	r.items = append(r.items, drawable{
		depth: t.Position.Sub(cam.Position).Len(),
		draw: func(screen *ebiten.Image) {
			vector.FillCircle(screen, float32(x), float32(y), rad, clr, true)
			vector.StrokeCircle(screen, float32(x), float32(y), rad, 1.5, colornames.Dimgray, true)
			for _, p := range band {
				vector.FillCircle(screen, p[0], p[1], rad*0.12, colornames.Steelblue, true)
			}
		},
	})
}

func (r *Renderer) drawWind(screen *ebiten.Image, w *ecs.World, cam *camera.Camera, width, height float64) {
	e, ok := ecs.First(w, component.WindIndicatorComponent.Kind())
	if !ok {
		return
	}
	ind, ok := ecs.Get(w, e, component.WindIndicatorComponent.Kind())
	if !ok || !ind.Visible || ind.Length <= 0 {
		return
	}

	tail := ind.Position
	head := tail.Add(ind.Direction.Mul(ind.Length))
	x0, y0, ok0 := cam.Project(tail, width, height)
	x1, y1, ok1 := cam.Project(head, width, height)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 3, colornames.Red, true)

	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l < 1 {
		return
	}
	dx, dy = dx/l, dy/l
	const headLen = 10
	for _, side := range []float64{1, -1} {
		hx := x1 - headLen*(dx*0.8-side*dy*0.5)
		hy := y1 - headLen*(dy*0.8+side*dx*0.5)
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(hx), float32(hy), 3, colornames.Red, true)
	}
}

func (r *Renderer) fillQuad(screen *ebiten.Image, pts [4][2]float32, clr color.NRGBA) {
	cr := float32(clr.R) / 255
	cg := float32(clr.G) / 255
	cb := float32(clr.B) / 255
	ca := float32(clr.A) / 255

	r.vertices = r.vertices[:0]
	for _, p := range pts {
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX:   p[0],
			DstY:   p[1],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	r.indices = append(r.indices[:0], 0, 1, 2, 0, 2, 3)
	screen.DrawTriangles(r.vertices, r.indices, r.white, nil)
}

func entityColor(w *ecs.World, e ecs.Entity, def color.RGBA) color.NRGBA {
	if a, ok := ecs.Get(w, e, component.AppearanceComponent.Kind()); ok && a.Color.A > 0 {
		return a.Color
	}
	return color.NRGBA{R: def.R, G: def.G, B: def.B, A: def.A}
}

// shade darkens faces that point away from the light.
func shade(c color.NRGBA, normal mgl64.Vec3) color.NRGBA {
	k := 0.45 + 0.55*math.Max(0, normal.Dot(lightDir))
	return color.NRGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}
