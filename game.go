package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/islandroll/assets"
	"github.com/milk9111/islandroll/camera"
	"github.com/milk9111/islandroll/common"
	"github.com/milk9111/islandroll/ecs"
	"github.com/milk9111/islandroll/input"
	"github.com/milk9111/islandroll/prefabs"
	"github.com/milk9111/islandroll/scene"
)

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyW:          input.KeyForward,
	ebiten.KeyArrowUp:    input.KeyForward,
	ebiten.KeyS:          input.KeyBack,
	ebiten.KeyArrowDown:  input.KeyBack,
	ebiten.KeyA:          input.KeyLeft,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyD:          input.KeyRight,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeySpace:      input.KeyJump,
	ebiten.KeyR:          input.KeyResetCamera,
}

type Options struct {
	Debug       bool
	Rand        *rand.Rand
	Accumulate  bool
	DisableWind bool
}

type Game struct {
	debug bool
	start time.Time

	scene    *scene.Scene
	camera   *camera.Camera
	hub      *input.Hub
	panel    *WindPanel
	renderer *Renderer
	chime    *audio.Player
	watcher  *prefabs.Watcher

	keys []ebiten.Key
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{
		debug:    opts.Debug,
		start:    time.Now(),
		camera:   camera.New(mgl64.Vec3{}, mgl64.Vec3{}),
		hub:      input.NewHub(),
		renderer: NewRenderer(),
	}

	s, err := scene.New(scene.Config{
		Camera:      g.camera,
		Input:       g.hub,
		Rand:        opts.Rand,
		Accumulate:  opts.Accumulate,
		DisableWind: opts.DisableWind,
	})
	if err != nil {
		return nil, err
	}
	g.scene = s

	pos, target, fov := s.CameraStart()
	g.camera.SetPosition(pos)
	g.camera.LookAt(target)
	if fov > 0 {
		g.camera.FovY = fov
	}

	g.panel = NewWindPanel(s.WindEnabled(), s.SetWindEnabled)
	g.panel.SetStatus(s.WindStatus())
	g.chime = assets.NewChimePlayer()

	if g.debug {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("game: prefab hot reload off: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	g.pollKeys()
	g.panel.UI.Update()

	g.scene.Update(g.now())
	g.camera.Follow(g.scene.PlayerPosition())

	g.panel.SetEnabled(g.scene.WindEnabled())
	g.panel.SetStatus(g.scene.WindStatus())

	for _, ev := range g.scene.World().Events().Drain() {
		if ev.Type != ecs.EventPickup {
			continue
		}
		g.chime.Rewind()
		g.chime.Play()
	}

	g.reloadChanged()
	return nil
}

// now is the frame timestamp in milliseconds since the game started.
func (g *Game) now() float64 {
	return float64(time.Since(g.start)) / float64(time.Millisecond)
}

func (g *Game) pollKeys() {
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key, ok := keyMap[k]; ok {
			g.hub.Publish(input.Event{Key: key, Pressed: true})
		}
	}

	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key, ok := keyMap[k]; ok {
			g.hub.Publish(input.Event{Key: key, Pressed: false})
		}
	}
}

func (g *Game) reloadChanged() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.scene.ReloadTuning(path); err != nil {
				log.Printf("game: reload %s: %v", prefabs.PrefabName(path), err)
				continue
			}
			log.Printf("game: reloaded %s", prefabs.PrefabName(path))
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.scene.World(), g.camera, g.scene.Background())
	drawHUD(screen, g.scene.Elapsed(), g.scene.Best())
	g.panel.UI.Draw(screen)

	if g.debug {
		drawDebug(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	g.scene.Close()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("game: close watcher: %v", err)
		}
	}
}
