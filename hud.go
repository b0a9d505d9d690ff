package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/islandroll/assets"
	"github.com/milk9111/islandroll/common"
)

const (
	hudMargin     = 12
	hudLineHeight = 18
	instructions  = "WASD / Arrows to Move | SPACE to Jump | R to Reset Camera"
)

var hudShadow = color.NRGBA{A: 0xa0}

func drawHUD(screen *ebiten.Image, elapsed, best float64) {
	drawHUDText(screen, fmt.Sprintf("Time: %.1fs", elapsed), hudMargin, hudMargin)
	drawHUDText(screen, fmt.Sprintf("Best: %.1fs", best), hudMargin, hudMargin+hudLineHeight)

	w, _ := ebtext.Measure(instructions, assets.Face, 0)
	drawHUDText(screen, instructions, (common.BaseWidth-w)/2, common.BaseHeight-hudMargin-hudLineHeight)
}

func drawHUDText(screen *ebiten.Image, s string, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x+1, y+1)
	op.ColorScale.ScaleWithColor(hudShadow)
	ebtext.Draw(screen, s, assets.Face, op)

	op = &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	ebtext.Draw(screen, s, assets.Face, op)
}

func drawDebug(screen *ebiten.Image, s string) {
	ebitenutil.DebugPrintAt(screen, s, hudMargin, common.BaseHeight/2)
}
