package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/islandroll/assets"
)

// WindPanel is the top-right panel with the wind toggle and status readout.
type WindPanel struct {
	UI *ebitenui.UI

	toggleBtn *widget.Button
	status    *widget.Text
	enabled   bool
	onToggle  func(enabled bool)
}

func NewWindPanel(enabled bool, onToggle func(enabled bool)) *WindPanel {
	p := &WindPanel{enabled: enabled, onToggle: onToggle}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 200})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255})

	var fontFace ebtext.Face = assets.Face
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	title := widget.NewLabel(
		widget.LabelOpts.Text("Wind", &fontFace, &widget.LabelColor{Idle: white, Disabled: color.Gray{Y: 140}}),
	)

	p.toggleBtn = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Hover: btnHover, Pressed: btnPressed}),
		widget.ButtonOpts.Text(toggleLabel(enabled), &fontFace, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			p.SetEnabled(!p.enabled)
			if p.onToggle != nil {
				p.onToggle(p.enabled)
			}
		}),
	)

	p.status = widget.NewText(
		widget.TextOpts.Text(statusLabel(""), &fontFace, white),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(p.toggleBtn)
	panel.AddChild(p.status)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	p.UI = &ebitenui.UI{Container: root}
	return p
}

// SetEnabled updates the toggle label without firing the callback.
func (p *WindPanel) SetEnabled(enabled bool) {
	if p == nil {
		return
	}
	p.enabled = enabled
	if p.toggleBtn == nil {
		return
	}
	if text := p.toggleBtn.Text(); text != nil {
		text.Label = toggleLabel(enabled)
	}
}

func (p *WindPanel) SetStatus(status string) {
	if p == nil || p.status == nil {
		return
	}
	p.status.Label = statusLabel(status)
}

func toggleLabel(enabled bool) string {
	if enabled {
		return "Enable Wind: On"
	}
	return "Enable Wind: Off"
}

func statusLabel(status string) string {
	return "Wind Status: " + status
}
