package main

import (
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/swarm/prefabs"
)

// The menus use colored nine-slices and the built-in basic font, so no
// theme assets are needed.

var clipboardReady bool

func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func newPanel(minW, minH int) *widget.Container {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(minW, minH),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
}

func newTitle(face *ebtext.Face, label string) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func newButton(face *ebtext.Face, label string, onClick func()) *widget.Button {
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(label, face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func wrapUI(panel *widget.Container) *ebitenui.UI {
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func newMenuUI(g *Game) *ebitenui.UI {
	face := uiFace()
	panel := newPanel(baseWidth/2, baseHeight/2)
	panel.AddChild(newTitle(face, "swarm"))
	panel.AddChild(newButton(face, "Start", func() {
		g.startRun()
	}))
	return wrapUI(panel)
}

func newPauseUI(g *Game) *ebitenui.UI {
	face := uiFace()
	panel := newPanel(baseWidth/2, baseHeight/2)
	panel.AddChild(newTitle(face, "Paused"))
	panel.AddChild(newButton(face, "Resume", func() {
		g.session.Resume()
	}))
	panel.AddChild(newButton(face, "Restart Level", func() {
		g.session.Restart()
	}))
	panel.AddChild(newButton(face, "Main Menu", func() {
		g.session.ToMenu()
	}))
	return wrapUI(panel)
}

func newGameOverUI(g *Game, victory bool) *ebitenui.UI {
	face := uiFace()
	title := "Defeat"
	if victory {
		title = "Victory"
	}

	panel := newPanel(baseWidth/2, baseHeight/2)
	panel.AddChild(newTitle(face, title))
	panel.AddChild(newTitle(face, g.session.RunSummary()))
	if !victory {
		panel.AddChild(newButton(face, "Retry Level", func() {
			g.session.Restart()
		}))
	}
	panel.AddChild(newButton(face, "Copy Summary", func() {
		copySummary(g.session.RunSummary())
	}))
	panel.AddChild(newButton(face, "Main Menu", func() {
		g.session.ToMenu()
	}))
	return wrapUI(panel)
}

func newPerkUI(g *Game, offer []prefabs.PerkSpec) *ebitenui.UI {
	face := uiFace()
	panel := newPanel(baseWidth/2, baseHeight/3)
	panel.AddChild(newTitle(face, "Level Up! Choose a perk"))
	for _, perk := range offer {
		id := perk.ID
		panel.AddChild(newButton(face, perk.Name+" - "+perk.Description, func() {
			if err := g.session.ChoosePerk(id); err != nil {
				log.Printf("game: choose perk %s: %v", id, err)
			}
		}))
	}
	return wrapUI(panel)
}

func copySummary(text string) {
	if !clipboardReady {
		if err := clipboard.Init(); err != nil {
			log.Printf("game: clipboard unavailable: %v", err)
			return
		}
		clipboardReady = true
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
}
