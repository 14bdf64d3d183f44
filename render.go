package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/swarm/ecs/component"
	"github.com/milk9111/swarm/session"
)

var kindColors = map[component.UnitKind]color.NRGBA{
	component.KindPlayer:     {R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
	component.KindChaser:     {R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
	component.KindShooter:    {R: 0xfb, G: 0x8c, B: 0x00, A: 0xff},
	component.KindBomber:     {R: 0xab, G: 0x47, B: 0xbc, A: 0xff},
	component.KindBoss:       {R: 0xb7, G: 0x1c, B: 0x1c, A: 0xff},
	component.KindGiantBoss:  {R: 0x88, G: 0x0e, B: 0x4f, A: 0xff},
	component.KindProjectile: {R: 0xff, G: 0xee, B: 0x58, A: 0xff},
}

func drawArena(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x12, G: 0x12, B: 0x1a, A: 0xff})
}

func drawEntity(screen *ebiten.Image, view session.EntityView) {
	clr, ok := kindColors[view.Kind]
	if !ok {
		// Pickups get their own palette.
		clr = color.NRGBA{R: 0x29, G: 0xb6, B: 0xf6, A: 0xff}
		if view.PickupKind == component.PickupHealth {
			clr = color.NRGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff}
		}
	}
	if view.Invulnerable {
		clr.A = 0x80
	}

	cx := float32(view.Pos.X)
	cy := float32(view.Pos.Y)
	r := float32(view.Radius)
	vector.DrawFilledCircle(screen, cx, cy, r, clr, true)

	if view.Stunned {
		vector.StrokeCircle(screen, cx, cy, r+3, 2, color.NRGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}, true)
	}

	// Facing tick for anything that aims.
	if view.Kind != component.KindProjectile && view.Kind != component.KindPickup {
		tip := view.Pos.Add(view.Facing.Mult(view.Radius + 6))
		vector.StrokeLine(screen, cx, cy, float32(tip.X), float32(tip.Y), 2, clr, true)
	}

	// Health pip bar over wounded enemies.
	if view.MaxHealth > 0 && view.Health < view.MaxHealth && view.Kind.Enemy() {
		frac := float32(view.Health) / float32(view.MaxHealth)
		w := 2 * r
		vector.DrawFilledRect(screen, cx-r, cy-r-8, w, 3, color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}, false)
		vector.DrawFilledRect(screen, cx-r, cy-r-8, w*frac, 3, color.NRGBA{R: 0x66, G: 0xbb, B: 0x6a, A: 0xff}, false)
	}
}
