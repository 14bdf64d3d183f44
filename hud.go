package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/swarm/session"
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

func drawHUD(screen *ebiten.Image, hud session.HUD) {
	if hud.State == session.StateMenu {
		return
	}

	// Health bar.
	if hud.MaxHealth > 0 {
		frac := float32(hud.Health) / float32(hud.MaxHealth)
		vector.DrawFilledRect(screen, 16, 16, 160, 12, color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}, false)
		vector.DrawFilledRect(screen, 16, 16, 160*frac, 12, color.NRGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}, false)
	}

	score := fmt.Sprintf("score %d", hud.Score)
	if hud.ScoreThreshold > 0 {
		score = fmt.Sprintf("score %d/%d", hud.Score, hud.ScoreThreshold)
	}
	xp := fmt.Sprintf("xp %d", hud.XP)
	if hud.NextXP >= 0 {
		xp = fmt.Sprintf("xp %d/%d", hud.XP, hud.NextXP)
	}
	lines := []string{
		fmt.Sprintf("level %d: %s  wave %d", hud.Level, hud.LevelName, hud.Wave),
		score,
		xp,
	}
	if len(hud.Perks) > 0 {
		lines = append(lines, "perks: "+strings.Join(hud.Perks, ", "))
	}
	if !hud.DashReady {
		lines = append(lines, "dash charging")
	}
	for i, line := range lines {
		drawText(screen, line, 16, 40+float64(i)*16)
	}

	// Boss bar.
	if hud.BossMaxHealth > 0 {
		frac := float32(hud.BossHealth) / float32(hud.BossMaxHealth)
		vector.DrawFilledRect(screen, baseWidth/2-150, 16, 300, 10, color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}, false)
		vector.DrawFilledRect(screen, baseWidth/2-150, 16, 300*frac, 10, color.NRGBA{R: 0xb7, G: 0x1c, B: 0x1c, A: 0xff}, false)
	}

	switch hud.State {
	case session.StateWaveTransition:
		drawCentered(screen, "wave cleared", baseHeight/2)
	case session.StateLevelComplete:
		drawCentered(screen, "level complete", baseHeight/2)
	}
}

func drawText(screen *ebiten.Image, str string, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff})
	ebtext.Draw(screen, str, hudFace, op)
}

func drawCentered(screen *ebiten.Image, str string, y float64) {
	w, _ := ebtext.Measure(str, hudFace, 0)
	drawText(screen, str, baseWidth/2-w/2, y)
}
