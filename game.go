package main

import (
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/swarm/common"
	"github.com/milk9111/swarm/ecs/component"
	"github.com/milk9111/swarm/prefabs"
	"github.com/milk9111/swarm/session"
)

const (
	baseWidth  = common.ArenaWidth
	baseHeight = common.ArenaHeight
)

type Game struct {
	cfg   *prefabs.Config
	seed  int64
	input *Input

	session   *session.Session
	views     []session.EntityView
	hud       session.HUD
	playerPos cp.Vector

	menuUI      *ebitenui.UI
	pauseUI     *ebitenui.UI
	gameOverUI  *ebitenui.UI
	gameOverFor session.State
	perkUI      *ebitenui.UI
	perkOffer   string

	watcher       *prefabs.Watcher
	reloadPending bool
}

func NewGame(cfg *prefabs.Config, seed int64, watch bool) *Game {
	g := &Game{
		cfg:     cfg,
		seed:    seed,
		input:   NewInput(),
		session: session.NewSession(cfg, seed),
	}
	g.menuUI = newMenuUI(g)
	g.pauseUI = newPauseUI(g)

	if watch {
		watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("game: config watcher: %v", err)
		} else {
			g.watcher = watcher
		}
	}
	return g
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.drainWatcher()
	g.input.Update()

	switch g.session.State() {
	case session.StateMenu:
		g.menuUI.Update()

	case session.StatePaused:
		g.pauseUI.Update()
		if g.input.PausePressed() {
			g.session.Resume()
		}

	case session.StateDefeat, session.StateVictory:
		g.ensureGameOverUI()
		g.gameOverUI.Update()

	default:
		if g.session.PerkOfferPending() {
			g.ensurePerkUI()
			g.perkUI.Update()
		}
		if g.input.PausePressed() {
			g.session.Pause()
		}
		g.session.Tick(g.input.Frame(g.playerPos))
	}

	g.views, g.hud = g.session.Snapshot()
	for _, view := range g.views {
		if view.Kind == component.KindPlayer {
			g.playerPos = view.Pos
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawArena(screen)
	for _, view := range g.views {
		drawEntity(screen, view)
	}
	drawHUD(screen, g.hud)

	switch g.session.State() {
	case session.StateMenu:
		g.menuUI.Draw(screen)
	case session.StatePaused:
		g.pauseUI.Draw(screen)
	case session.StateDefeat, session.StateVictory:
		if g.gameOverUI != nil {
			g.gameOverUI.Draw(screen)
		}
	default:
		if g.session.PerkOfferPending() && g.perkUI != nil {
			g.perkUI.Draw(screen)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

// startRun leaves the menu, picking up edited config tables first when the
// watcher flagged any.
func (g *Game) startRun() {
	if g.reloadPending {
		cfg, err := prefabs.LoadConfig()
		if err != nil {
			log.Printf("game: config reload rejected: %v", err)
		} else {
			g.cfg = cfg
			log.Printf("game: config reloaded")
		}
		g.reloadPending = false
	}
	g.session = session.NewSession(g.cfg, g.seed)
	g.session.StartRun()
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name := <-g.watcher.Events:
			log.Printf("game: config change detected: %s", name)
			g.reloadPending = true
		case err := <-g.watcher.Errors:
			log.Printf("game: config watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) ensureGameOverUI() {
	if g.gameOverUI != nil && g.gameOverFor == g.session.State() {
		return
	}
	g.gameOverFor = g.session.State()
	g.gameOverUI = newGameOverUI(g, g.gameOverFor == session.StateVictory)
}

func (g *Game) ensurePerkUI() {
	offer := g.session.Progression().PendingOffer()
	signature := ""
	for _, perk := range offer {
		signature += perk.ID + "|"
	}
	if g.perkUI != nil && g.perkOffer == signature {
		return
	}
	g.perkOffer = signature
	g.perkUI = newPerkUI(g, offer)
}
