package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/swarm/prefabs"
)

func main() {
	seed := flag.Int64("seed", 0, "simulation seed (0 = from clock)")
	watch := flag.Bool("watch", false, "reload config tables when they change on disk")
	flag.Parse()

	cfg, err := prefabs.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("swarm")

	game := NewGame(cfg, *seed, *watch)
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
