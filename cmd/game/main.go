package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Delay-The-Inevitable/internal/audio"
	"github.com/Garsondee/Delay-The-Inevitable/internal/game"
	"github.com/Garsondee/Delay-The-Inevitable/internal/replay"
	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
	"github.com/Garsondee/Delay-The-Inevitable/internal/store"
)

func main() {
	var configPath string
	var seed int64
	var dbPath string
	var mute bool
	var replayDir string

	flag.StringVar(&configPath, "config", "", "YAML tuning file (defaults when empty)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 picks one from the clock)")
	flag.StringVar(&dbPath, "db", "delay.db", "sqlite file for the highscore and run history")
	flag.BoolVar(&mute, "mute", false, "disable sound")
	flag.StringVar(&replayDir, "replay-dir", "", "directory to save the session replay on exit")
	flag.Parse()

	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	state, err := sim.New(cfg, sim.WithSeed(seed), sim.WithHighscore(db))
	if err != nil {
		log.Fatal(err)
	}
	if err := state.HighscoreErr(); err != nil {
		log.Printf("highscore: %v", err)
	}

	if !mute {
		sounds := audio.NewSoundManager()
		if err := sounds.Initialize(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer sounds.Cleanup()
			state.Subscribe(sounds)
		}
	}

	rec := replay.NewRecorder(state)
	g := game.New(state, rec)
	g.OnRunEnd = func(r sim.RunReport) {
		if _, err := db.RecordRun(r); err != nil {
			log.Printf("record run: %v", err)
		}
	}

	ebiten.SetWindowTitle("Delay the Inevitable")
	ebiten.SetWindowSize(g.WindowSize())
	runErr := ebiten.RunGame(g)

	if replayDir != "" && rec.Len() > 0 {
		if err := os.MkdirAll(replayDir, 0o750); err != nil {
			log.Printf("replay: %v", err)
		} else {
			path := filepath.Join(replayDir, fmt.Sprintf("session-%d.replay", seed))
			if err := replay.Save(path, rec.Recording()); err != nil {
				log.Printf("replay: %v", err)
			} else {
				log.Printf("replay saved to %s", path)
			}
		}
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
