package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Delay-The-Inevitable/internal/audio"
	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
	"github.com/Garsondee/Delay-The-Inevitable/internal/store"
	"github.com/Garsondee/Delay-The-Inevitable/internal/tui"
)

func main() {
	var configPath string
	var seed int64
	var dbPath string
	var mute bool

	flag.StringVar(&configPath, "config", "", "YAML tuning file (defaults when empty)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 picks one from the clock)")
	flag.StringVar(&dbPath, "db", "delay.db", "sqlite file for the highscore and run history")
	flag.BoolVar(&mute, "mute", false, "disable sound")
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

	tracker := sim.NewRunTracker(seed)
	state, err := sim.New(cfg, sim.WithSeed(seed), sim.WithHighscore(db), sim.WithListener(tracker))
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	app := tui.New(screen, state, nil)
	if err := state.HighscoreErr(); err != nil {
		app.SetStatus("highscore: " + err.Error())
	}
	state.Subscribe(sim.ListenerFunc(func(e sim.Event) {
		if e.Kind != sim.EventPlayerDied {
			return
		}
		if _, err := db.RecordRun(tracker.Report()); err != nil {
			app.SetStatus("record run: " + err.Error())
		}
	}))

	if !mute {
		sounds := audio.NewSoundManager()
		if err := sounds.Initialize(); err != nil {
			app.SetStatus("audio disabled: " + err.Error())
		} else {
			defer sounds.Cleanup()
			state.Subscribe(sounds)
		}
	}

	app.Run()
}
