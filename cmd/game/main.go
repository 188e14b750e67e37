// cmd/game/main.go
package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"go-raycaster/internal/camera"
	"go-raycaster/internal/config"
	"go-raycaster/internal/debugfeed"
	"go-raycaster/internal/defs"
	"go-raycaster/internal/event"
	"go-raycaster/internal/input"
	"go-raycaster/internal/interfaces"
	"go-raycaster/internal/scene"
	"go-raycaster/internal/world"
	"go-raycaster/pkg/logger"
	"go-raycaster/pkg/render"
)

type AppGame struct {
	director       *scene.Director
	renderer       *render.RaycastRenderer
	bindings       input.Bindings
	feed           *debugfeed.Hub
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now

	a.director.Update(deltaTime, input.Poll(a.bindings))
	if a.feed != nil && a.feed.Due() {
		if w := a.director.World(); w != nil {
			a.feed.Publish(w.Snapshot())
		}
	}
	if a.director.Done() {
		return ebiten.Termination
	}
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.director.View())
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	levelPath := flag.String("level", "levels/e1m1.yaml", "level file (yaml or json)")
	enemiesPath := flag.String("enemies", "", "enemy definition file, empty for built-in defaults")
	debugAddr := flag.String("debug-addr", "", "address for pprof and the websocket debug feed, e.g. localhost:6060")
	seed := flag.Int64("seed", 0, "random seed, 0 for time based")
	showFPS := flag.Bool("fps", false, "show TPS/FPS counter")
	flag.Parse()

	logger.Init()
	log := logger.For("main")

	opts := world.Options{Seed: *seed}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if *enemiesPath != "" {
		lib, err := defs.LoadEnemyDefinitions(*enemiesPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load enemy definitions")
		}
		opts.Enemies = lib
	}

	dispatcher := event.NewDispatcher()
	dispatcher.SubscribeAll(event.ListenerFunc(func(e event.Event) {
		log.WithFields(logrus.Fields{
			"event":  e.Type,
			"source": e.Source,
		}).Debug("world event")
	}))

	cam := camera.New(config.ScreenWidth, config.ScreenHeight, config.FOV)
	director := scene.NewDirector(interfaces.WorldLoader(opts), *levelPath, cam, dispatcher)
	defer director.Close()

	renderer := render.NewRaycastRenderer(config.ScreenWidth, config.ScreenHeight, render.DefaultPalette())
	renderer.ShowFPS = *showFPS

	app := &AppGame{
		director:       director,
		renderer:       renderer,
		bindings:       input.DefaultBindings(),
		lastUpdateTime: time.Now(),
	}

	if *debugAddr != "" {
		app.feed = debugfeed.NewHub(0)
		defer app.feed.Close()
		app.feed.RegisterRoutes(http.DefaultServeMux)
		go func() {
			log.WithField("addr", *debugAddr).Info("debug server listening")
			if err := http.ListenAndServe(*debugAddr, nil); err != nil {
				log.WithError(err).Error("debug server stopped")
			}
		}()
	}

	ebiten.SetWindowSize(config.ScreenWidth*config.WindowScale, config.ScreenHeight*config.WindowScale)
	ebiten.SetWindowTitle("go-raycaster")
	if err := ebiten.RunGame(app); err != nil {
		log.WithError(err).Fatal("game stopped")
	}
}
