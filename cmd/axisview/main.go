package main

import (
	"errors"
	"fmt"
	"os"

	"axis-viewer/internal/camera"
	"axis-viewer/internal/commands"
	"axis-viewer/internal/config"
	"axis-viewer/internal/debug"
	"axis-viewer/internal/env"
	"axis-viewer/internal/kv"
	"axis-viewer/internal/logger"
	"axis-viewer/internal/render"
	"axis-viewer/internal/scene"
	"axis-viewer/internal/terminal"
	"axis-viewer/internal/ui"
	"axis-viewer/internal/viewer"
)

func main() {
	log := logger.New()
	if err := env.Load(".env"); err != nil {
		log.Log("env: " + err.Error())
	}

	prefs, _ := config.LoadPrefs(config.PrefsPath)
	prefs.ApplyEnv(env.Lookup)

	backend, closeStore, err := kv.Open(prefs.Store, prefs.StorePath)
	if err != nil {
		log.Log(fmt.Sprintf("store %s: %v; camera state kept in memory only", prefs.Store, err))
		backend, closeStore, _ = kv.Open(kv.BackendMemory, "")
	}

	sc, err := config.LoadScene(prefs.ScenePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		sc = config.DefaultScene()
	case err != nil:
		log.Log("scene: " + err.Error() + "; using defaults")
		sc = config.DefaultScene()
	}

	surface := render.NewSurface()
	surface.GridVisible = prefs.GridVisible
	surface.AxesVisible = prefs.AxesVisible
	surface.OnError = func(err error) { log.Log("render: " + err.Error()) }

	asm := scene.New(surface, camera.NewStore(backend, prefs.CameraKey),
		scene.WithLogger(log),
		scene.WithAxis(sc.Axis),
		scene.WithOverlays(sc.Overlays),
		scene.WithDivisions(sc.Divisions),
		scene.WithGridSpacing(sc.GridSpacing),
	)

	dbg := debug.New()
	dbg.SetShowFPS(prefs.ShowFPS)
	dbg.SetShowStats(prefs.ShowStats)
	dbg.SetStatsSource(surface.Stats)

	uiEngine := ui.New()
	if prefs.StylePath != "" {
		if err := uiEngine.LoadCSS(prefs.StylePath); err != nil {
			log.Log("style: " + err.Error())
		}
	}
	drawer := ui.NewDrawer()
	drawerOpen := false
	var nodes []*ui.Node

	reg := commands.NewRegistry()
	v := viewer.New(asm, log, &prefs, config.PrefsPath, sc, viewer.Toggles{
		Grid:      surface.SetGridVisible,
		FPS:       dbg.SetShowFPS,
		Stats:     dbg.SetShowStats,
		Drawer:    func() bool { drawerOpen = !drawerOpen; return drawerOpen },
		ResetView: func() { surface.SetViewpoint(camera.Default()) },
	})
	v.Register(reg)
	term := terminal.New(log, reg)

	setup := func() {
		_, err := asm.Init()
		if errors.Is(err, scene.ErrInvalidAxis) {
			log.Log(err.Error() + "; using the default axis")
			if err := asm.SetAxis(scene.DefaultAxis()); err != nil {
				log.Log(err.Error())
			}
			_, err = asm.Init()
		}
		if err != nil && !errors.Is(err, camera.ErrMalformedState) {
			log.Log("scene: " + err.Error())
		}
	}
	update := func() {
		term.Update()
		surface.Update(!term.IsOpen())
	}
	draw := func() {
		surface.Draw()
		nodes = drawer.AppendNodes(nodes[:0], drawerOpen, ui.Settings{
			Axis:        asm.Axis(),
			Overlays:    asm.Overlays(),
			Failures:    failures(asm.Frame()),
			GridVisible: surface.GridVisible,
			Store:       prefs.Store,
		})
		uiEngine.SetNodes(nodes)
		uiEngine.Draw()
		term.Draw()
		dbg.Draw()
	}
	teardown := func() {
		surface.Close()
		if err := closeStore(); err != nil {
			log.Log("store: " + err.Error())
		}
	}

	win := render.DefaultWindow()
	win.Fullscreen = prefs.Fullscreen
	render.Run(win, render.Loop{Setup: setup, Update: update, Draw: draw, Teardown: teardown})
}

func failures(f *scene.Frame) []scene.OverlayFailure {
	if f == nil {
		return nil
	}
	return f.Failures
}
