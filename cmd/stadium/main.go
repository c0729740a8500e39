package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"stadium/internal/app"
	"stadium/internal/config"
	"stadium/internal/debug"
	"stadium/internal/env"
	"stadium/internal/graphics"
	"stadium/internal/logger"
	"stadium/internal/terminal"
)

func main() {
	configPath := flag.String("config", "", "config file (default $"+env.ConfigVar+" or "+config.DefaultPath+")")
	flag.Parse()

	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
	}
	over := env.Read()
	path := *configPath
	if path == "" {
		path = over.Config
	}
	if path == "" {
		path = config.DefaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		fail(err)
	}
	if over.Log != "" {
		cfg.LogPath = over.Log
	}
	if over.TextureDir != "" {
		cfg.Textures.CacheDir = over.TextureDir
	}
	bg, err := cfg.ClearColor()
	if err != nil {
		fail(err)
	}

	log := logger.New(cfg.LogPath)
	log.Logf("config %s", path)
	a, err := app.New(cfg, log, app.Options{ConfigPath: path})
	if err != nil {
		log.Log(err.Error())
		fail(err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	a.StartTextures(ctx)

	rend, err := graphics.NewRenderer(a)
	if err != nil {
		fail(err)
	}
	term := terminal.New(log, a.RunLine)
	term.OnToggle = a.SetConsoleOpen
	hud := debug.New(a)

	update := func(dt time.Duration) {
		term.Update()
		graphics.PollKeys(a.HandleKey)
		a.Update(dt)
	}
	draw := func() {
		rend.Draw()
		term.Draw()
		hud.Draw()
	}
	graphics.Run(cfg.Window, bg, update, draw, rend.Unload)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
