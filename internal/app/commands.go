package app

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"stadium/internal/commands"
	"stadium/internal/config"
)

func (a *App) registerCommands() *commands.Registry {
	reg := commands.NewRegistry()
	reg.Print = a.log.Log

	reg.Register("wave", "start a stadium wave", flag.NewFlagSet("wave", flag.ContinueOnError), func() error {
		if !a.TriggerWave() {
			return errors.New("wave: already running")
		}
		return nil
	})

	camFS := flag.NewFlagSet("camera", flag.ContinueOnError)
	reset := camFS.Bool("reset", false, "move the camera back to its start position")
	reg.Register("camera", "print the camera, --reset to restore it", camFS, func() error {
		if *reset {
			a.Camera = a.cfg.CameraStart()
		}
		c := a.Camera
		reg.Println(fmt.Sprintf("camera at (%.1f, %.1f, %.1f) looking at (%.1f, %.1f, %.1f)",
			c.Position[0], c.Position[1], c.Position[2], c.Target[0], c.Target[1], c.Target[2]))
		return nil
	})

	hudFS := flag.NewFlagSet("hud", flag.ContinueOnError)
	show := hudFS.Bool("show", false, "show the overlay")
	hide := hudFS.Bool("hide", false, "hide the overlay")
	axes := hudFS.Bool("axes", false, "toggle the world axes")
	reg.Register("hud", "--show | --hide the overlay, --axes toggles world axes", hudFS, func() error {
		if *show && *hide {
			return errors.New("hud: --show and --hide together")
		}
		if !*show && !*hide && !*axes {
			return errors.New("hud: need --show, --hide or --axes")
		}
		if *show {
			a.HUD.Show = true
		}
		if *hide {
			a.HUD.Show = false
		}
		if *axes {
			a.HUD.Axes = !a.HUD.Axes
		}
		return nil
	})

	saveFS := flag.NewFlagSet("save", flag.ContinueOnError)
	path := saveFS.String("path", "", "file to write (default: the loaded config)")
	reg.Register("save", "write the config with the current camera and HUD [--path p]", saveFS, func() error {
		p := *path
		if p == "" {
			p = a.opts.ConfigPath
		}
		if err := config.Save(p, a.Snapshot()); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		reg.Println("saved " + p)
		return nil
	})

	reg.Register("stats", "print scene, wave and texture counters", flag.NewFlagSet("stats", flag.ContinueOnError), func() error {
		s := a.Stats()
		reg.Println(fmt.Sprintf("frames %d, uptime %s, nodes %d", s.Frames, s.Uptime.Round(time.Millisecond), s.Nodes))
		reg.Println(fmt.Sprintf("spectators %d in %d columns, waves %d, wave active %t at column %d",
			s.Spectators, s.Columns, s.Waves, s.Wave.Active, s.Wave.Column))
		reg.Println(fmt.Sprintf("textures ready %d, pending %d, failed %d", s.TexReady, s.TexPending, s.TexFailed))
		return nil
	})
	return reg
}

// Snapshot is the loaded config with the live camera position and HUD toggles.
func (a *App) Snapshot() config.Config {
	cfg := a.Config()
	cfg.Camera.Position = a.Camera.Position
	cfg.HUD = config.HUD{Show: a.HUD.Show, Axes: a.HUD.Axes}
	return cfg
}

// RunLine executes a console line. Non-command lines are only logged.
func (a *App) RunLine(line string) {
	a.log.Log("> " + line)
	isCmd, err := a.Commands.ExecuteLine(line)
	if !isCmd {
		return
	}
	if err != nil {
		a.log.Log(err.Error())
	}
}
