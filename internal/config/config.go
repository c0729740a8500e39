// Package config loads the stadium settings from YAML. Missing keys keep their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"stadium/internal/controls"
	"stadium/internal/layout"
	"stadium/internal/logger"
	"stadium/internal/scene"
	"stadium/internal/wave"
)

// DefaultPath is the config file location, relative to the process working directory.
const DefaultPath = "config/stadium.yaml"

// ConfigError reports an invalid or unreadable setting. Key is the dotted YAML path, or the
// file path when the file itself could not be parsed.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string { return "config: " + e.Key + ": " + e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

type Window struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	FPS        int    `yaml:"fps"`
	Clear      string `yaml:"clear"`
	Fullscreen bool   `yaml:"fullscreen"`
}

type Size struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type Field struct {
	Width   float32 `yaml:"width"`
	Height  float32 `yaml:"height"`
	Stripes int     `yaml:"stripes"`
	Surface float32 `yaml:"surface"`
	Marking float32 `yaml:"marking"`
}

type Seats struct {
	Height float32 `yaml:"height"`
	Depth  float32 `yaml:"depth"`
}

type Counts struct {
	Top    int `yaml:"top"`
	Left   int `yaml:"left"`
	Bottom int `yaml:"bottom"`
	Right  int `yaml:"right"`
}

type People struct {
	Width   float32 `yaml:"width"`
	Height  float32 `yaml:"height"`
	Spacing float32 `yaml:"spacing"`
	Counts  Counts  `yaml:"counts"`
	// Seed for shirt colours; 0 picks one from the clock.
	Seed       int64    `yaml:"seed"`
	HeadColors []string `yaml:"head_colors"`
}

type Wave struct {
	Tick  time.Duration `yaml:"tick"`
	Raise float32       `yaml:"raise"`
	Lower float32       `yaml:"lower"`
}

type Camera struct {
	Position [3]float32 `yaml:"position,flow"`
	Fovy     float32    `yaml:"fovy"`
	Step     float32    `yaml:"step"`
}

type Lighting struct {
	Ambient float32 `yaml:"ambient"`
	Color   string  `yaml:"color"`
}

type Colors struct {
	Ground     string `yaml:"ground"`
	Grass      string `yaml:"grass"`
	Marking    string `yaml:"marking"`
	GoalPost   string `yaml:"goal_post"`
	Net        string `yaml:"net"`
	SeatsLong  string `yaml:"seats_long"`
	SeatsShort string `yaml:"seats_short"`
	Post       string `yaml:"post"`
	Lamp       string `yaml:"lamp"`
	Light      string `yaml:"light"`
}

// Textures are file paths or http(s) URLs. Empty entries fall back to flat colours.
type Textures struct {
	GrassLight string `yaml:"grass_light"`
	GrassDark  string `yaml:"grass_dark"`
	NetMap     string `yaml:"net_map"`
	NetAlpha   string `yaml:"net_alpha"`
	Sky        string `yaml:"sky"`
	CacheDir   string `yaml:"cache_dir"`
	MaxSize    int    `yaml:"max_size"`
	Workers    int    `yaml:"workers"`
}

type HUD struct {
	Show bool `yaml:"show"`
	Axes bool `yaml:"axes"`
}

// Config is the whole settings file.
type Config struct {
	Window   Window            `yaml:"window"`
	Ground   Size              `yaml:"ground"`
	Field    Field             `yaml:"field"`
	Seats    Seats             `yaml:"seats"`
	People   People            `yaml:"people"`
	Wave     Wave              `yaml:"wave"`
	Camera   Camera            `yaml:"camera"`
	Lighting Lighting          `yaml:"lighting"`
	Colors   Colors            `yaml:"colors"`
	Textures Textures          `yaml:"textures"`
	HUD      HUD               `yaml:"hud"`
	LogPath  string            `yaml:"log_path"`
	Bindings map[string]string `yaml:"bindings,omitempty"`
}

// Default returns the standard stadium at night.
func Default() Config {
	cam := controls.DefaultCamera()
	w := wave.DefaultOptions()
	elev := layout.DefaultElevations()
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "Stadium", FPS: 30, Clear: "#191970"},
		Ground: Size{Width: 3000, Height: 2000},
		Field: Field{
			Width: 200, Height: 150, Stripes: 12,
			Surface: elev.Surface, Marking: elev.Marking,
		},
		Seats: Seats{Height: 6, Depth: 4},
		People: People{
			Width: 3, Height: 8, Spacing: 7,
			Counts:     Counts{Top: 10, Left: 9, Bottom: 10, Right: 9},
			HeadColors: []string{"#e2c597", "#f7e9a7", "#cc9933"},
		},
		Wave:     Wave{Tick: w.Tick, Raise: w.Raise, Lower: w.Lower},
		Camera:   Camera{Position: cam.Position, Fovy: cam.Fovy, Step: 3},
		Lighting: Lighting{Ambient: 0.24, Color: "#ffffff"},
		Colors: Colors{
			Ground:     "#202020",
			Grass:      "#2e7d32",
			Marking:    "#ffffff",
			GoalPost:   "#ffffff",
			Net:        "#dddddd",
			SeatsLong:  "#202030",
			SeatsShort: "#102010",
			Post:       "#303030",
			Lamp:       "#202020",
			Light:      "#ffffff",
		},
		Textures: Textures{
			GrassLight: "assets/textures/grass-light.png",
			GrassDark:  "assets/textures/grass-dark.png",
			NetMap:     "assets/textures/net.png",
			NetAlpha:   "assets/textures/net-alpha.png",
			CacheDir:   "assets/textures/downloaded",
			MaxSize:    1024,
			Workers:    4,
		},
		HUD:     HUD{Show: true},
		LogPath: logger.DefaultPath,
	}
}

// Load reads the YAML file at path on top of Default(). A missing file is not an error. The
// result is not validated; call Validate.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &ConfigError{Key: path, Err: err}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ConfigError{Key: path, Err: err}
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every setting and returns the first problem as a *ConfigError.
func (c Config) Validate() error {
	positive := func(key string, v float32) error {
		if !(v > 0) {
			return &ConfigError{Key: key, Err: fmt.Errorf("must be > 0, got %g", v)}
		}
		return nil
	}
	checks := []func() error{
		func() error {
			if c.Window.Width <= 0 || c.Window.Height <= 0 {
				return &ConfigError{Key: "window", Err: fmt.Errorf("size must be > 0, got %dx%d", c.Window.Width, c.Window.Height)}
			}
			if c.Window.FPS <= 0 {
				return &ConfigError{Key: "window.fps", Err: fmt.Errorf("must be > 0, got %d", c.Window.FPS)}
			}
			return nil
		},
		func() error { return positive("ground.width", c.Ground.Width) },
		func() error { return positive("ground.height", c.Ground.Height) },
		func() error { return wrap("field", c.FieldSpec().Validate()) },
		func() error { return wrap("field", c.Elevations().Validate()) },
		func() error { return wrap("seats", c.SeatParams().Validate()) },
		func() error { return wrap("people", c.PeopleParams().Validate()) },
		func() error {
			for _, s := range layout.Sides {
				if n := c.SectionCounts().Of(s); n < 0 {
					return &ConfigError{Key: "people.counts." + s.String(), Err: fmt.Errorf("must be >= 0, got %d", n)}
				}
			}
			return nil
		},
		func() error {
			_, err := c.HeadColors()
			return err
		},
		func() error {
			if c.Wave.Tick <= 0 {
				return &ConfigError{Key: "wave.tick", Err: fmt.Errorf("must be > 0, got %s", c.Wave.Tick)}
			}
			return nil
		},
		func() error { return positive("camera.step", c.Camera.Step) },
		func() error {
			if !(c.Camera.Fovy > 0 && c.Camera.Fovy < 180) {
				return &ConfigError{Key: "camera.fovy", Err: fmt.Errorf("must be in (0, 180), got %g", c.Camera.Fovy)}
			}
			return nil
		},
		func() error {
			if c.Lighting.Ambient < 0 || c.Lighting.Ambient > 1 {
				return &ConfigError{Key: "lighting.ambient", Err: fmt.Errorf("must be in [0, 1], got %g", c.Lighting.Ambient)}
			}
			return nil
		},
		func() error { _, err := c.ClearColor(); return err },
		func() error { _, err := c.AmbientColor(); return err },
		func() error { _, err := c.Palette(); return err },
		func() error {
			if c.Textures.MaxSize < 0 || c.Textures.Workers < 0 {
				return &ConfigError{Key: "textures", Err: errors.New("max_size and workers must be >= 0")}
			}
			return nil
		},
		func() error { _, err := c.KeyBindings(); return err },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func wrap(key string, err error) error {
	if err == nil {
		return nil
	}
	return &ConfigError{Key: key, Err: err}
}

func (c Config) FieldSpec() layout.FieldSpec {
	return layout.FieldSpec{Width: c.Field.Width, Height: c.Field.Height, Stripes: c.Field.Stripes}
}

func (c Config) Elevations() layout.Elevations {
	return layout.Elevations{Surface: c.Field.Surface, Marking: c.Field.Marking}
}

func (c Config) SeatParams() layout.SeatParams {
	return layout.SeatParams{Height: c.Seats.Height, Depth: c.Seats.Depth}
}

func (c Config) PeopleParams() layout.PeopleParams {
	return layout.PeopleParams{Width: c.People.Width, Height: c.People.Height, Spacing: c.People.Spacing}
}

func (c Config) SectionCounts() layout.SectionCounts {
	n := c.People.Counts
	return layout.SectionCounts{Top: n.Top, Left: n.Left, Bottom: n.Bottom, Right: n.Right}
}

func (c Config) WaveOptions() wave.Options {
	return wave.Options{Tick: c.Wave.Tick, Raise: c.Wave.Raise, Lower: c.Wave.Lower}
}

// CameraStart is the camera the scene opens with, looking at the origin.
func (c Config) CameraStart() controls.Camera {
	return controls.Camera{Position: c.Camera.Position, Fovy: c.Camera.Fovy}
}

// KeyBindings returns the default bindings with the configured overrides applied.
func (c Config) KeyBindings() (controls.Bindings, error) {
	b := controls.DefaultBindings()
	if err := b.Override(c.Bindings); err != nil {
		return nil, &ConfigError{Key: "bindings", Err: err}
	}
	return b, nil
}

// HeadColors returns one head colour per tier.
func (c Config) HeadColors() ([layout.Tiers]uint32, error) {
	var out [layout.Tiers]uint32
	if len(c.People.HeadColors) != layout.Tiers {
		return out, &ConfigError{Key: "people.head_colors", Err: fmt.Errorf("need %d colours, got %d", layout.Tiers, len(c.People.HeadColors))}
	}
	for i, s := range c.People.HeadColors {
		v, err := ParseColor(s)
		if err != nil {
			return out, &ConfigError{Key: fmt.Sprintf("people.head_colors[%d]", i), Err: err}
		}
		out[i] = v
	}
	return out, nil
}

func (c Config) ClearColor() (uint32, error) {
	return color("window.clear", c.Window.Clear)
}

func (c Config) AmbientColor() (uint32, error) {
	return color("lighting.color", c.Lighting.Color)
}

// Palette parses the stadium colours.
func (c Config) Palette() (scene.Palette, error) {
	var p scene.Palette
	fields := []struct {
		key string
		src string
		dst *uint32
	}{
		{"colors.ground", c.Colors.Ground, &p.Ground},
		{"colors.grass", c.Colors.Grass, &p.Grass},
		{"colors.marking", c.Colors.Marking, &p.Marking},
		{"colors.goal_post", c.Colors.GoalPost, &p.GoalPost},
		{"colors.net", c.Colors.Net, &p.Net},
		{"colors.seats_long", c.Colors.SeatsLong, &p.SeatsLong},
		{"colors.seats_short", c.Colors.SeatsShort, &p.SeatsShort},
		{"colors.post", c.Colors.Post, &p.Post},
		{"colors.lamp", c.Colors.Lamp, &p.Lamp},
		{"colors.light", c.Colors.Light, &p.Light},
	}
	for _, f := range fields {
		v, err := color(f.key, f.src)
		if err != nil {
			return scene.Palette{}, err
		}
		*f.dst = v
	}
	return p, nil
}

func color(key, s string) (uint32, error) {
	v, err := ParseColor(s)
	if err != nil {
		return 0, &ConfigError{Key: key, Err: err}
	}
	return v, nil
}

// ParseColor accepts "#rrggbb", "#rgb" or "0xrrggbb" and returns 0xRRGGBB.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		s = "#" + rest
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("bad colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b), nil
}
