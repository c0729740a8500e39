// Package app owns the stadium's runtime state: the scene, the crowd and its wave, the camera,
// the background texture loads and the console commands. It does not draw.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jinzhu/copier"

	"stadium/internal/commands"
	"stadium/internal/config"
	"stadium/internal/controls"
	"stadium/internal/download"
	"stadium/internal/layout"
	"stadium/internal/logger"
	"stadium/internal/roster"
	"stadium/internal/scene"
	"stadium/internal/textures"
	"stadium/internal/wave"
)

// Options are the pieces of App that come from outside the config file.
type Options struct {
	// ConfigPath is where "cmd save" writes by default.
	ConfigPath string
	// Rand picks shirt colours. Nil seeds from the config (or the clock when the seed is 0).
	Rand *rand.Rand
}

// HUD toggles the overlays.
type HUD struct {
	Show bool
	Axes bool
}

// App is the application context passed to the render loop.
type App struct {
	cfg  config.Config
	log  *logger.Logger
	opts Options

	Ground   *scene.Node
	Crowd    *roster.Grid
	Wave     *wave.Sequencer
	Camera   controls.Camera
	Palette  scene.Palette
	Textures *textures.Set
	Commands *commands.Registry
	HUD      HUD

	bindings    controls.Bindings
	step        float32
	consoleOpen bool

	results <-chan textures.Result
	cancel  context.CancelFunc
	frames  uint64
	uptime  time.Duration
	waves   int
}

// New validates cfg and builds the stadium. Errors are *config.ConfigError or come from
// building the scene; either way the program cannot start.
func New(cfg config.Config, log *logger.Logger, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pal, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	heads, err := cfg.HeadColors()
	if err != nil {
		return nil, err
	}
	bindings, err := cfg.KeyBindings()
	if err != nil {
		return nil, err
	}

	ground, err := scene.Assemble(scene.Params{
		Field:        cfg.FieldSpec(),
		Elevations:   cfg.Elevations(),
		GroundWidth:  cfg.Ground.Width,
		GroundHeight: cfg.Ground.Height,
		Seats:        cfg.SeatParams(),
		Palette:      pal,
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	sections, err := layout.CrowdSections(cfg.FieldSpec(), cfg.SeatParams(), cfg.PeopleParams(), cfg.SectionCounts())
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	rng := opts.Rand
	if rng == nil {
		seed := cfg.People.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	crowd, err := roster.Populate(ground, sections, roster.Options{
		People:     cfg.PeopleParams(),
		HeadColors: heads,
		Rand:       rng,
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if err := scene.Validate(ground); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath
	}
	a := &App{
		cfg:      cfg,
		log:      log,
		opts:     opts,
		Ground:   ground,
		Crowd:    crowd,
		Camera:   cfg.CameraStart(),
		Palette:  pal,
		Textures: textures.NewSet(),
		HUD:      HUD{Show: cfg.HUD.Show, Axes: cfg.HUD.Axes},
		bindings: bindings,
		step:     cfg.Camera.Step,
	}
	a.Wave = wave.New(crowd, cfg.WaveOptions())
	a.Wave.OnStart = func() {
		a.waves++
		a.log.Logf("wave %d started across %d columns", a.waves, crowd.Columns())
	}
	a.Wave.OnFinish = func() { a.log.Logf("wave %d finished", a.waves) }
	a.Commands = a.registerCommands()

	log.Logf("stadium built: %d nodes, %d spectators in %d columns", ground.Count(), crowd.Len(), crowd.Columns())
	return a, nil
}

// Config returns a deep copy of the configuration the app was built from.
func (a *App) Config() config.Config {
	var out config.Config
	if err := copier.CopyWithOption(&out, &a.cfg, copier.Option{DeepCopy: true}); err != nil {
		return a.cfg
	}
	return out
}

// Log returns the app's logger.
func (a *App) Log() *logger.Logger { return a.log }

// TextureRequests lists the textures named in the config, with empty refs left out.
func (a *App) TextureRequests() []textures.Request {
	t := a.cfg.Textures
	all := []textures.Request{
		{Name: scene.TextureGrassLight, Ref: t.GrassLight},
		{Name: scene.TextureGrassDark, Ref: t.GrassDark},
		{Name: scene.TextureNet, Ref: t.NetMap, AlphaRef: t.NetAlpha},
		{Name: scene.TextureSky, Ref: t.Sky},
	}
	out := all[:0]
	for _, r := range all {
		if r.Ref != "" {
			out = append(out, r)
		}
	}
	return out
}

// StartTextures begins loading every configured texture in the background. Materials use
// their flat colour until the image arrives. Calling it again restarts the loads.
func (a *App) StartTextures(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
	ctx, a.cancel = context.WithCancel(ctx)
	reqs := a.TextureRequests()
	names := make([]string, 0, len(reqs))
	for _, r := range reqs {
		names = append(names, r.Name)
	}
	a.Textures = textures.NewSet(names...)

	var fetcher *download.Fetcher
	if a.cfg.Textures.CacheDir != "" {
		fetcher = download.New(a.cfg.Textures.CacheDir)
	}
	loader := &textures.Loader{Fetcher: fetcher, MaxSize: a.cfg.Textures.MaxSize, Workers: a.cfg.Textures.Workers}
	a.results = loader.Start(ctx, reqs)
	a.log.Logf("loading %d textures", len(reqs))
}

// Update advances the app by one frame of dt: texture results are collected and the wave ticks.
func (a *App) Update(dt time.Duration) {
	a.frames++
	a.uptime += dt
	a.pollTextures()
	a.Wave.Advance(dt)
}

func (a *App) pollTextures() {
	if a.results == nil {
		return
	}
	got, open := a.Textures.Drain(a.results)
	for _, r := range got {
		if r.Err != nil {
			a.log.Logf("texture fallback to colour: %v", r.Err)
			continue
		}
		b := r.Image.Bounds()
		a.log.Logf("texture %s ready (%dx%d)", r.Name, b.Dx(), b.Dy())
	}
	if !open {
		a.results = nil
	}
}

// SetConsoleOpen suspends key bindings while the console has the keyboard.
func (a *App) SetConsoleOpen(open bool) { a.consoleOpen = open }

// HandleKey runs the action bound to key (e.g. "KeyF", "ArrowLeft"). It reports whether the key
// did anything.
func (a *App) HandleKey(key string) bool {
	if a.consoleOpen {
		return false
	}
	action := a.bindings.Lookup(key)
	switch action {
	case controls.ActionNone:
		return false
	case controls.ActionWave:
		return a.TriggerWave()
	}
	return a.Camera.Move(action, a.step)
}

// TriggerWave starts a wave unless one is running.
func (a *App) TriggerWave() bool {
	return a.Wave.Trigger()
}

// Stats is a summary for the console and the HUD.
type Stats struct {
	Frames     uint64
	Uptime     time.Duration
	Nodes      int
	Spectators int
	Columns    int
	Waves      int
	Wave       wave.State
	TexPending int
	TexReady   int
	TexFailed  int
	Camera     controls.Camera
}

func (a *App) Stats() Stats {
	p, r, f := a.Textures.Counts()
	return Stats{
		Frames:     a.frames,
		Uptime:     a.uptime,
		Nodes:      a.Ground.Count(),
		Spectators: a.Crowd.Len(),
		Columns:    a.Crowd.Columns(),
		Waves:      a.waves,
		Wave:       a.Wave.State(),
		TexPending: p,
		TexReady:   r,
		TexFailed:  f,
		Camera:     a.Camera,
	}
}

// Close stops background texture loads.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
