package app

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stadium/internal/config"
	"stadium/internal/controls"
	"stadium/internal/logger"
	"stadium/internal/roster"
	"stadium/internal/scene"
	"stadium/internal/textures"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Textures = config.Textures{}
	cfg.LogPath = ""
	return cfg
}

func newApp(t *testing.T, cfg config.Config) (*App, *logger.Logger) {
	t.Helper()
	log := logger.New("")
	a, err := New(cfg, log, Options{
		ConfigPath: filepath.Join(t.TempDir(), "stadium.yaml"),
		Rand:       rand.New(rand.NewSource(3)),
	})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, log
}

func logged(log *logger.Logger, substr string) bool {
	for _, l := range log.Lines() {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestNewBuildsStadium(t *testing.T) {
	a, log := newApp(t, testConfig())
	require.NoError(t, scene.Validate(a.Ground))
	assert.NotNil(t, a.Ground.Find(roster.CrowdName))
	assert.Equal(t, 38, a.Crowd.Columns())
	assert.Equal(t, controls.DefaultCamera(), a.Camera)
	assert.True(t, logged(log, "stadium built"))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Field.Stripes = 0
	_, err := New(cfg, logger.New(""), Options{})
	var ce *config.ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestKeysMoveCameraAndStartWave(t *testing.T) {
	a, _ := newApp(t, testConfig())

	assert.True(t, a.HandleKey("ArrowLeft"))
	assert.True(t, a.HandleKey("KeyQ"))
	assert.Equal(t, [3]float32{-3, 100, 197}, a.Camera.Position)
	assert.Equal(t, [3]float32{}, a.Camera.Target)

	assert.False(t, a.HandleKey("KeyZ"))
	assert.True(t, a.HandleKey("KeyF"))
	assert.True(t, a.Wave.Active())
	assert.False(t, a.HandleKey("KeyF"), "second F while running is ignored")
}

func TestConsoleSuspendsBindings(t *testing.T) {
	a, _ := newApp(t, testConfig())
	a.SetConsoleOpen(true)
	assert.False(t, a.HandleKey("KeyF"))
	assert.False(t, a.HandleKey("KeyW"))
	assert.False(t, a.Wave.Active())
	assert.Equal(t, controls.DefaultCamera(), a.Camera)

	a.SetConsoleOpen(false)
	assert.True(t, a.HandleKey("KeyW"))
}

func TestUpdateRunsWaveToCompletion(t *testing.T) {
	a, log := newApp(t, testConfig())
	require.True(t, a.TriggerWave())
	// At 30 FPS a frame is shorter than a tick, so the crest moves every second frame.
	frame := time.Second / 30
	for i := 0; i < 2*a.Crowd.Columns(); i++ {
		if i < 2*a.Crowd.Columns()-1 {
			require.True(t, a.Wave.Active(), "frame %d", i)
		}
		a.Update(frame)
	}
	assert.False(t, a.Wave.Active())
	a.Crowd.Each(func(s *roster.Spectator) {
		assert.False(t, s.Displaced())
	})
	assert.True(t, logged(log, "wave 1 started"))
	assert.True(t, logged(log, "wave 1 finished"))
	assert.Equal(t, uint64(76), a.Stats().Frames)
}

func TestCustomBindings(t *testing.T) {
	cfg := testConfig()
	cfg.Bindings = map[string]string{"KeyF": "none", "Space": "wave"}
	a, _ := newApp(t, cfg)
	assert.False(t, a.HandleKey("KeyF"))
	assert.True(t, a.HandleKey("Space"))
}

func TestConsoleCommands(t *testing.T) {
	a, log := newApp(t, testConfig())

	a.RunLine("cmd hud --hide")
	assert.False(t, a.HUD.Show)
	a.RunLine("cmd hud --show --axes")
	assert.True(t, a.HUD.Show)
	assert.True(t, a.HUD.Axes)
	a.RunLine("cmd hud")
	assert.True(t, logged(log, "hud: need"))

	a.HandleKey("KeyD")
	a.RunLine("cmd camera --reset")
	assert.Equal(t, controls.DefaultCamera(), a.Camera)

	a.RunLine("cmd wave")
	assert.True(t, a.Wave.Active())
	a.RunLine("cmd wave")
	assert.True(t, logged(log, "wave: already running"))

	a.RunLine("cmd stats")
	assert.True(t, logged(log, "spectators 114 in 38 columns"))

	a.RunLine("cmd bogus")
	assert.True(t, logged(log, "unknown command: bogus"))

	a.RunLine("just chatting")
	assert.True(t, logged(log, "> just chatting"))
}

func TestSaveCommand(t *testing.T) {
	a, _ := newApp(t, testConfig())
	a.HandleKey("KeyW")
	a.RunLine("cmd hud --axes")

	a.RunLine("cmd save")
	saved, err := config.Load(a.opts.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{0, 103, 200}, saved.Camera.Position)
	assert.True(t, saved.HUD.Axes)

	other := filepath.Join(t.TempDir(), "other.yaml")
	a.RunLine("cmd save --path " + other)
	_, err = os.Stat(other)
	assert.NoError(t, err)
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.Set(0, 0, color.NRGBA{G: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestTexturesLoadInBackground(t *testing.T) {
	dir := t.TempDir()
	grass := filepath.Join(dir, "grass.png")
	writePNG(t, grass)

	cfg := testConfig()
	cfg.Textures.GrassLight = grass
	cfg.Textures.GrassDark = filepath.Join(dir, "missing.png")
	a, log := newApp(t, cfg)

	reqs := a.TextureRequests()
	require.Len(t, reqs, 2)

	a.StartTextures(context.Background())
	assert.Equal(t, textures.StatusPending, a.Textures.Status(scene.TextureGrassLight))

	deadline := time.Now().Add(5 * time.Second)
	for a.results != nil && time.Now().Before(deadline) {
		a.Update(time.Millisecond)
		time.Sleep(time.Millisecond)
	}
	require.Nil(t, a.results, "loads finished")
	assert.Equal(t, textures.StatusReady, a.Textures.Status(scene.TextureGrassLight))
	assert.Equal(t, textures.StatusFailed, a.Textures.Status(scene.TextureGrassDark))
	assert.True(t, logged(log, "texture fallback to colour"))

	ready := a.Textures.TakeReady()
	require.Contains(t, ready, scene.TextureGrassLight)
	assert.Equal(t, 4, ready[scene.TextureGrassLight].Bounds().Dx())
}

func TestConfigIsACopy(t *testing.T) {
	cfg := testConfig()
	cfg.Bindings = map[string]string{"Space": "wave"}
	a, _ := newApp(t, cfg)

	got := a.Config()
	assert.Equal(t, cfg.Camera, got.Camera)
	assert.Equal(t, cfg.Wave, got.Wave)
	got.Bindings["Space"] = "zoom-in"
	got.People.HeadColors[0] = "#000000"

	again := a.Config()
	assert.Equal(t, "wave", again.Bindings["Space"])
	assert.Equal(t, "#e2c597", again.People.HeadColors[0])
}
