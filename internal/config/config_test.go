package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stadium/internal/controls"
	"stadium/internal/layout"
	"stadium/internal/scene"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 38, cfg.SectionCounts().Total())
	assert.Equal(t, layout.FieldSpec{Width: 200, Height: 150, Stripes: 12}, cfg.FieldSpec())
	assert.Equal(t, 35*time.Millisecond, cfg.WaveOptions().Tick)
	assert.Equal(t, controls.DefaultCamera(), cfg.CameraStart())

	pal, err := cfg.Palette()
	require.NoError(t, err)
	assert.Equal(t, scene.DefaultPalette(), pal)

	bg, err := cfg.ClearColor()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x191970), bg)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stadium.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
field:
  width: 300
  stripes: 10
wave:
  tick: 50ms
camera:
  position: [10, 80, 150]
bindings:
  KeyG: wave
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(300), cfg.Field.Width)
	assert.Equal(t, float32(150), cfg.Field.Height, "unset keys keep defaults")
	assert.Equal(t, 10, cfg.Field.Stripes)
	assert.Equal(t, 50*time.Millisecond, cfg.Wave.Tick)
	assert.Equal(t, [3]float32{10, 80, 150}, cfg.Camera.Position)

	b, err := cfg.KeyBindings()
	require.NoError(t, err)
	assert.Equal(t, controls.ActionWave, b.Lookup("KeyG"))
	assert.Equal(t, controls.ActionWave, b.Lookup("KeyF"))
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stadium.yaml")
	require.NoError(t, os.WriteFile(path, []byte("field: [unclosed"), 0o644))
	_, err := Load(path)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, path, ce.Key)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stadium.yaml")
	cfg := Default()
	cfg.Wave.Tick = 20 * time.Millisecond
	cfg.Bindings = map[string]string{"KeyF": "none", "KeyG": "wave"}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidateReportsKey(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		key    string
	}{
		{"zero field width", func(c *Config) { c.Field.Width = 0 }, "field"},
		{"no stripes", func(c *Config) { c.Field.Stripes = 0 }, "field"},
		{"marking below surface", func(c *Config) { c.Field.Marking = 0.1 }, "field"},
		{"ground", func(c *Config) { c.Ground.Height = -1 }, "ground.height"},
		{"seats", func(c *Config) { c.Seats.Depth = 0 }, "seats"},
		{"people", func(c *Config) { c.People.Spacing = 0 }, "people"},
		{"negative count", func(c *Config) { c.People.Counts.Left = -1 }, "people.counts.left"},
		{"two head colours", func(c *Config) { c.People.HeadColors = c.People.HeadColors[:2] }, "people.head_colors"},
		{"bad head colour", func(c *Config) { c.People.HeadColors = []string{"#fff", "pink", "#000"} }, "people.head_colors[1]"},
		{"tick", func(c *Config) { c.Wave.Tick = 0 }, "wave.tick"},
		{"fps", func(c *Config) { c.Window.FPS = 0 }, "window.fps"},
		{"fovy", func(c *Config) { c.Camera.Fovy = 180 }, "camera.fovy"},
		{"step", func(c *Config) { c.Camera.Step = 0 }, "camera.step"},
		{"ambient", func(c *Config) { c.Lighting.Ambient = 2 }, "lighting.ambient"},
		{"clear", func(c *Config) { c.Window.Clear = "midnight" }, "window.clear"},
		{"palette", func(c *Config) { c.Colors.Net = "" }, "colors.net"},
		{"binding", func(c *Config) { c.Bindings = map[string]string{"KeyF": "dance"} }, "bindings"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tc.key, ce.Key)
		})
	}
}

func TestInvalidFieldUnwraps(t *testing.T) {
	cfg := Default()
	cfg.Field.Height = 0
	err := cfg.Validate()
	assert.True(t, errors.Is(err, layout.ErrInvalidField))
}

func TestParseColor(t *testing.T) {
	cases := map[string]uint32{
		"#191970":  0x191970,
		"#FFF":     0xffffff,
		"0x202030": 0x202030,
		" #e2c597": 0xe2c597,
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "blue", "#12", "0x"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestSampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
