package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 100*time.Millisecond, cfg.Timer.TickInterval())
	assert.Equal(t, 10*time.Second, cfg.Timer.Cooldown())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  cooldownSeconds: 3\nui:\n  startView: task\n  accent: \"62\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Timer.CooldownSeconds)
	assert.Equal(t, 10, cfg.Timer.TicksPerSecond)
	assert.Equal(t, ViewTask, cfg.UI.StartView)
	assert.Equal(t, "62", cfg.UI.Accent)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown field": "timer:\n  speed: 2\n",
		"bad view":      "ui:\n  startView: kanban\n",
		"bad accent":    "ui:\n  accent: pink\n",
		"zero ticks":    "timer:\n  ticksPerSecond: 0\n",
		"neg cooldown":  "timer:\n  cooldownSeconds: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadEnv_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CUE_TEST_A=from-file\nCUE_TEST_B=from-file\n"), 0o644))
	t.Setenv("CUE_TEST_A", "from-env")

	require.NoError(t, LoadEnv(dir))
	assert.Equal(t, "from-env", os.Getenv("CUE_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("CUE_TEST_B"))
	t.Cleanup(func() { _ = os.Unsetenv("CUE_TEST_B") })
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  cooldownSeconds: 1\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zerolog.Nop(), func(c Config) {
			select {
			case got <- c:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  cooldownSeconds: 7\n"), 0o644))

	select {
	case c := <-got:
		assert.Equal(t, 7.0, c.Timer.CooldownSeconds)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
	cancel()
	require.NoError(t, <-done)
}
