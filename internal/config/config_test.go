package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.APIBase)
	assert.EqualValues(t, 1, c.UserID)
	assert.Equal(t, 30, c.HTTPTimeoutSec)
	assert.Equal(t, filepath.Join(home, ".writeit"), c.StateDir)
	assert.Equal(t, "light", c.Theme)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfgPath := filepath.Join(home, "cfg.yaml")
	require.NoError(t, Save(&Global{APIBase: "http://file.test", UserID: 5, StateDir: "~/state"}, cfgPath))
	t.Setenv("WRITEIT_API_BASE", "http://env.test")

	c, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "http://env.test", c.APIBase)
	assert.EqualValues(t, 5, c.UserID)
	assert.Equal(t, filepath.Join(home, "state"), c.StateDir)
}

func TestLoadReadsDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd := t.TempDir()
	t.Chdir(wd)
	require.NoError(t, os.WriteFile(filepath.Join(wd, ".env"), []byte("WRITEIT_USER_ID=42\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("WRITEIT_USER_ID") })

	c, err := Load("")
	require.NoError(t, err)
	assert.EqualValues(t, 42, c.UserID)
}

func TestLoadFileIgnoresEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfgPath := filepath.Join(home, "cfg.yaml")
	require.NoError(t, Save(&Global{APIBase: "http://file.test", UserID: 5}, cfgPath))
	t.Setenv("WRITEIT_API_BASE", "http://env.test")
	t.Setenv("WRITEIT_USER_ID", "9")

	c, err := LoadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "http://file.test", c.APIBase)
	assert.EqualValues(t, 5, c.UserID)
	assert.Empty(t, c.StateDir)

	c.LogLevel = "debug"
	require.NoError(t, Save(c, cfgPath))
	again, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "http://env.test", again.APIBase)
	assert.Equal(t, "debug", again.LogLevel)
}
