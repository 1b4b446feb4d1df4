package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into a fresh directory so no stray ottodough.yaml or .env
// leaks into the test.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testChdir(t, dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "normal", cfg.Log.Level)
	assert.Equal(t, ".ottodough/ottodough.db", cfg.Database.Path)
	assert.Equal(t, "All-Purpose Flour", cfg.Calculator.FlourName)
	assert.Equal(t, 500.0, cfg.Calculator.FlourMass)
	assert.Equal(t, 70.0, cfg.Calculator.Hydration)
	assert.Equal(t, 20.0, cfg.Calculator.StarterRatio)
	assert.Equal(t, 2.0, cfg.Calculator.SaltRatio)

	want, err := Default()
	require.NoError(t, err)
	assert.Equal(t, *want, *cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := chdir(t)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: verbose
calculator:
  hydration: 78
  flour_name: Bread Flour
site:
  author: Test Baker
`), 0o644))

	t.Setenv("OTTODOUGH_CALCULATOR_SALT_RATIO", "2.5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "verbose", cfg.Log.Level)
	assert.Equal(t, 78.0, cfg.Calculator.Hydration)
	assert.Equal(t, "Bread Flour", cfg.Calculator.FlourName)
	assert.Equal(t, 2.5, cfg.Calculator.SaltRatio)
	assert.Equal(t, "Test Baker", cfg.Site.Author)
	// untouched keys keep their defaults
	assert.Equal(t, 20.0, cfg.Calculator.StarterRatio)
}

func TestLoadDiscoversFileInWorkingDir(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ottodough.yaml"),
		[]byte("database:\n  path: bakery.db\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "bakery.db", cfg.Database.Path)
}

func TestLoadRejectsInvalid(t *testing.T) {
	chdir(t)
	t.Setenv("OTTODOUGH_LOG_LEVEL", "loud")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Log.Level")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	chdir(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// testChdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains:
// it changes the working directory and restores it on cleanup.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if filepath.IsAbs(dir) {
		t.Setenv("PWD", dir)
	} else {
		t.Setenv("PWD", filepath.Join(oldwd, dir))
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testChdir: restoring working directory: " + err.Error())
		}
	})
}
