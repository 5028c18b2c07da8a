package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/litgen/internal/config"
	"github.com/vk/litgen/internal/hcl"
)

// stubLoader records the path it was asked to load.
type stubLoader struct {
	path     string
	settings *config.Settings
	err      error
}

func (l *stubLoader) Load(_ context.Context, path string, base config.Settings) (*config.Settings, error) {
	l.path = path
	if l.err != nil {
		return nil, l.err
	}
	if l.settings != nil {
		return l.settings, nil
	}
	return &base, nil
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{Workers: 1})
	assert.ErrorContains(t, err, "Path")

	_, err = NewConfig(Config{Path: ".", Workers: 0})
	assert.ErrorContains(t, err, "workers")

	cfg, err := NewConfig(Config{Path: ".", Workers: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
}

func TestNewApp_SettingsDiscovery(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.golit":              "package p\n",
		config.DefaultFileName: "marker = \"VEC\"\n",
	})

	testCases := []struct {
		name         string
		cfg          Config
		expectedPath string
	}{
		{name: "next to directory", cfg: Config{Path: root}, expectedPath: filepath.Join(root, config.DefaultFileName)},
		{name: "next to file", cfg: Config{Path: filepath.Join(root, "a.golit")}, expectedPath: filepath.Join(root, config.DefaultFileName)},
		{name: "explicit", cfg: Config{Path: root, ConfigPath: "/elsewhere.hcl"}, expectedPath: "/elsewhere.hcl"},
		{name: "none", cfg: Config{Path: t.TempDir()}, expectedPath: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loader := &stubLoader{}
			cfg := tc.cfg

			SetupAppTest(t, &cfg, loader)

			assert.Equal(t, tc.expectedPath, loader.path)
		})
	}
}

func TestNewApp_LoadsHCLSettings(t *testing.T) {
	root := writeTree(t, map[string]string{config.DefaultFileName: "marker = \"VEC\"\n"})

	app, _ := SetupAppTest(t, &Config{Path: root}, hcl.NewLoader())

	assert.Equal(t, "VEC", app.Settings().Marker)
	assert.Equal(t, ".golit", app.Settings().InputExt)
}

func TestNewApp_PanicsOnLoadFailure(t *testing.T) {
	loader := &stubLoader{err: errors.New("boom")}

	assert.PanicsWithError(t, "failed to load configuration: boom", func() {
		SetupAppTest(t, &Config{Path: ".", ConfigPath: "x.hcl"}, loader)
	})
}

func TestNewApp_PanicsOnInvalidSettings(t *testing.T) {
	bad := config.DefaultSettings()
	bad.Marker = "not an identifier"
	loader := &stubLoader{settings: &bad}

	assert.Panics(t, func() {
		SetupAppTest(t, &Config{Path: ".", ConfigPath: "x.hcl"}, loader)
	})
}

func TestApp_Run(t *testing.T) {
	// --- Arrange ---
	root := writeTree(t, map[string]string{
		"vec.golit":         "package p\n\nvar xs = LIT[42; 100]\n",
		"sub/map.golit":     "package p\n\nvar m = LIT map[string]string{\"John\" => \"Sailor\"}\n",
		"vendor/skip.golit": "package p\n\nvar bad = LIT[,]\n",
	})
	app, logs := SetupAppTest(t, &Config{Path: root}, &stubLoader{})

	// --- Act ---
	err := app.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "vec.go"))
	assert.FileExists(t, filepath.Join(root, "sub", "map.go"))
	assert.NoFileExists(t, filepath.Join(root, "vendor", "skip.go"))
	assert.Contains(t, logs.String(), "Generation finished.")
}

func TestApp_Run_Check(t *testing.T) {
	root := writeTree(t, map[string]string{"vec.golit": "package p\n\nvar xs = LIT[1, 2]\n"})

	checker, logs := SetupAppTest(t, &Config{Path: root, Check: true}, &stubLoader{})
	err := checker.Run(context.Background())
	require.ErrorIs(t, err, ErrStale)
	assert.Contains(t, logs.String(), "stale: "+filepath.Join(root, "vec.go"))

	writer, _ := SetupAppTest(t, &Config{Path: root}, &stubLoader{})
	require.NoError(t, writer.Run(context.Background()))

	checker, _ = SetupAppTest(t, &Config{Path: root, Check: true}, &stubLoader{})
	assert.NoError(t, checker.Run(context.Background()))
}

func TestApp_Run_Failures(t *testing.T) {
	root := writeTree(t, map[string]string{"bad.golit": "package p\n\nvar xs = LIT[]\n"})
	app, _ := SetupAppTest(t, &Config{Path: root}, &stubLoader{})

	err := app.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation failed")
	assert.Contains(t, err.Error(), "bad.golit:3:")
}

func TestApp_Run_NoFiles(t *testing.T) {
	app, logs := SetupAppTest(t, &Config{Path: t.TempDir()}, &stubLoader{})

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, logs.String(), "No input files found.")
}

func TestNewLogger_Formats(t *testing.T) {
	jsonOut := &SafeBuffer{}
	newLogger("info", "json", jsonOut).Info("hello")
	assert.Contains(t, jsonOut.String(), `"msg":"hello"`)

	textOut := &SafeBuffer{}
	newLogger("", "text", textOut).Info("hidden")
	assert.Empty(t, textOut.String(), "default level is warn")
}
