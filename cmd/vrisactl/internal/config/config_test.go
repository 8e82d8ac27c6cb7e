package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup location at temporary directories and clears
// the variables Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	for _, key := range []string{
		"VRISA_API_HOST", "VRISA_API_PORT", "API_HOST", "API_PORT", "VRISA_API_SCHEME",
		"VRISA_REQUEST_TIMEOUT", "VRISA_MAX_RETRIES", "VRISA_SESSION_BACKEND",
		"VRISA_OUTPUT", "VRISA_LOG_LEVEL", "VRISA_TOKEN",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	settings, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, settings.RequestTimeout)
	assert.Equal(t, uint(3), settings.MaxRetries)
	assert.Equal(t, "keyring", settings.SessionBackend)
	assert.Equal(t, "table", settings.Output)
	assert.Equal(t, "warn", settings.LogLevel)
	assert.Empty(t, settings.APIHost)
}

func TestLoad_DotEnvLegacyNames(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("API_HOST=192.168.1.20\nAPI_PORT=8000\n"), 0600))

	settings, err := Load(LoadOptions{EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, "192.168.1.20", settings.APIHost)
	assert.Equal(t, "8000", settings.APIPort)
}

func TestLoad_PrefixedEnvWins(t *testing.T) {
	dir := isolate(t)
	t.Setenv("API_HOST", "legacy")
	t.Setenv("VRISA_API_HOST", "api.vrisa.co")
	t.Setenv("VRISA_REQUEST_TIMEOUT", "5s")
	t.Setenv("VRISA_SESSION_BACKEND", "file")

	settings, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "none")})
	require.NoError(t, err)

	assert.Equal(t, "api.vrisa.co", settings.APIHost)
	assert.Equal(t, 5*time.Second, settings.RequestTimeout)
	assert.Equal(t, "file", settings.SessionBackend)
}

func TestLoad_ConfigFileAndFlags(t *testing.T) {
	dir := isolate(t)
	configFile := filepath.Join(dir, "vrisa.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
api_host: file.vrisa.co
api_port: "443"
output: json
max_retries: 5
`), 0600))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-host", "", "")
	flags.String("output", "table", "")
	require.NoError(t, flags.Parse([]string{"--output", "yaml"}))

	settings, err := Load(LoadOptions{ConfigFile: configFile, EnvFile: filepath.Join(dir, "none"), Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, "file.vrisa.co", settings.APIHost, "unchanged flag must not shadow the file")
	assert.Equal(t, "443", settings.APIPort)
	assert.Equal(t, "yaml", settings.Output)
	assert.Equal(t, uint(5), settings.MaxRetries)
}

func TestLoad_ExplicitConfigFileMustExist(t *testing.T) {
	dir := isolate(t)

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(dir, "absent.yaml"), EnvFile: filepath.Join(dir, "none")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "backend", env: map[string]string{"VRISA_SESSION_BACKEND": "sqlite"}, want: "invalid session backend"},
		{name: "output", env: map[string]string{"VRISA_OUTPUT": "xml"}, want: "unsupported output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "none")})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	cfg := &GlobalConfig{Settings: &Settings{APIHost: "h"}}
	ctx := InjectConfig(context.Background(), cfg)
	assert.Same(t, cfg, MustFromContext(ctx))

	assert.Panics(t, func() { MustFromContext(context.Background()) })
}
