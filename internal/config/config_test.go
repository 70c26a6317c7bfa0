package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, 50*time.Millisecond, cfg.Stopwatch.Tick)
	assert.Equal(t, 10, cfg.Country.PageSize)
	assert.Equal(t, "https://restcountries.com/v3.1", cfg.API.CountriesURL)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prepkit.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
theme: neon
state_file: state.json
log:
  level: debug
api:
  timeout: 3s
stopwatch:
  tick: 20ms
`), 0o644))

	cfg, err := Load(NewViper(path))
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "state.json", cfg.StateFile)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 20*time.Millisecond, cfg.Stopwatch.Tick)
	assert.Equal(t, "https://jsonplaceholder.typicode.com/users", cfg.API.UsersURL)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("PREPKIT_THEME", "mono")
	t.Setenv("PREPKIT_COUNTRY_PAGE_SIZE", "25")
	chdir(t, t.TempDir())

	cfg, err := Load(NewViper(""))
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, 25, cfg.Country.PageSize)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Theme = "solarized"
	cfg.API.UsersURL = "ftp://example.com"
	cfg.API.Timeout = 0
	cfg.Stopwatch.Tick = -time.Second
	cfg.Country.PageSize = 0
	cfg.Log.Format = "xml"
	cfg.Log.Level = "bogus"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"theme", "api.users_url", "api.timeout", "stopwatch.tick", "country.page_size", "log.format", "log.level"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestDumpLoadsBack(t *testing.T) {
	cfg := Default()
	cfg.Theme = "neon"
	cfg.API.Timeout = 1500 * time.Millisecond
	cfg.Country.PageSize = 7

	b, err := cfg.Dump()
	require.NoError(t, err)
	assert.Contains(t, string(b), "timeout: 1.5s")

	path := filepath.Join(t.TempDir(), "dump.yml")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	got, err := Load(NewViper(path))
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestBindFlagsOverrideFileAndEnv(t *testing.T) {
	t.Setenv("PREPKIT_THEME", "mono")
	chdir(t, t.TempDir())

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("theme", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse([]string{"--theme", "neon"}))

	v := NewViper("")
	require.NoError(t, BindFlags(v, fs, FlagKeys))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "info", cfg.Log.Level, "unset flags keep the default")
}
