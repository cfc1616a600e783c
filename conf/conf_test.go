package conf_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/speedrun-coding/backend/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithEnvOverrides(t *testing.T) {
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("EXEC_RUN_TIMEOUT_MS", "1500")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := conf.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.JwtKey)
	assert.Equal(t, 1500*time.Millisecond, cfg.Exec.RunTimeout())
	assert.Equal(t, 10*time.Second, cfg.Exec.CompileTimeout())
	assert.Equal(t, conf.DefaultPistonApiUrl, cfg.Exec.PistonApiUrl)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CorsOrigins)
}

func TestLoadTomlFile(t *testing.T) {
	t.Setenv("JWT_KEY", "secret")
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
http_address = ":9000"

[exec]
piston_api_url = "http://localhost:2000/api/v2/execute"
simulation_delay_ms = 10

[log]
format = "json"
`), 0o644)
	require.NoError(t, err)

	cfg, err := conf.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HttpAddress)
	assert.Equal(t, "http://localhost:2000/api/v2/execute", cfg.Exec.PistonApiUrl)
	assert.Equal(t, 10*time.Millisecond, cfg.Exec.SimulationDelay())
	assert.Equal(t, 2000, cfg.Exec.RunTimeoutMs, "unset keys keep their defaults")
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadRequiresJwtKey(t *testing.T) {
	t.Setenv("JWT_KEY", "")
	_, err := conf.Load("")
	assert.ErrorContains(t, err, "JWT_KEY")
}

func TestLoadRejectsBadInteger(t *testing.T) {
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("EXEC_COMPILE_TIMEOUT_MS", "ten seconds")
	_, err := conf.Load("")
	assert.ErrorContains(t, err, "EXEC_COMPILE_TIMEOUT_MS")
}

func TestValidateTimeouts(t *testing.T) {
	cfg := conf.Default()
	cfg.JwtKey = "secret"
	require.NoError(t, cfg.Validate())

	cfg.Exec.RunTimeoutMs = 0
	assert.Error(t, cfg.Validate())
}

func TestLocalPgConnStr(t *testing.T) {
	pg := conf.PostgresConf{
		Host:     "localhost",
		Port:     "5433",
		User:     "speedrun",
		Password: "pw",
		DB:       "speedrun",
		SslMode:  "disable",
	}
	s, err := pg.GetPgConnStr(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5433 user=speedrun password=pw dbname=speedrun sslmode=disable", s)
}
