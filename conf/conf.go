package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const DefaultPistonApiUrl = "http://piston:2000/api/v2/execute"

type Config struct {
	HttpAddress string   `toml:"http_address"`
	JwtKey      string   `toml:"jwt_key"`
	CorsOrigins []string `toml:"cors_origins"`

	Log      LogConf      `toml:"log"`
	Exec     ExecConf     `toml:"exec"`
	Subm     SubmConf     `toml:"subm"`
	Postgres PostgresConf `toml:"postgres"`
}

type LogConf struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

type ExecConf struct {
	PistonApiUrl      string `toml:"piston_api_url"`
	RunTimeoutMs      int    `toml:"run_timeout_ms"`
	CompileTimeoutMs  int    `toml:"compile_timeout_ms"`
	SimulationDelayMs int    `toml:"simulation_delay_ms"`
}

func (c ExecConf) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutMs) * time.Millisecond
}

func (c ExecConf) CompileTimeout() time.Duration {
	return time.Duration(c.CompileTimeoutMs) * time.Millisecond
}

func (c ExecConf) SimulationDelay() time.Duration {
	return time.Duration(c.SimulationDelayMs) * time.Millisecond
}

type SubmConf struct {
	// minimum time between two submissions of the same user
	MinIntervalMs int `toml:"min_interval_ms"`
}

func (c SubmConf) MinInterval() time.Duration {
	return time.Duration(c.MinIntervalMs) * time.Millisecond
}

func Default() Config {
	return Config{
		HttpAddress: ":8080",
		CorsOrigins: []string{"http://localhost:3000"},
		Log: LogConf{
			Level:  "info",
			Format: "text",
		},
		Exec: ExecConf{
			PistonApiUrl:      DefaultPistonApiUrl,
			RunTimeoutMs:      2000,
			CompileTimeoutMs:  10000,
			SimulationDelayMs: 3000,
		},
		Subm: SubmConf{
			MinIntervalMs: 2000,
		},
		Postgres: PostgresConf{
			Host:    "localhost",
			Port:    "5432",
			User:    "speedrun",
			DB:      "speedrun",
			SslMode: "disable",
		},
	}
}

// Load reads configuration in the following order, later sources winning:
// built-in defaults, the TOML file at path (if it exists), a .env file (if
// it exists) and finally process environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.JwtKey == "" {
		return errors.New("JWT_KEY is not set")
	}
	if c.Exec.RunTimeoutMs <= 0 {
		return fmt.Errorf("run timeout must be positive, got %d ms", c.Exec.RunTimeoutMs)
	}
	if c.Exec.CompileTimeoutMs <= 0 {
		return fmt.Errorf("compile timeout must be positive, got %d ms", c.Exec.CompileTimeoutMs)
	}
	if c.Exec.SimulationDelayMs < 0 {
		return fmt.Errorf("simulation delay must not be negative, got %d ms", c.Exec.SimulationDelayMs)
	}
	if c.Exec.PistonApiUrl == "" {
		return errors.New("execution engine url is empty")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setStr := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("env %s must be an integer: %w", key, err)
		}
		*dst = n
		return nil
	}

	setStr("HTTP_ADDRESS", &cfg.HttpAddress)
	setStr("JWT_KEY", &cfg.JwtKey)
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		cfg.CorsOrigins = splitList(v)
	}

	setStr("LOG_LEVEL", &cfg.Log.Level)
	setStr("LOG_FORMAT", &cfg.Log.Format)

	setStr("PISTON_API_URL", &cfg.Exec.PistonApiUrl)
	for key, dst := range map[string]*int{
		"EXEC_RUN_TIMEOUT_MS":      &cfg.Exec.RunTimeoutMs,
		"EXEC_COMPILE_TIMEOUT_MS":  &cfg.Exec.CompileTimeoutMs,
		"EXEC_SIMULATION_DELAY_MS": &cfg.Exec.SimulationDelayMs,
		"SUBM_MIN_INTERVAL_MS":     &cfg.Subm.MinIntervalMs,
	} {
		if err := setInt(key, dst); err != nil {
			return err
		}
	}

	setStr("POSTGRES_HOST", &cfg.Postgres.Host)
	setStr("POSTGRES_PORT", &cfg.Postgres.Port)
	setStr("POSTGRES_USER", &cfg.Postgres.User)
	setStr("POSTGRES_PW", &cfg.Postgres.Password)
	setStr("POSTGRES_DB", &cfg.Postgres.DB)
	setStr("POSTGRES_SSLMODE", &cfg.Postgres.SslMode)
	setStr("POSTGRES_PASSWORD_SECRET_NAME", &cfg.Postgres.SecretName)
	return nil
}

func splitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			res = append(res, p)
		}
	}
	return res
}
