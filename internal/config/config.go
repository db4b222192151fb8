package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"travelmate/internal/similarity"
)

// Config is the application's configuration model.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Storage   StorageConfig   `yaml:"storage"`
	Redis     RedisConfig     `yaml:"redis"`
	Recommend RecommendConfig `yaml:"recommend"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type MetricsConfig struct {
	// Addr for the /metrics server; empty disables it. If empty, read
	// from env METRICS_ADDR.
	Addr string `yaml:"addr"`
}

type StorageConfig struct {
	DBPath string `yaml:"dbPath"`
	// How often the serve loop reloads the directory snapshot from
	// storage. Zero disables refresh (static snapshot).
	RefreshIntervalSeconds int `yaml:"refreshIntervalSeconds"`
}

type RedisConfig struct {
	// Addr of the optional response cache; empty disables caching.
	Addr            string `yaml:"addr"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	CacheTTLSeconds int    `yaml:"cacheTTLSeconds"`
}

type RecommendConfig struct {
	// Languages whose overlap gets the high-signal boost.
	HighSignalLanguages []string `yaml:"highSignalLanguages"`
	// Default result limits when a request does not pass one.
	PeopleLimit int `yaml:"peopleLimit"`
	PostLimit   int `yaml:"postLimit"`
}

type RateLimitConfig struct {
	// Per-client request budget for the HTTP surface.
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Server:  ServerConfig{Addr: ":8080"},
		Metrics: MetricsConfig{Addr: ""},
		Storage: StorageConfig{DBPath: "./travelmate.db", RefreshIntervalSeconds: 60},
		Redis:   RedisConfig{Addr: "", CacheTTLSeconds: 600},
		Recommend: RecommendConfig{
			HighSignalLanguages: similarity.DefaultHighSignalLanguages,
			PeopleLimit:         20,
			PostLimit:           30,
		},
		RateLimit: RateLimitConfig{RPS: 5, Burst: 10},
	}
}

// ResolveEnv fills in config fields from environment variables if not set.
func (c *Config) ResolveEnv() {
	if v := os.Getenv("TRAVELMATE_DB_PATH"); v != "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = os.Getenv("METRICS_ADDR")
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = os.Getenv("REDIS_ADDR")
	}
	if c.Redis.Password == "" {
		c.Redis.Password = os.Getenv("REDIS_PASSWORD")
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = n
		}
	}
}

// Load reads .env (if present) and YAML config from path.
func Load(path string) (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
