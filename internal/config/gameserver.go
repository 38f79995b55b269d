package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/soulbound/internal/model"
)

// EnvConfigPath overrides the default config location.
const EnvConfigPath = "SOULBOUND_CONFIG"

// DefaultConfigPath is used when EnvConfigPath is unset.
const DefaultConfigPath = "config/gameserver.yaml"

// GameServer holds all configuration for the game server.
type GameServer struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
	WSPath      string `yaml:"ws_path"`

	// Write queue / timeouts
	WriteTimeout  time.Duration `yaml:"write_timeout"`   // per-write deadline (default: 5s)
	ReadTimeout   time.Duration `yaml:"read_timeout"`    // idle client disconnect (default: 120s)
	SendQueueSize int           `yaml:"send_queue_size"` // per-session outbox capacity (default: 256)

	Ticks    TickConfig     `yaml:"ticks"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`

	// World tunables; combat balance lives under world.combat.
	World model.WorldState `yaml:"world"`

	// CatalogPath points to a TOML world catalog. Empty uses the built-in one.
	CatalogPath string `yaml:"catalog_path"`
	// ScriptsDir holds balance.lua. Empty or missing uses built-in formulas.
	ScriptsDir string `yaml:"scripts_dir"`
}

// DefaultGameServer returns GameServer config with sensible defaults.
func DefaultGameServer() GameServer {
	return GameServer{
		BindAddress:   "0.0.0.0",
		Port:          8080,
		WSPath:        "/ws",
		WriteTimeout:  5 * time.Second,
		ReadTimeout:   120 * time.Second,
		SendQueueSize: 256,
		Ticks: TickConfig{
			World:    200 * time.Millisecond,
			Spawn:    time.Second,
			Autosave: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "soulbound",
			Password: "soulbound",
			DBName:   "soulbound",
			SSLMode:  "disable",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		World:      model.DefaultWorldState(),
		ScriptsDir: "scripts",
	}
}

// Addr returns host:port for the HTTP listener.
func (c GameServer) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.Port)
}

// Validate rejects configs the simulation cannot run with.
func (c GameServer) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.Ticks.World <= 0 || c.Ticks.Spawn <= 0 || c.Ticks.Autosave <= 0 {
		errs = append(errs, errors.New("tick periods must be positive"))
	}
	if c.SendQueueSize <= 0 {
		errs = append(errs, errors.New("send_queue_size must be positive"))
	}
	w := c.World
	if w.SafeRadius < 0 || w.WildRadiusMin < w.SafeRadius || w.WildRadiusMax < w.WildRadiusMin {
		errs = append(errs, fmt.Errorf("world radii must satisfy 0 <= safe (%.1f) <= wild min (%.1f) <= wild max (%.1f)",
			w.SafeRadius, w.WildRadiusMin, w.WildRadiusMax))
	}
	if w.MaxMonsters < 0 {
		errs = append(errs, fmt.Errorf("max_monsters %d is negative", w.MaxMonsters))
	}
	if w.Combat.RandomFactorMax < w.Combat.RandomFactorMin {
		errs = append(errs, errors.New("combat random factor max is below min"))
	}
	return errors.Join(errs...)
}

// ResolvePath returns the config path from the environment or the default.
func ResolvePath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath
}

// LoadGameServer loads game server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGameServer(path string) (GameServer, error) {
	cfg := DefaultGameServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
