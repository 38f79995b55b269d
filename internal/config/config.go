package config

import (
	"fmt"
	"time"
)

// DatabaseConfig holds PostgreSQL connection parameters.
// Persistence is optional: with Enabled false players live in memory only.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// LoggingConfig selects the zap encoder and level.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// TickConfig holds the periods of the background loops.
type TickConfig struct {
	World    time.Duration `yaml:"world"`    // AI + contact combat
	Spawn    time.Duration `yaml:"spawn"`    // population maintenance
	Autosave time.Duration `yaml:"autosave"` // player persistence
}

// Seconds returns the world tick period as the AI integration step.
func (t TickConfig) Seconds() float64 {
	return t.World.Seconds()
}
