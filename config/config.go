package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	Web    WebConfig    `toml:"web"`
	DB     DBConfig     `toml:"db"`
	Spaces SpacesConfig `toml:"spaces"`
	Auth   AuthConfig   `toml:"auth"`
}

type LogConfig struct {
	// Level is the minimum slog level; zero value is info.
	Level slog.Level `toml:"level"`
}

type WebConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type SpacesConfig struct {
	Key        string `toml:"key"`
	Secret     string `toml:"secret"`
	Region     string `toml:"region"`
	Bucket     string `toml:"bucket"`
	RecipeRoot string `toml:"reciperoot"`
}

type AuthConfig struct {
	// TokenTTLHours is how long an issued token stays valid. Zero means
	// tokens never expire.
	TokenTTLHours int `toml:"token_ttl_hours"`
	BcryptCost    int `toml:"bcrypt_cost"`
}

func (c *Config) applyDefaults() {
	if c.Web.Host == "" {
		c.Web.Host = "0.0.0.0"
	}
	if c.Web.Port == 0 {
		c.Web.Port = 8000
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 12
	}
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}
