package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound   = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing = errors.New("config file is missing version field")
	ErrConfigVersionWrong   = errors.New("config file version mismatch")
)

// CurrentVersion is the expected version of the config file.
const CurrentVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version    int        `koanf:"version"`
	Server     Server     `koanf:"server"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Redis      Redis      `koanf:"redis"`
	Discord    Discord    `koanf:"discord"`
	Roblox     Roblox     `koanf:"roblox"`
	YouTube    YouTube    `koanf:"youtube"`
	Tracking   Tracking   `koanf:"tracking"`
	Debug      Debug      `koanf:"debug"`
}

// Server contains HTTP server configuration.
type Server struct {
	// Address to bind the HTTP server to.
	Host string `koanf:"host"`
	// Port to bind the HTTP server to.
	Port int `koanf:"port"`
	// Read timeout in seconds.
	ReadTimeout int `koanf:"read_timeout"`
	// Write timeout in seconds.
	WriteTimeout int `koanf:"write_timeout"`
	// Base URL of the public site, used for OAuth redirects.
	PublicURL string `koanf:"public_url"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	// Database hostname.
	Host string `koanf:"host"`
	// Database port.
	Port int `koanf:"port"`
	// Database username.
	User string `koanf:"user"`
	// Database password.
	Password string `koanf:"password"`
	// Database name.
	DBName string `koanf:"db_name"`
	// Maximum open connections.
	MaxOpenConns int `koanf:"max_open_conns"`
	// Maximum idle connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
	// Connection lifetime in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	// Idle timeout in minutes.
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Redis contains Redis connection configuration for session storage.
type Redis struct {
	// Redis hostname.
	Host string `koanf:"host"`
	// Redis port.
	Port int `koanf:"port"`
	// Redis username.
	Username string `koanf:"username"`
	// Redis password.
	Password string `koanf:"password"`
}

// Discord contains Discord bot and OAuth configuration.
type Discord struct {
	// Bot token used for guild joins, DMs and invite lookups.
	// Leaving this empty disables notification delivery.
	BotToken string `koanf:"bot_token"`
	// Guild that opted-in users are invited to. Zero disables guild joins.
	GuildID uint64 `koanf:"guild_id"`
	// OAuth application client ID.
	ClientID uint64 `koanf:"client_id"`
	// OAuth application client secret.
	ClientSecret string `koanf:"client_secret"`
	// Invite code of the community server, used for member count stats.
	InviteCode string `koanf:"invite_code"`
}

// Roblox contains Roblox API configuration.
type Roblox struct {
	// Group whose membership is tracked.
	GroupID uint64 `koanf:"group_id"`
	// Universe of the game, used for live player count stats.
	UniverseID uint64 `koanf:"universe_id"`
	// Request timeout in milliseconds.
	RequestTimeout int `koanf:"request_timeout"`
}

// YouTube contains YouTube Data API configuration.
type YouTube struct {
	// API key. Leaving this empty disables channel resolution and video sync.
	APIKey string `koanf:"api_key"`
}

// Tracking contains group tracking worker configuration.
type Tracking struct {
	// Whether the tracking worker runs inside the server process.
	Enabled bool `koanf:"enabled"`
	// Seconds between polls of the group member count.
	Interval int `koanf:"interval"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
}

// LoadConfig loads the configuration from the first config.toml found in the
// search paths. Returns the config along with the used config directory.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configPaths := []string{
		".hivehub",
		homeDir + "/.hivehub/config",
		"/etc/hivehub/config",
		"/app/config",
		"config",
		".",
	}

	var usedConfigPath string

	for _, path := range configPaths {
		configPath := fmt.Sprintf("%s/config.toml", path)
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: config.toml", ErrConfigFileNotFound)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion(config.Version); err != nil {
		return nil, "", err
	}

	return &config, usedConfigPath, nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(version int) error {
	if version == 0 {
		return ErrConfigVersionMissing
	}

	if version != CurrentVersion {
		return fmt.Errorf("%w: found version %d, expected version %d (see config/config.toml for the current format)",
			ErrConfigVersionWrong, version, CurrentVersion)
	}

	return nil
}
