package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kim254ke/Chat-App-Server/pkg/log"
)

type Config struct {
	Server    ServerConfig
	WebSocket WebSocketConfig
	Chat      ChatConfig
	Mirror    MirrorConfig
	Log       log.Config
}

type ServerConfig struct {
	Host string
	Port int
}

type WebSocketConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

type ChatConfig struct {
	Rooms            []string `mapstructure:"rooms"`
	DefaultRoom      string   `mapstructure:"default_room"`
	HistoryLimit     int      `mapstructure:"history_limit"`
	MaxMessageLength int      `mapstructure:"max_message_length"`
}

// MirrorConfig configures the best-effort durable message mirror.
type MirrorConfig struct {
	Enabled    bool
	Address    string
	Password   string
	DB         int
	KeyPrefix  string `mapstructure:"key_prefix"`
	FetchLimit int64  `mapstructure:"fetch_limit"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, rely on defaults and env vars.
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("websocket.ping_interval", "25s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 65536)
	v.SetDefault("chat.rooms", []string{"general", "random", "tech", "gaming"})
	v.SetDefault("chat.default_room", "general")
	v.SetDefault("chat.history_limit", 500)
	v.SetDefault("chat.max_message_length", 1000)
	v.SetDefault("mirror.enabled", false)
	v.SetDefault("mirror.address", "localhost:6379")
	v.SetDefault("mirror.password", "")
	v.SetDefault("mirror.db", 0)
	v.SetDefault("mirror.key_prefix", "chat:messages")
	v.SetDefault("mirror.fetch_limit", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("mirror.enabled", "MIRROR_ENABLED")
	v.BindEnv("mirror.address", "REDIS_ADDRESS")
	v.BindEnv("mirror.password", "REDIS_PASSWORD")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Parse durations
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 25*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)

	return &cfg, nil
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return defaultVal
	}
	return d
}
