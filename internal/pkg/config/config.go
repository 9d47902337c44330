package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Admin  AdminConfig
	Gemini GeminiConfig
	Store  StoreConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

// AdminConfig is the single hardcoded administrator credential. The
// defaults are the demo credential; deployments override both.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME, default=admin"`
	Password string `env:"ADMIN_PASSWORD, default=admin123"`
}

type GeminiConfig struct {
	APIKey   string `env:"GEMINI_API_KEY"`
	Model    string `env:"GEMINI_MODEL, default=gemini-2.5-flash"`
	Endpoint string `env:"GEMINI_ENDPOINT"` // default resolved by the analyzer
}

// StoreConfig selects the repository backend: "memory" (process-lifetime
// state, the default) or "mongo".
type StoreConfig struct {
	Backend string `env:"STORE_BACKEND, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=docportal"`
}

// RedisConfig configures upload deduplication. An empty address disables it.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
