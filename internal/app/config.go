package app

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// insecureDevSecret is the documented fallback signing secret. It is only
// acceptable outside production; app startup refuses it in prod.
const insecureDevSecret = "pastel-dev-secret-do-not-use-in-prod"

type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`          // dev, staging, prod
	Port      int    `env:"PORT" envDefault:"8080"`        // HTTP server port
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`   // debug, info, warn, error
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`  // json, text

	DatabaseFile string `env:"DATABASE_FILE" envDefault:"pastel.db"` // SQLite database path

	// TokenSecret signs session tokens. Read once at startup; rotating it
	// invalidates every issued token.
	TokenSecret string        `env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"168h"` // 7 days

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

func LoadConfig() (Config, error) {
	return env.ParseAs[Config]()
}

// IsProd reports whether the config targets a production environment.
func (c Config) IsProd() bool { return c.Env == "prod" }
