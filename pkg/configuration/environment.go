package configuration

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		panic(err)
	}
	return c
})

// Use returns the process-wide configuration, loading it on first use.
func Use() *Configuration {
	return singleton()
}

func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

type DatabaseOptions struct {
	Name     string `env:"DB_NAME" envDefault:"backoffice"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type RedisOptions struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type SessionOptions struct {
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieName string        `env:"SESSION_COOKIE" envDefault:"sid"`
}

type MetricsOptions struct {
	Enabled bool   `env:"METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"METRICS_PATH" envDefault:"/debug/metrics"`
}

type Configuration struct {
	Database DatabaseOptions
	Redis    RedisOptions
	Session  SessionOptions
	Metrics  MetricsOptions

	GoAppEnvironment string   `env:"GO_APP_ENV" envDefault:"local"`
	ServerAddr       string   `env:"SERVER_ADDR" envDefault:"localhost:8080"`
	LogLevel         string   `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins   []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	RequestIDHeader  string   `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	RealIPHeader     string   `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`

	logger *logrus.Logger
}

func (c *Configuration) load(envFiles []string) error {
	if _, err := LoadEnv(envFiles); err != nil {
		return err
	}
	return env.Parse(c)
}

func (c *Configuration) Logger() *logrus.Logger {
	if c.logger == nil {
		logger := logrus.New()
		level, err := logrus.ParseLevel(c.LogLevel)
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
		if c.GoAppEnvironment == Production {
			logger.SetFormatter(&logrus.JSONFormatter{})
		} else {
			logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}
		c.logger = logger
	}
	return c.logger
}
