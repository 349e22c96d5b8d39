package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env  string `env:"ENV" env-required:"true"`
	HTTP HTTPConfig
}

type HTTPConfig struct {
	Host              string        `env:"HTTP_HOST"`
	Port              string        `env:"HTTP_PORT" env-default:"5000"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"5s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	CORSAllowOrigins  []string      `env:"HTTP_CORS_ALLOW_ORIGINS" env-default:"*" env-separator:","`
}
