package config

import "time"

type Config struct {
	Environment Environment
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`

	Gateway Gateway `envPrefix:"GATEWAY_"`
	Auth    Auth    `envPrefix:"AUTH_"`
}

type Gateway struct {
	BaseURL  string `env:"BASE_URL" envDefault:"https://dev-vanilla.edviron.com"`
	PGKey    string `env:"PG_KEY"`
	APIKey   string `env:"API_KEY"`
	SchoolID string `env:"SCHOOL_ID"`
}

type Auth struct {
	JWTSecret string        `env:"JWT_SECRET"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"1h"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
