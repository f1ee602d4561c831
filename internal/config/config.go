package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`

	JWT    JWT    `envPrefix:"JWT_"`
	SMTP   SMTP   `envPrefix:"SMTP_"`
	Payout Payout `envPrefix:"PAYOUT_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type JWT struct {
	Secret string `env:"SECRET"`
	// token lifetime in hours
	TTLHours int `env:"TTL_HOURS" envDefault:"72"`
}

type SMTP struct {
	Host string `env:"HOST"`
	Port string `env:"PORT" envDefault:"587"`
	From string `env:"FROM"`
	User string `env:"USER"`
	Pass string `env:"PASS"`
}

type Payout struct {
	// minor currency units; settings table overrides when present
	MinAmount int64 `env:"MIN_AMOUNT" envDefault:"10000"`
}
