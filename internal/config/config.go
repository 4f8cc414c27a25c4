package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

type APIConfig struct {
	Server   server
	Postgres postgres
	Valkey   valkeyCfg
	Kafka    kafka
	Cache    cache
	Auth     auth
	Tracing  tracing
}

type WorkerConfig struct {
	HttpSrv  httpServer
	Postgres postgres
	Kafka    kafka
	Warm     warm
	Tracing  tracing
}

type server struct {
	Addr       string `env:"SERVER_ADDR" env-default:":8080"`
	PublicHost string `env:"PUBLIC_HOST" env-default:"http://localhost:8080/"`
}

type httpServer struct {
	Addr string `env:"METRICS_ADDR" env-default:":9090"`
}

type postgres struct {
	URL string `env:"POSTGRES_URL" env-required:"true"`
}

type valkeyCfg struct {
	Addr     string `env:"VALKEY_ADDR" env-required:"true"`
	Password string `env:"VALKEY_PASSWORD" env-default:""`
}

type kafka struct {
	Addr string `env:"KAFKA_ADDR" env-required:"true"`
}

type cache struct {
	TTLSeconds int `env:"CACHE_TTL_SECONDS" env-default:"3600"`
}

type auth struct {
	JWTSecret       string `env:"JWT_SECRET" env-required:"true"`
	TokenTTLSeconds int    `env:"TOKEN_TTL_SECONDS" env-default:"3600"`
}

type warm struct {
	Crontab string `env:"WARM_SCHEDULER_CRONTAB" env-default:"0 * * * *"`
	Amount  int    `env:"WARM_TOP_AMOUNT" env-default:"100"`
	Window  int    `env:"WARM_WINDOW_SECONDS" env-default:"3600"`
}

type tracing struct {
	CollectorAddr string `env:"TRACING_COLLECTOR_ADDR" env-required:"true"`
}

func NewAPIConfig() (*APIConfig, error) {
	var cfg APIConfig
	if err := read(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func NewWorkerConfig() (*WorkerConfig, error) {
	var cfg WorkerConfig
	if err := read(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func read(cfg interface{}) error {
	// Read .env file
	// If failed to read file, will try ReadEnv
	if err := cleanenv.ReadConfig(".env", cfg); err == nil {
		return nil
	}

	return cleanenv.ReadEnv(cfg)
}
