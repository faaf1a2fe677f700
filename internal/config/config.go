package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "PCBOOK"

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMySQL  = "mysql"
)

type Config struct {
	App    AppConfig
	Server ServerConfig
	Store  StoreConfig
	Redis  RedisConfig
	MySQL  MySQLConfig
	Image  ImageConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PCBOOK_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"PCBOOK_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"PCBOOK_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"PCBOOK_LOG_WARN_STACK" default:"false"`
}

type ServerConfig struct {
	GRPCAddr        string        `envconfig:"PCBOOK_GRPC_ADDR" default:":8080"`
	HTTPAddr        string        `envconfig:"PCBOOK_HTTP_ADDR" default:":8081"`
	ShutdownTimeout time.Duration `envconfig:"PCBOOK_SHUTDOWN_TIMEOUT" default:"5s"`
}

type StoreConfig struct {
	Backend string `envconfig:"PCBOOK_STORE_BACKEND" default:"memory"`
	Shards  int    `envconfig:"PCBOOK_STORE_SHARDS" default:"32"`
}

func (s *StoreConfig) validate() error {
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	switch s.Backend {
	case BackendMemory, BackendRedis, BackendMySQL:
		return nil
	default:
		return fmt.Errorf("unsupported store backend %q", s.Backend)
	}
}

type RedisConfig struct {
	Addr     string `envconfig:"PCBOOK_REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"PCBOOK_REDIS_PASSWORD"`
	DB       int    `envconfig:"PCBOOK_REDIS_DB" default:"0"`
	PoolSize int    `envconfig:"PCBOOK_REDIS_POOL_SIZE" default:"100"`
}

type MySQLConfig struct {
	DSN             string        `envconfig:"PCBOOK_MYSQL_DSN" default:"root:root@tcp(localhost:3306)/pcbook?parseTime=true"`
	MaxOpenConns    int           `envconfig:"PCBOOK_MYSQL_MAX_OPEN_CONNS" default:"50"`
	MaxIdleConns    int           `envconfig:"PCBOOK_MYSQL_MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"PCBOOK_MYSQL_CONN_MAX_LIFETIME" default:"5m"`
	AutoMigrate     bool          `envconfig:"PCBOOK_MYSQL_AUTO_MIGRATE" default:"true"`
}

type ImageConfig struct {
	Folder  string `envconfig:"PCBOOK_IMAGE_FOLDER" default:"img"`
	MaxSize int    `envconfig:"PCBOOK_IMAGE_MAX_SIZE" default:"1048576"`
}
