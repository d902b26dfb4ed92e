package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	Env         string
	DB          DBConfig
	Server      ServerConfig
	Redis       RedisConfig
	Logger      LoggerConfig
	JWT         JWTConfig
	GoogleOAuth GoogleOAuthConfig
	Webhook     WebhookConfig
	Cache       CacheConfig
}

type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnectTimeout  time.Duration
}

type ServerConfig struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Env   string
	Level string
}

type JWTConfig struct {
	SecretKey  string
	TTL        time.Duration
	CookieName string
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	FrontendURL  string
}

// Enabled reports whether Google sign-in has been configured.
func (g GoogleOAuthConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

type WebhookConfig struct {
	SallaSecret string
}

type CacheConfig struct {
	LessonTTL time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.name", "lingo_days")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_idle_time", "30s")
	v.SetDefault("db.connect_timeout", "2s")

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "20s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.allowed_origins", "http://localhost:5173")

	v.SetDefault("redis.db", 0)

	v.SetDefault("logger.level", "info")

	v.SetDefault("jwt.ttl", "168h")
	v.SetDefault("jwt.cookie_name", "token")

	v.SetDefault("cache.lesson_ttl", "10m")
}

// LoadConfig reads config.yaml (optional), a .env file (optional) and APP_* environment
// variables, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../../config")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	env := v.GetString("env")
	loggerEnv := v.GetString("logger.env")
	if loggerEnv == "" {
		loggerEnv = env
	}

	return &Config{
		Env: env,
		DB: DBConfig{
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			DBName:          v.GetString("db.name"),
			SSLMode:         v.GetString("db.sslmode"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxIdleTime: v.GetDuration("db.conn_max_idle_time"),
			ConnectTimeout:  v.GetDuration("db.connect_timeout"),
		},
		Server: ServerConfig{
			Port:           v.GetInt("server.port"),
			ReadTimeout:    v.GetDuration("server.read_timeout"),
			WriteTimeout:   v.GetDuration("server.write_timeout"),
			IdleTimeout:    v.GetDuration("server.idle_timeout"),
			AllowedOrigins: v.GetString("server.allowed_origins"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Env:   loggerEnv,
			Level: v.GetString("logger.level"),
		},
		JWT: JWTConfig{
			SecretKey:  v.GetString("jwt.secret"),
			TTL:        v.GetDuration("jwt.ttl"),
			CookieName: v.GetString("jwt.cookie_name"),
		},
		GoogleOAuth: GoogleOAuthConfig{
			ClientID:     v.GetString("google.client_id"),
			ClientSecret: v.GetString("google.client_secret"),
			RedirectURL:  v.GetString("google.redirect_url"),
			FrontendURL:  v.GetString("google.frontend_url"),
		},
		Webhook: WebhookConfig{
			SallaSecret: v.GetString("webhook.salla_secret"),
		},
		Cache: CacheConfig{
			LessonTTL: v.GetDuration("cache.lesson_ttl"),
		},
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return errors.New("jwt secret is not configured (set APP_JWT_SECRET)")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive, got %s", c.JWT.TTL)
	}
	if c.DB.Host == "" || c.DB.DBName == "" {
		return errors.New("database host and name are required")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// GetDSN builds a lib/pq connection URL.
func (c *Config) GetDSN() string {
	q := url.Values{}
	q.Set("sslmode", c.DB.SSLMode)
	if c.DB.ConnectTimeout > 0 {
		secs := int(c.DB.ConnectTimeout / time.Second)
		if secs < 1 {
			secs = 1
		}
		q.Set("connect_timeout", fmt.Sprintf("%d", secs))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:     "/" + c.DB.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}
